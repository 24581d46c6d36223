package models

import (
	"time"
)

// Media türleri
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeAudio = "audio"
)

// RetentionPeriod: satılan içerik satıştan bu kadar süre sonra silinir
const RetentionPeriod = 10 * 24 * time.Hour

type Media struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	OwnerID      uint       `json:"owner_id" gorm:"not null;index"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description"`
	MediaType    string     `json:"media_type" gorm:"not null"`
	FileName     string     `json:"file_name" gorm:"not null"`
	FileSize     int64      `json:"file_size" gorm:"not null"`
	MimeType     string     `json:"mime_type" gorm:"not null"`
	R2Key        string     `json:"-" gorm:"not null"`
	ThumbnailKey string     `json:"-"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnail_url"`
	Price        float64    `json:"price" gorm:"not null;default:0"`
	IsPublic     bool       `json:"is_public" gorm:"default:true"`
	IsSold       bool       `json:"is_sold" gorm:"default:false"`
	SoldAt       *time.Time `json:"sold_at"`
	DeleteAfter  *time.Time `json:"delete_after"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CreateMediaRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	MediaType   string  `json:"media_type" validate:"required,oneof=image video audio"`
	Price       float64 `json:"price" validate:"gte=0"`
	IsPublic    bool    `json:"is_public"`
}

type MediaResponse struct {
	ID           uint       `json:"id"`
	OwnerID      uint       `json:"owner_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	MediaType    string     `json:"media_type"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnail_url"`
	Price        float64    `json:"price"`
	IsPublic     bool       `json:"is_public"`
	IsSold       bool       `json:"is_sold"`
	DeleteAfter  *time.Time `json:"delete_after,omitempty"`
	Rating       float64    `json:"rating"`
	RatingCount  int64      `json:"rating_count"`
	CreatedAt    time.Time  `json:"created_at"`
}
