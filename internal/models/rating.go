package models

import (
	"time"
)

type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_rating_user_media"`
	MediaID   uint      `json:"media_id" gorm:"not null;uniqueIndex:idx_rating_user_media"`
	Score     int       `json:"score" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RateMediaRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
