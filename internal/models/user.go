package models

import (
	"time"
)

// Membership tiers
const (
	TierFree = "free"
	TierPlus = "plus"
	TierPro  = "pro"
)

type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	FullName        string    `json:"full_name" gorm:"not null"`
	Email           string    `json:"email" gorm:"unique;not null"`
	Password        string    `json:"-" gorm:"not null"`
	Tier            string    `json:"tier" gorm:"not null;default:'free'"`
	FreeUploadsUsed int       `json:"free_uploads_used" gorm:"not null;default:0"`
	UploadCredits   int       `json:"upload_credits" gorm:"not null;default:0"`
	IsVerified      bool      `json:"is_verified" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
