package models

import (
	"time"
)

// VerificationCode email başına tek satır, yenilemede üzerine yazılır.
// Kullanımda veya süre kontrolünde silinir.
type VerificationCode struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Code      string    `json:"-" gorm:"not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
