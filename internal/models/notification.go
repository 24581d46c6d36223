package models

import (
	"time"
)

// Notification tipleri
const (
	NotificationTypePurchase = "purchase"
	NotificationTypeSale     = "sale"
	NotificationTypeReminder = "expiry_reminder"
	NotificationTypeMessage  = "message"
)

// Inbox sayfa boyutu
const NotificationPageSize = 20

type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Type      string    `json:"type" gorm:"not null"`
	Title     string    `json:"title" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	Link      string    `json:"link"`
	Read      bool      `json:"read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
