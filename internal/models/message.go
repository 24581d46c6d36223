package models

import (
	"time"
)

type Message struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    uint      `json:"sender_id" gorm:"not null;index"`
	RecipientID uint      `json:"recipient_id" gorm:"not null;index"`
	Body        string    `json:"body" gorm:"not null"`
	Read        bool      `json:"read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Body        string `json:"body" validate:"required,max=2000"`
}

// ConversationSummary bir sohbet listesi satırı
type ConversationSummary struct {
	PartnerID     uint      `json:"partner_id"`
	PartnerName   string    `json:"partner_name"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int64     `json:"unread_count"`
}
