package models

import (
	"time"
)

// Purchase durumları
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"
	PurchaseStatusRefunded  = "refunded"
)

type Purchase struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	BuyerID         uint       `json:"buyer_id" gorm:"not null;index"`
	SellerID        uint       `json:"seller_id" gorm:"not null;index"`
	MediaID         uint       `json:"media_id" gorm:"not null;index"`
	Amount          float64    `json:"amount" gorm:"not null"`
	Currency        string     `json:"currency" gorm:"not null;default:'usd'"`
	Status          string     `json:"status" gorm:"not null;default:'pending'"`
	StripeSessionID string     `json:"stripe_session_id" gorm:"unique;not null"`
	CompletedAt     *time.Time `json:"completed_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type CheckoutSession struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
}
