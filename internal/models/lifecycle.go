package models

import (
	"time"
)

// ReminderLog alıcı+gün+eşik başına bir satır; aynı gün tekrar çalıştırılan
// hatırlatma job'ının mükerrer mail atmasını engeller.
type ReminderLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BuyerID   uint      `json:"buyer_id" gorm:"not null;uniqueIndex:idx_reminder_buyer_day"`
	SentOn    string    `json:"sent_on" gorm:"not null;uniqueIndex:idx_reminder_buyer_day"` // YYYY-MM-DD
	Threshold int       `json:"threshold" gorm:"not null;uniqueIndex:idx_reminder_buyer_day"`
	CreatedAt time.Time `json:"created_at"`
}

// JobRun zamanlayıcı endpoint'lerinin audit kaydı
type JobRun struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null"`
	StartedAt  time.Time `json:"started_at" gorm:"not null"`
	FinishedAt time.Time `json:"finished_at"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}
