package repository

import (
	"github.com/sefazor/aimarket-backend/internal/models"
	"gorm.io/gorm"
)

type ReminderLogRepository struct {
	db *gorm.DB
}

func NewReminderLogRepository(db *gorm.DB) *ReminderLogRepository {
	return &ReminderLogRepository{db: db}
}

func (r *ReminderLogRepository) AlreadySent(buyerID uint, day string, threshold int) (bool, error) {
	var count int64
	err := r.db.Model(&models.ReminderLog{}).
		Where("buyer_id = ? AND sent_on = ? AND threshold = ?", buyerID, day, threshold).
		Count(&count).Error
	return count > 0, err
}

func (r *ReminderLogRepository) Record(buyerID uint, day string, threshold int) error {
	return r.db.Create(&models.ReminderLog{
		BuyerID:   buyerID,
		SentOn:    day,
		Threshold: threshold,
	}).Error
}
