package repository

import (
	"github.com/sefazor/aimarket-backend/internal/models"
	"gorm.io/gorm"
)

type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) Create(purchase *models.Purchase) error {
	return r.db.Create(purchase).Error
}

func (r *PurchaseRepository) GetBySessionID(sessionID string) (*models.Purchase, error) {
	var purchase models.Purchase
	err := r.db.Where("stripe_session_id = ?", sessionID).First(&purchase).Error
	return &purchase, err
}

func (r *PurchaseRepository) Update(purchase *models.Purchase) error {
	return r.db.Save(purchase).Error
}

func (r *PurchaseRepository) GetBuyerHistory(buyerID uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := r.db.Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&purchases).Error
	return purchases, err
}

// HasCompletedPurchase alıcının bu içerik için tamamlanmış ödemesi var mı
func (r *PurchaseRepository) HasCompletedPurchase(buyerID, mediaID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Purchase{}).
		Where("buyer_id = ? AND media_id = ? AND status = ?",
			buyerID, mediaID, models.PurchaseStatusCompleted).
		Count(&count).Error
	return count > 0, err
}

// FindCompletedByMediaIDs verilen içeriklerin tamamlanmış satın alımları
func (r *PurchaseRepository) FindCompletedByMediaIDs(mediaIDs []uint) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if len(mediaIDs) == 0 {
		return purchases, nil
	}
	err := r.db.Where("media_id IN ? AND status = ?", mediaIDs, models.PurchaseStatusCompleted).
		Find(&purchases).Error
	return purchases, err
}
