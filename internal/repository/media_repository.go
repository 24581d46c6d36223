package repository

import (
	"time"

	"github.com/sefazor/aimarket-backend/internal/models"
	"gorm.io/gorm"
)

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

func (r *MediaRepository) Create(media *models.Media) error {
	return r.db.Create(media).Error
}

func (r *MediaRepository) GetByID(id uint) (*models.Media, error) {
	var media models.Media
	err := r.db.First(&media, id).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *MediaRepository) GetByOwnerID(ownerID uint) ([]models.Media, error) {
	var items []models.Media
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// GetPublic satılmamış herkese açık içerikleri döner
func (r *MediaRepository) GetPublic(mediaType string) ([]models.Media, error) {
	var items []models.Media
	query := r.db.Where("is_public = ? AND is_sold = ?", true, false)
	if mediaType != "" {
		query = query.Where("media_type = ?", mediaType)
	}
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *MediaRepository) Update(media *models.Media) error {
	return r.db.Save(media).Error
}

func (r *MediaRepository) Delete(id uint) error {
	return r.db.Delete(&models.Media{}, id).Error
}

// FindSoldExpiring silinme tarihi henüz gelmemiş satılmış içerikler
func (r *MediaRepository) FindSoldExpiring(now time.Time) ([]models.Media, error) {
	var items []models.Media
	err := r.db.Where("is_sold = ? AND delete_after > ?", true, now).
		Find(&items).Error
	return items, err
}

// FindSoldExpired silinme tarihi geçmiş satılmış içerikler
func (r *MediaRepository) FindSoldExpired(now time.Time) ([]models.Media, error) {
	var items []models.Media
	err := r.db.Where("is_sold = ? AND delete_after <= ?", true, now).
		Find(&items).Error
	return items, err
}
