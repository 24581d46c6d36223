package repository

import (
	"github.com/sefazor/aimarket-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert kullanıcı+içerik başına tek satır; tekrar oylamada skor güncellenir
func (r *RatingRepository) Upsert(rating *models.Rating) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(rating).Error
}

func (r *RatingRepository) GetSummary(mediaID uint) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	err := r.db.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("media_id = ?", mediaID).
		Scan(&summary).Error
	return &summary, err
}

func (r *RatingRepository) DeleteByMediaID(mediaID uint) error {
	return r.db.Where("media_id = ?", mediaID).Delete(&models.Rating{}).Error
}
