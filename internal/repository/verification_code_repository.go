package repository

import (
	"github.com/sefazor/aimarket-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) *VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

// Upsert email başına tek satır; yeni kod eskisinin üzerine yazılır
func (r *VerificationCodeRepository) Upsert(code *models.VerificationCode) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
	}).Create(code).Error
}

func (r *VerificationCodeRepository) GetByEmail(email string) (*models.VerificationCode, error) {
	var code models.VerificationCode
	err := r.db.Where("email = ?", email).First(&code).Error
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *VerificationCodeRepository) DeleteByEmail(email string) error {
	return r.db.Where("email = ?", email).Delete(&models.VerificationCode{}).Error
}
