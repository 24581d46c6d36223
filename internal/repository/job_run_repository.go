package repository

import (
	"github.com/sefazor/aimarket-backend/internal/models"
	"gorm.io/gorm"
)

type JobRunRepository struct {
	db *gorm.DB
}

func NewJobRunRepository(db *gorm.DB) *JobRunRepository {
	return &JobRunRepository{db: db}
}

func (r *JobRunRepository) Create(run *models.JobRun) error {
	return r.db.Create(run).Error
}

func (r *JobRunRepository) GetRecent(name string, limit int) ([]models.JobRun, error) {
	var runs []models.JobRun
	err := r.db.Where("name = ?", name).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}
