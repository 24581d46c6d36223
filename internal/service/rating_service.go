package service

import (
	"errors"

	"github.com/sefazor/aimarket-backend/internal/models"
	"github.com/sefazor/aimarket-backend/internal/repository"
)

type RatingService struct {
	ratingRepo *repository.RatingRepository
	mediaRepo  *repository.MediaRepository
}

func NewRatingService(ratingRepo *repository.RatingRepository, mediaRepo *repository.MediaRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		mediaRepo:  mediaRepo,
	}
}

// Rate kullanıcı+içerik başına tek oy; tekrar oylama skoru günceller
func (s *RatingService) Rate(userID, mediaID uint, score int) (*models.RatingSummary, error) {
	media, err := s.mediaRepo.GetByID(mediaID)
	if err != nil {
		return nil, errors.New("media not found")
	}

	if media.OwnerID == userID {
		return nil, errors.New("you cannot rate your own media")
	}

	rating := &models.Rating{
		UserID:  userID,
		MediaID: mediaID,
		Score:   score,
	}
	if err := s.ratingRepo.Upsert(rating); err != nil {
		return nil, err
	}

	return s.ratingRepo.GetSummary(mediaID)
}

func (s *RatingService) GetSummary(mediaID uint) (*models.RatingSummary, error) {
	return s.ratingRepo.GetSummary(mediaID)
}
