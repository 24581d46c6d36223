package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sefazor/aimarket-backend/internal/models"
	"github.com/sefazor/aimarket-backend/internal/repository"
	"github.com/sefazor/aimarket-backend/pkg/storage"
	"github.com/sefazor/aimarket-backend/pkg/utils"
)

type MediaService struct {
	mediaRepo  *repository.MediaRepository
	userRepo   *repository.UserRepository
	ratingRepo *repository.RatingRepository
	storage    storage.StorageService
}

func NewMediaService(
	mediaRepo *repository.MediaRepository,
	userRepo *repository.UserRepository,
	ratingRepo *repository.RatingRepository,
	storageService storage.StorageService,
) *MediaService {
	return &MediaService{
		mediaRepo:  mediaRepo,
		userRepo:   userRepo,
		ratingRepo: ratingRepo,
		storage:    storageService,
	}
}

// Upload dosyayı R2'ye yükler ve içerik kaydını oluşturur. Kullanıcının
// yükleme hakkı yoksa (kota dolu, kredi yok) reddedilir.
func (s *MediaService) Upload(userID uint, req models.CreateMediaRequest, file *multipart.FileHeader, thumbnail *multipart.FileHeader) (*models.Media, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	quote := QuoteUpload(user)
	if !quote.Allowed {
		return nil, errors.New(quote.Status)
	}

	mimeType := file.Header.Get("Content-Type")
	mediaType := utils.MediaTypeForMime(mimeType)
	if mediaType == "" {
		return nil, fmt.Errorf("unsupported file type: %s", mimeType)
	}
	if mediaType != req.MediaType {
		return nil, fmt.Errorf("file type %s does not match declared media type %s", mediaType, req.MediaType)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	key := fmt.Sprintf("media/%d/%s%s", userID, uuid.New().String(), filepath.Ext(file.Filename))
	if err := s.storage.Upload(key, src); err != nil {
		return nil, err
	}

	media := &models.Media{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		MediaType:   mediaType,
		FileName:    file.Filename,
		FileSize:    file.Size,
		MimeType:    mimeType,
		R2Key:       key,
		URL:         s.storage.PublicURL(key),
		Price:       req.Price,
		IsPublic:    req.IsPublic,
	}

	if thumbnail != nil {
		thumbSrc, err := thumbnail.Open()
		if err != nil {
			return nil, err
		}
		defer thumbSrc.Close()

		thumbKey := fmt.Sprintf("media/%d/thumb/%s%s", userID, uuid.New().String(), filepath.Ext(thumbnail.Filename))
		if err := s.storage.Upload(thumbKey, thumbSrc); err != nil {
			return nil, err
		}
		media.ThumbnailKey = thumbKey
		media.ThumbnailURL = s.storage.PublicURL(thumbKey)
	}

	if err := s.mediaRepo.Create(media); err != nil {
		// Kayıt yazılamadıysa yüklenen dosyalar yetim kalmasın
		s.storage.DeleteIfExists(media.R2Key)
		s.storage.DeleteIfExists(media.ThumbnailKey)
		return nil, err
	}

	// Yükleme hakkını düş
	if quote.Free {
		user.FreeUploadsUsed++
	} else if quote.UsesCredit {
		user.UploadCredits--
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return media, nil
}

func (s *MediaService) GetPublicMedia(mediaType string) ([]models.Media, error) {
	return s.mediaRepo.GetPublic(mediaType)
}

func (s *MediaService) GetUserMedia(userID uint) ([]models.Media, error) {
	return s.mediaRepo.GetByOwnerID(userID)
}

func (s *MediaService) GetByID(id uint) (*models.Media, error) {
	return s.mediaRepo.GetByID(id)
}

// Delete yalnızca sahibi ve satılmamışken. Satış sonrası silme zamanını
// satış tarihi belirler, sahip değil.
func (s *MediaService) Delete(mediaID, userID uint) error {
	media, err := s.mediaRepo.GetByID(mediaID)
	if err != nil {
		return err
	}

	if media.OwnerID != userID {
		return errors.New("you do not own this media")
	}
	if media.IsSold {
		return errors.New("sold media is removed automatically after its retention window")
	}

	if err := s.storage.DeleteIfExists(media.R2Key); err != nil {
		return err
	}
	if err := s.storage.DeleteIfExists(media.ThumbnailKey); err != nil {
		return err
	}

	if err := s.ratingRepo.DeleteByMediaID(media.ID); err != nil {
		return err
	}

	return s.mediaRepo.Delete(media.ID)
}

// ToResponse rating özetiyle birlikte API cevabı üretir
func (s *MediaService) ToResponse(media *models.Media) models.MediaResponse {
	resp := models.MediaResponse{
		ID:           media.ID,
		OwnerID:      media.OwnerID,
		Title:        media.Title,
		Description:  media.Description,
		MediaType:    media.MediaType,
		URL:          media.URL,
		ThumbnailURL: media.ThumbnailURL,
		Price:        media.Price,
		IsPublic:     media.IsPublic,
		IsSold:       media.IsSold,
		DeleteAfter:  media.DeleteAfter,
		CreatedAt:    media.CreatedAt,
	}

	if summary, err := s.ratingRepo.GetSummary(media.ID); err == nil {
		resp.Rating = summary.Average
		resp.RatingCount = summary.Count
	}

	return resp
}
