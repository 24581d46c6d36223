package service

import (
	"errors"

	"github.com/sefazor/aimarket-backend/internal/models"
)

type notificationStore interface {
	Create(notification *models.Notification) error
	GetByUserID(userID uint, limit int) ([]models.Notification, error)
	MarkRead(id, userID uint) (int64, error)
	CountUnread(userID uint) (int64, error)
}

type NotificationService struct {
	store notificationStore
}

func NewNotificationService(store notificationStore) *NotificationService {
	return &NotificationService{store: store}
}

// GetInbox en yeniden eskiye, sabit sayfa boyutuyla
func (s *NotificationService) GetInbox(userID uint) ([]models.Notification, error) {
	return s.store.GetByUserID(userID, models.NotificationPageSize)
}

// MarkRead sahiplik sorgu filtresinde kontrol edilir; başkasının
// bildirimi sıfır satır günceller ve not found döner
func (s *NotificationService) MarkRead(id, userID uint) error {
	affected, err := s.store.MarkRead(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("notification not found")
	}
	return nil
}

func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	return s.store.CountUnread(userID)
}
