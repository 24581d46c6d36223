package service

import (
	"errors"

	"github.com/sefazor/aimarket-backend/internal/models"
	"github.com/sefazor/aimarket-backend/internal/repository"
)

type MessageService struct {
	messageRepo      *repository.MessageRepository
	userRepo         *repository.UserRepository
	notificationRepo *repository.NotificationRepository
}

func NewMessageService(
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
) *MessageService {
	return &MessageService{
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *MessageService) Send(senderID uint, req models.SendMessageRequest) (*models.Message, error) {
	if senderID == req.RecipientID {
		return nil, errors.New("you cannot message yourself")
	}

	sender, err := s.userRepo.GetByID(senderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(req.RecipientID); err != nil {
		return nil, errors.New("recipient not found")
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: req.RecipientID,
		Body:        req.Body,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, err
	}

	// Alıcıya bildirim; başarısızlık mesajı geri almaz
	s.notificationRepo.Create(&models.Notification{
		UserID:  req.RecipientID,
		Type:    models.NotificationTypeMessage,
		Title:   "New message",
		Message: sender.FullName + " sent you a message",
		Link:    "/messages",
	})

	return message, nil
}

func (s *MessageService) GetConversations(userID uint) ([]models.ConversationSummary, error) {
	partnerIDs, err := s.messageRepo.GetPartnerIDs(userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(partnerIDs))
	for _, partnerID := range partnerIDs {
		partner, err := s.userRepo.GetByID(partnerID)
		if err != nil {
			continue
		}

		last, err := s.messageRepo.GetLastMessage(userID, partnerID)
		if err != nil {
			continue
		}

		unread, err := s.messageRepo.CountUnreadFrom(userID, partnerID)
		if err != nil {
			unread = 0
		}

		summaries = append(summaries, models.ConversationSummary{
			PartnerID:     partnerID,
			PartnerName:   partner.FullName,
			LastMessage:   last.Body,
			LastMessageAt: last.CreatedAt,
			UnreadCount:   unread,
		})
	}

	return summaries, nil
}

func (s *MessageService) GetThread(userID, partnerID uint) ([]models.Message, error) {
	messages, err := s.messageRepo.GetThread(userID, partnerID)
	if err != nil {
		return nil, err
	}

	// Thread açılınca partnerden gelenler okundu sayılır
	if err := s.messageRepo.MarkThreadRead(userID, partnerID); err != nil {
		return nil, err
	}

	return messages, nil
}
