package repository

import (
	"github.com/sefazor/aimarket-backend/internal/models"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetThread iki kullanıcı arasındaki mesajlar, eskiden yeniye
func (r *MessageRepository) GetThread(userID, partnerID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userID, partnerID, partnerID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// GetPartnerIDs kullanıcının mesajlaştığı diğer kullanıcılar
func (r *MessageRepository) GetPartnerIDs(userID uint) ([]uint, error) {
	var partnerIDs []uint
	err := r.db.Raw(`
		SELECT DISTINCT CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END
		FROM messages
		WHERE sender_id = ? OR recipient_id = ?`,
		userID, userID, userID).Scan(&partnerIDs).Error
	return partnerIDs, err
}

// GetLastMessage iki kullanıcı arasındaki son mesaj
func (r *MessageRepository) GetLastMessage(userID, partnerID uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Where(
		"(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
		userID, partnerID, partnerID, userID).
		Order("created_at DESC").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) CountUnreadFrom(userID, partnerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read = ?", userID, partnerID, false).
		Count(&count).Error
	return count, err
}

// MarkThreadRead partnerden gelen okunmamış mesajları okundu işaretler
func (r *MessageRepository) MarkThreadRead(userID, partnerID uint) error {
	return r.db.Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND read = ?", userID, partnerID, false).
		Update("read", true).Error
}
