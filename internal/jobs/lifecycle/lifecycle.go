package lifecycle

import (
	"time"

	"go.uber.org/zap"

	"github.com/sefazor/aimarket-backend/internal/models"
)

// Hatırlatma eşikleri (kalan gün)
var ReminderThresholds = []int{7, 3, 1}

// Mail ve bildirimde listelenen maksimum başlık sayısı
const ReminderTitleLimit = 3

type MediaStore interface {
	GetByID(id uint) (*models.Media, error)
	Update(media *models.Media) error
	FindSoldExpiring(now time.Time) ([]models.Media, error)
	FindSoldExpired(now time.Time) ([]models.Media, error)
	Delete(id uint) error
}

type PurchaseStore interface {
	FindCompletedByMediaIDs(mediaIDs []uint) ([]models.Purchase, error)
}

type UserStore interface {
	GetByID(id uint) (*models.User, error)
}

type NotificationStore interface {
	Create(notification *models.Notification) error
}

type ReminderStore interface {
	AlreadySent(buyerID uint, day string, threshold int) (bool, error)
	Record(buyerID uint, day string, threshold int) error
}

type Mailer interface {
	SendExpiryReminder(email, fullName string, titles []string, moreCount, daysLeft int) error
}

type BlobStore interface {
	DeleteIfExists(key string) error
}

// Job satış sonrası içerik yaşam döngüsünü yürütür: satıldı işaretleme,
// silinme hatırlatmaları ve süresi dolan içeriklerin temizliği.
type Job struct {
	media         MediaStore
	purchases     PurchaseStore
	users         UserStore
	notifications NotificationStore
	reminders     ReminderStore
	mailer        Mailer
	storage       BlobStore
	now           func() time.Time
	logger        *zap.Logger
}

func New(
	media MediaStore,
	purchases PurchaseStore,
	users UserStore,
	notifications NotificationStore,
	reminders ReminderStore,
	mailer Mailer,
	storage BlobStore,
	logger *zap.Logger,
) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		media:         media,
		purchases:     purchases,
		users:         users,
		notifications: notifications,
		reminders:     reminders,
		mailer:        mailer,
		storage:       storage,
		now:           time.Now,
		logger:        logger,
	}
}

// MarkSold içeriği satıldı olarak damgalar. Zaten satılmışsa no-op'tur ve
// yazma yapmaz. soldAt = completedAt (yoksa şimdi), deleteAfter = soldAt + 10 gün.
// Satılan içerik vitrinden kalkar.
func (j *Job) MarkSold(media *models.Media, completedAt *time.Time) (bool, error) {
	if media.IsSold {
		return false, nil
	}

	soldAt := j.now()
	if completedAt != nil {
		soldAt = *completedAt
	}
	deleteAfter := soldAt.Add(models.RetentionPeriod)

	media.IsSold = true
	media.SoldAt = &soldAt
	media.DeleteAfter = &deleteAfter
	media.IsPublic = false

	if err := j.media.Update(media); err != nil {
		return false, err
	}

	j.logger.Info("media marked sold",
		zap.Uint("media_id", media.ID),
		zap.Time("delete_after", deleteAfter))
	return true, nil
}

// MarkSoldByID id üzerinden MarkSold
func (j *Job) MarkSoldByID(mediaID uint, completedAt *time.Time) (bool, error) {
	media, err := j.media.GetByID(mediaID)
	if err != nil {
		return false, err
	}
	return j.MarkSold(media, completedAt)
}

type MarkSoldResult struct {
	MediaID uint   `json:"media_id"`
	Marked  bool   `json:"marked"`
	Error   string `json:"error,omitempty"`
}

// MarkSoldBatch her öğeyi ayrı işler; bir öğenin hatası diğerlerini durdurmaz
func (j *Job) MarkSoldBatch(mediaIDs []uint, completedAt *time.Time) []MarkSoldResult {
	results := make([]MarkSoldResult, 0, len(mediaIDs))
	for _, id := range mediaIDs {
		marked, err := j.MarkSoldByID(id, completedAt)
		result := MarkSoldResult{MediaID: id, Marked: marked}
		if err != nil {
			result.Error = err.Error()
			j.logger.Warn("failed to mark media sold",
				zap.Uint("media_id", id), zap.Error(err))
		}
		results = append(results, result)
	}
	return results
}

// daysLeft silinmeye kalan gün sayısı, 24 saatlik dilimlere yukarı yuvarlanır
func daysLeft(deleteAfter, now time.Time) int {
	remaining := deleteAfter.Sub(now)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	return days
}
