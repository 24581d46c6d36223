package lifecycle

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sefazor/aimarket-backend/internal/models"
)

type ReminderResult struct {
	BuyerID  uint   `json:"buyer_id"`
	DaysLeft int    `json:"days_left"`
	Items    int    `json:"items"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

type ReminderReport struct {
	RemindersSent int              `json:"reminders_sent"`
	TotalBuyers   int              `json:"total_buyers"`
	Results       []ReminderResult `json:"results"`
}

// SendReminders günde bir dış zamanlayıcıyla çağrılır. Satılmış ve henüz
// silinmemiş içerikleri alıcı bazında gruplar; alıcının minimum kalan günü
// {7,3,1} eşiklerinden birine denk geliyorsa tek bir hatırlatma gönderir.
// Hatırlatma, kalan günü 7 ve altındaki tüm içerikleri kapsar. Aynı gün
// aynı eşik için ikinci gönderim ReminderLog ile engellenir. Bir alıcının
// hatası diğer alıcıların işlenmesini durdurmaz.
func (j *Job) SendReminders() (*ReminderReport, error) {
	now := j.now()

	items, err := j.media.FindSoldExpiring(now)
	if err != nil {
		return nil, fmt.Errorf("list sold media: %w", err)
	}

	report := &ReminderReport{Results: []ReminderResult{}}
	if len(items) == 0 {
		return report, nil
	}

	mediaByID := make(map[uint]models.Media, len(items))
	mediaIDs := make([]uint, 0, len(items))
	for _, m := range items {
		mediaByID[m.ID] = m
		mediaIDs = append(mediaIDs, m.ID)
	}

	purchases, err := j.purchases.FindCompletedByMediaIDs(mediaIDs)
	if err != nil {
		return nil, fmt.Errorf("list completed purchases: %w", err)
	}

	// Alıcı başına içerik listesi; aynı içerik iki kez sayılmaz
	buyerMedia := make(map[uint][]models.Media)
	seen := make(map[string]bool)
	for _, p := range purchases {
		m, ok := mediaByID[p.MediaID]
		if !ok {
			continue
		}
		key := fmt.Sprintf("%d:%d", p.BuyerID, p.MediaID)
		if seen[key] {
			continue
		}
		seen[key] = true
		buyerMedia[p.BuyerID] = append(buyerMedia[p.BuyerID], m)
	}

	buyerIDs := make([]uint, 0, len(buyerMedia))
	for id := range buyerMedia {
		buyerIDs = append(buyerIDs, id)
	}
	sort.Slice(buyerIDs, func(i, k int) bool { return buyerIDs[i] < buyerIDs[k] })

	report.TotalBuyers = len(buyerIDs)
	day := now.Format("2006-01-02")

	for _, buyerID := range buyerIDs {
		result := j.remindBuyer(buyerID, buyerMedia[buyerID], now, day)
		if result.Status == "sent" {
			report.RemindersSent++
		}
		report.Results = append(report.Results, result)
	}

	j.logger.Info("expiry reminder run completed",
		zap.Int("sent", report.RemindersSent),
		zap.Int("buyers", report.TotalBuyers))
	return report, nil
}

func (j *Job) remindBuyer(buyerID uint, items []models.Media, now time.Time, day string) ReminderResult {
	minDays := 0
	for _, m := range items {
		d := daysLeft(*m.DeleteAfter, now)
		if minDays == 0 || d < minDays {
			minDays = d
		}
	}

	result := ReminderResult{BuyerID: buyerID, DaysLeft: minDays}

	if !isThreshold(minDays) {
		result.Status = "skipped_threshold"
		return result
	}

	sent, err := j.reminders.AlreadySent(buyerID, day, minDays)
	if err != nil {
		result.Status = "error"
		result.Error = err.Error()
		return result
	}
	if sent {
		result.Status = "skipped_duplicate"
		return result
	}

	// Hatırlatma, kalan günü 7 ve altındaki tüm içerikleri kapsar
	covered := make([]models.Media, 0, len(items))
	for _, m := range items {
		if daysLeft(*m.DeleteAfter, now) <= 7 {
			covered = append(covered, m)
		}
	}
	sort.Slice(covered, func(i, k int) bool {
		return covered[i].DeleteAfter.Before(*covered[k].DeleteAfter)
	})
	result.Items = len(covered)

	titles := make([]string, 0, ReminderTitleLimit)
	for i, m := range covered {
		if i == ReminderTitleLimit {
			break
		}
		titles = append(titles, m.Title)
	}
	moreCount := len(covered) - len(titles)

	buyer, err := j.users.GetByID(buyerID)
	if err != nil {
		result.Status = "error"
		result.Error = fmt.Sprintf("load buyer: %v", err)
		j.logger.Warn("reminder buyer lookup failed",
			zap.Uint("buyer_id", buyerID), zap.Error(err))
		return result
	}

	if err := j.mailer.SendExpiryReminder(buyer.Email, buyer.FullName, titles, moreCount, minDays); err != nil {
		result.Status = "error"
		result.Error = fmt.Sprintf("send email: %v", err)
		j.logger.Warn("reminder email failed",
			zap.Uint("buyer_id", buyerID), zap.Error(err))
		return result
	}

	// Mail gitti; log hemen yazılır ki aynı günkü bir rerun alıcıya
	// ikinci mail atmasın
	if err := j.reminders.Record(buyerID, day, minDays); err != nil {
		result.Status = "error"
		result.Error = fmt.Sprintf("record reminder: %v", err)
		return result
	}

	result.Status = "sent"

	notification := &models.Notification{
		UserID:  buyerID,
		Type:    models.NotificationTypeReminder,
		Title:   fmt.Sprintf("Purchased content expires in %d day(s)", minDays),
		Message: reminderMessage(titles, moreCount, minDays),
		Link:    "/purchases",
	}
	if err := j.notifications.Create(notification); err != nil {
		// Bildirim hatası gönderimi geri almaz, ayrıca raporlanır
		result.Error = fmt.Sprintf("create notification: %v", err)
		j.logger.Warn("reminder notification failed",
			zap.Uint("buyer_id", buyerID), zap.Error(err))
	}

	return result
}

func isThreshold(days int) bool {
	for _, t := range ReminderThresholds {
		if days == t {
			return true
		}
	}
	return false
}

func reminderMessage(titles []string, moreCount, daysLeft int) string {
	msg := fmt.Sprintf("These purchases will be deleted in %d day(s): %s",
		daysLeft, strings.Join(titles, ", "))
	if moreCount > 0 {
		msg += fmt.Sprintf(" and %d more", moreCount)
	}
	return msg
}
