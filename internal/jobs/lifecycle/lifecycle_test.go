package lifecycle

import (
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/sefazor/aimarket-backend/internal/models"
)

type fakeMediaStore struct {
	items   map[uint]*models.Media
	updates int
	deleted []uint
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{items: map[uint]*models.Media{}}
}

func (f *fakeMediaStore) GetByID(id uint) (*models.Media, error) {
	m, ok := f.items[id]
	if !ok {
		return nil, errors.New("media not found")
	}
	return m, nil
}

func (f *fakeMediaStore) Update(m *models.Media) error {
	f.updates++
	f.items[m.ID] = m
	return nil
}

func (f *fakeMediaStore) FindSoldExpiring(now time.Time) ([]models.Media, error) {
	return f.filter(func(m *models.Media) bool {
		return m.IsSold && m.DeleteAfter != nil && m.DeleteAfter.After(now)
	}), nil
}

func (f *fakeMediaStore) FindSoldExpired(now time.Time) ([]models.Media, error) {
	return f.filter(func(m *models.Media) bool {
		return m.IsSold && m.DeleteAfter != nil && !m.DeleteAfter.After(now)
	}), nil
}

func (f *fakeMediaStore) Delete(id uint) error {
	delete(f.items, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeMediaStore) filter(keep func(*models.Media) bool) []models.Media {
	var out []models.Media
	for _, m := range f.items {
		if keep(m) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

type fakePurchaseStore struct {
	purchases []models.Purchase
}

func (f *fakePurchaseStore) FindCompletedByMediaIDs(mediaIDs []uint) ([]models.Purchase, error) {
	wanted := map[uint]bool{}
	for _, id := range mediaIDs {
		wanted[id] = true
	}
	var out []models.Purchase
	for _, p := range f.purchases {
		if wanted[p.MediaID] && p.Status == models.PurchaseStatusCompleted {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeUserStore struct {
	users map[uint]*models.User
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

type fakeNotificationStore struct {
	created []models.Notification
	err     error
}

func (f *fakeNotificationStore) Create(n *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *n)
	return nil
}

type fakeReminderStore struct {
	records map[string]bool
}

func newFakeReminderStore() *fakeReminderStore {
	return &fakeReminderStore{records: map[string]bool{}}
}

func (f *fakeReminderStore) key(buyerID uint, day string, threshold int) string {
	return fmt.Sprintf("%d|%s|%d", buyerID, day, threshold)
}

func (f *fakeReminderStore) AlreadySent(buyerID uint, day string, threshold int) (bool, error) {
	return f.records[f.key(buyerID, day, threshold)], nil
}

func (f *fakeReminderStore) Record(buyerID uint, day string, threshold int) error {
	f.records[f.key(buyerID, day, threshold)] = true
	return nil
}

type sentMail struct {
	email     string
	titles    []string
	moreCount int
	daysLeft  int
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]error
}

func (f *fakeMailer) SendExpiryReminder(email, fullName string, titles []string, moreCount, daysLeft int) error {
	if err := f.failFor[email]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentMail{email: email, titles: titles, moreCount: moreCount, daysLeft: daysLeft})
	return nil
}

type fakeBlobStore struct {
	deleted  []string
	failKeys map[string]error
}

func (f *fakeBlobStore) DeleteIfExists(key string) error {
	if key == "" {
		return nil
	}
	if err := f.failKeys[key]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, key)
	return nil
}

type fixture struct {
	media         *fakeMediaStore
	purchases     *fakePurchaseStore
	users         *fakeUserStore
	notifications *fakeNotificationStore
	reminders     *fakeReminderStore
	mailer        *fakeMailer
	storage       *fakeBlobStore
	job           *Job
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		media:         newFakeMediaStore(),
		purchases:     &fakePurchaseStore{},
		users:         &fakeUserStore{users: map[uint]*models.User{}},
		notifications: &fakeNotificationStore{},
		reminders:     newFakeReminderStore(),
		mailer:        &fakeMailer{failFor: map[string]error{}},
		storage:       &fakeBlobStore{failKeys: map[string]error{}},
	}
	f.job = New(f.media, f.purchases, f.users, f.notifications, f.reminders, f.mailer, f.storage, nil)
	f.job.now = func() time.Time { return now }
	return f
}

func (f *fixture) addBuyer(id uint, email string) {
	f.users.users[id] = &models.User{ID: id, FullName: "Buyer", Email: email}
}

// addSoldMedia kalan gün sayısına göre satılmış içerik ve tamamlanmış
// satın alım ekler
func (f *fixture) addSoldMedia(id, buyerID uint, title string, daysLeft int, now time.Time) {
	deleteAfter := now.Add(time.Duration(daysLeft) * 24 * time.Hour)
	soldAt := deleteAfter.Add(-models.RetentionPeriod)
	f.media.items[id] = &models.Media{
		ID:          id,
		OwnerID:     900,
		Title:       title,
		R2Key:       fmt.Sprintf("media/%d/blob", id),
		IsSold:      true,
		SoldAt:      &soldAt,
		DeleteAfter: &deleteAfter,
	}
	f.purchases.purchases = append(f.purchases.purchases, models.Purchase{
		BuyerID: buyerID,
		MediaID: id,
		Status:  models.PurchaseStatusCompleted,
	})
}

func TestMarkSoldStampsRetentionWindow(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	completedAt := now.Add(-2 * time.Hour)
	f.media.items[1] = &models.Media{ID: 1, Title: "Neon City", IsPublic: true}

	marked, err := f.job.MarkSoldByID(1, &completedAt)
	if err != nil {
		t.Fatalf("mark sold: %v", err)
	}
	if !marked {
		t.Fatalf("expected media to be marked sold")
	}

	m := f.media.items[1]
	if !m.IsSold {
		t.Fatalf("expected is_sold to be set")
	}
	if m.SoldAt == nil || !m.SoldAt.Equal(completedAt) {
		t.Fatalf("expected sold_at to equal purchase completion time")
	}
	if m.DeleteAfter == nil || !m.DeleteAfter.Equal(completedAt.Add(models.RetentionPeriod)) {
		t.Fatalf("expected delete_after to be sold_at plus 10 days, got %v", m.DeleteAfter)
	}
	if m.IsPublic {
		t.Fatalf("sold media must not stay public")
	}
}

func TestMarkSoldFallsBackToNow(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.media.items[1] = &models.Media{ID: 1, Title: "Waves"}

	if _, err := f.job.MarkSoldByID(1, nil); err != nil {
		t.Fatalf("mark sold: %v", err)
	}

	m := f.media.items[1]
	if m.SoldAt == nil || !m.SoldAt.Equal(now) {
		t.Fatalf("expected sold_at to fall back to now")
	}
}

func TestMarkSoldIsIdempotent(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.media.items[1] = &models.Media{ID: 1, Title: "Dunes", IsPublic: true}

	if _, err := f.job.MarkSoldByID(1, nil); err != nil {
		t.Fatalf("first mark sold: %v", err)
	}
	firstUpdates := f.media.updates
	firstSoldAt := *f.media.items[1].SoldAt

	marked, err := f.job.MarkSoldByID(1, nil)
	if err != nil {
		t.Fatalf("second mark sold: %v", err)
	}
	if marked {
		t.Fatalf("second call must be a no-op")
	}
	if f.media.updates != firstUpdates {
		t.Fatalf("second call must not write, updates went from %d to %d", firstUpdates, f.media.updates)
	}
	if !f.media.items[1].SoldAt.Equal(firstSoldAt) {
		t.Fatalf("sold_at changed on repeated call")
	}
}

func TestMarkSoldBatchCollectsPerItemErrors(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.media.items[1] = &models.Media{ID: 1, Title: "A"}
	f.media.items[3] = &models.Media{ID: 3, Title: "C"}

	results := f.job.MarkSoldBatch([]uint{1, 2, 3}, nil)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Marked || results[0].Error != "" {
		t.Fatalf("expected item 1 to succeed: %+v", results[0])
	}
	if results[1].Error == "" {
		t.Fatalf("expected missing item 2 to report an error")
	}
	if !results[2].Marked {
		t.Fatalf("item 3 must still be processed after item 2 failed")
	}
}

func TestNoReminderWhenMinimumOffThreshold(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.addBuyer(10, "buyer@example.com")
	f.addSoldMedia(1, 10, "Seven", 7, now)
	f.addSoldMedia(2, 10, "Ten", 10, now)
	f.addSoldMedia(3, 10, "Two", 2, now)

	report, err := f.job.SendReminders()
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}

	if report.RemindersSent != 0 {
		t.Fatalf("minimum days left is 2, no reminder expected, sent %d", report.RemindersSent)
	}
	if len(f.mailer.sent) != 0 {
		t.Fatalf("no email expected, got %d", len(f.mailer.sent))
	}
	if report.TotalBuyers != 1 {
		t.Fatalf("expected 1 buyer in report, got %d", report.TotalBuyers)
	}
	if report.Results[0].Status != "skipped_threshold" {
		t.Fatalf("expected skipped_threshold, got %s", report.Results[0].Status)
	}
}

func TestSingleReminderAtThresholdCoversWindow(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.addBuyer(10, "buyer@example.com")
	f.addSoldMedia(1, 10, "Closest", 3, now)
	f.addSoldMedia(2, 10, "Nearby", 6, now)
	f.addSoldMedia(3, 10, "Far", 9, now)

	report, err := f.job.SendReminders()
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}

	if report.RemindersSent != 1 {
		t.Fatalf("expected exactly one reminder, got %d", report.RemindersSent)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(f.mailer.sent))
	}

	mail := f.mailer.sent[0]
	if mail.daysLeft != 3 {
		t.Fatalf("reminder must use the minimum days left, got %d", mail.daysLeft)
	}
	// 9 gün kalan içerik pencere dışında
	if len(mail.titles) != 2 {
		t.Fatalf("expected the two items within the 7-day window, got %v", mail.titles)
	}
	if mail.titles[0] != "Closest" || mail.titles[1] != "Nearby" {
		t.Fatalf("titles must be ordered by deadline, got %v", mail.titles)
	}

	if len(f.notifications.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(f.notifications.created))
	}
	if f.notifications.created[0].UserID != 10 {
		t.Fatalf("notification must go to the buyer")
	}
	if f.notifications.created[0].Type != models.NotificationTypeReminder {
		t.Fatalf("unexpected notification type %s", f.notifications.created[0].Type)
	}
}

func TestReminderAtExactSevenDays(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.addBuyer(10, "buyer@example.com")
	f.addSoldMedia(1, 10, "Seven", 7, now)
	f.addSoldMedia(2, 10, "Nine", 9, now)

	report, err := f.job.SendReminders()
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}

	if report.RemindersSent != 1 {
		t.Fatalf("expected exactly one reminder at the 7-day threshold, got %d", report.RemindersSent)
	}
	if f.mailer.sent[0].daysLeft != 7 {
		t.Fatalf("expected 7 days left, got %d", f.mailer.sent[0].daysLeft)
	}
}

func TestReminderTruncatesTitlesWithMoreCount(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.addBuyer(10, "buyer@example.com")
	for i := uint(1); i <= 5; i++ {
		f.addSoldMedia(i, 10, fmt.Sprintf("Item %d", i), 1, now)
	}

	if _, err := f.job.SendReminders(); err != nil {
		t.Fatalf("send reminders: %v", err)
	}

	mail := f.mailer.sent[0]
	if len(mail.titles) != ReminderTitleLimit {
		t.Fatalf("expected %d listed titles, got %d", ReminderTitleLimit, len(mail.titles))
	}
	if mail.moreCount != 2 {
		t.Fatalf("expected 2 unlisted items, got %d", mail.moreCount)
	}
}

func TestReminderNotRepeatedSameDay(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.addBuyer(10, "buyer@example.com")
	f.addSoldMedia(1, 10, "Once", 1, now)

	if _, err := f.job.SendReminders(); err != nil {
		t.Fatalf("first run: %v", err)
	}

	report, err := f.job.SendReminders()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if report.RemindersSent != 0 {
		t.Fatalf("second run on the same day must not resend, sent %d", report.RemindersSent)
	}
	if report.Results[0].Status != "skipped_duplicate" {
		t.Fatalf("expected skipped_duplicate, got %s", report.Results[0].Status)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected a single email across both runs, got %d", len(f.mailer.sent))
	}
}

func TestReminderFailureDoesNotAbortRun(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.addBuyer(10, "first@example.com")
	f.addBuyer(20, "second@example.com")
	f.addSoldMedia(1, 10, "First", 1, now)
	f.addSoldMedia(2, 20, "Second", 1, now)

	f.mailer.failFor["first@example.com"] = errors.New("smtp down")

	report, err := f.job.SendReminders()
	if err != nil {
		t.Fatalf("send reminders: %v", err)
	}

	if report.RemindersSent != 1 {
		t.Fatalf("second buyer must still be reminded, sent %d", report.RemindersSent)
	}
	if report.Results[0].Status != "error" {
		t.Fatalf("expected error status for first buyer, got %s", report.Results[0].Status)
	}
	if report.Results[1].Status != "sent" {
		t.Fatalf("expected sent status for second buyer, got %s", report.Results[1].Status)
	}
	// Gönderilemeyen hatırlatma loglanmaz, sonraki deneme tekrar dener
	if sent, _ := f.reminders.AlreadySent(10, now.Format("2006-01-02"), 1); sent {
		t.Fatalf("failed reminder must not be recorded as sent")
	}
}

func TestReminderNotResentAfterNotificationFailure(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.addBuyer(10, "buyer@example.com")
	f.addSoldMedia(1, 10, "Once", 1, now)

	f.notifications.err = errors.New("insert failed")

	report, err := f.job.SendReminders()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	// Mail gitti, bildirim hatası ayrıca raporlanır
	if report.Results[0].Status != "sent" {
		t.Fatalf("expected sent status, got %s", report.Results[0].Status)
	}
	if report.Results[0].Error == "" {
		t.Fatalf("notification failure must be reported")
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(f.mailer.sent))
	}

	f.notifications.err = nil

	second, err := f.job.SendReminders()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.RemindersSent != 0 {
		t.Fatalf("rerun must not re-email the buyer, sent %d", second.RemindersSent)
	}
	if second.Results[0].Status != "skipped_duplicate" {
		t.Fatalf("expected skipped_duplicate, got %s", second.Results[0].Status)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("expected a single email across both runs, got %d", len(f.mailer.sent))
	}
}

func TestCleanupDeletesOnlyExpired(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.addBuyer(10, "buyer@example.com")
	f.addSoldMedia(1, 10, "Past A", -2, now)
	f.addSoldMedia(2, 10, "Past B", -1, now)
	f.addSoldMedia(3, 10, "Future", 4, now)

	report, err := f.job.Cleanup()
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if report.Deleted != 2 || report.Total != 2 {
		t.Fatalf("expected 2 of 2 deleted, got %d of %d", report.Deleted, report.Total)
	}
	if _, ok := f.media.items[3]; !ok {
		t.Fatalf("unexpired media must be left untouched")
	}

	second, err := f.job.Cleanup()
	if err != nil {
		t.Fatalf("second cleanup: %v", err)
	}
	if second.Deleted != 0 || second.Total != 0 {
		t.Fatalf("second sweep must delete nothing, got %d of %d", second.Deleted, second.Total)
	}
}

func TestCleanupContinuesAfterBlobError(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.addBuyer(10, "buyer@example.com")
	f.addSoldMedia(1, 10, "A", -1, now)
	f.addSoldMedia(2, 10, "B", -1, now)
	f.addSoldMedia(3, 10, "C", -1, now)

	f.storage.failKeys["media/2/blob"] = errors.New("storage unavailable")

	report, err := f.job.Cleanup()
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if report.Deleted != 2 {
		t.Fatalf("items A and C must still be deleted, got %d", report.Deleted)
	}
	if len(report.Errors) != 1 || report.Errors[0].MediaID != 2 {
		t.Fatalf("expected a single error for item B, got %+v", report.Errors)
	}
	// Blob silinemeyen kayıt yerinde kalır, sonraki çalıştırma tekrar dener
	if _, ok := f.media.items[2]; !ok {
		t.Fatalf("item B's record must survive the failed blob delete")
	}
}

func TestCleanupRemovesThumbnail(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture(now)

	f.addBuyer(10, "buyer@example.com")
	f.addSoldMedia(1, 10, "With thumb", -1, now)
	f.media.items[1].ThumbnailKey = "media/1/thumb"

	if _, err := f.job.Cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	want := map[string]bool{"media/1/blob": true, "media/1/thumb": true}
	for _, key := range f.storage.deleted {
		delete(want, key)
	}
	if len(want) != 0 {
		t.Fatalf("expected blob and thumbnail deleted, missing %v", want)
	}
}

func TestDaysLeftRoundsUp(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		remaining time.Duration
		want      int
	}{
		{24 * time.Hour, 1},
		{25 * time.Hour, 2},
		{7 * 24 * time.Hour, 7},
		{6*24*time.Hour + time.Minute, 7},
		{time.Minute, 1},
	}

	for _, tc := range cases {
		got := daysLeft(now.Add(tc.remaining), now)
		if got != tc.want {
			t.Fatalf("daysLeft(%v) = %d, want %d", tc.remaining, got, tc.want)
		}
	}
}
