package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v74"

	"github.com/sefazor/aimarket-backend/internal/jobs/lifecycle"
	"github.com/sefazor/aimarket-backend/internal/models"
	"github.com/sefazor/aimarket-backend/internal/repository"
	"github.com/sefazor/aimarket-backend/pkg/email"
	"github.com/sefazor/aimarket-backend/pkg/payment"
)

type PaymentService struct {
	stripeService    *payment.StripeService
	userRepo         *repository.UserRepository
	mediaRepo        *repository.MediaRepository
	purchaseRepo     *repository.PurchaseRepository
	notificationRepo *repository.NotificationRepository
	emailService     *email.EmailService
	lifecycleJob     *lifecycle.Job
}

func NewPaymentService(
	stripeService *payment.StripeService,
	userRepo *repository.UserRepository,
	mediaRepo *repository.MediaRepository,
	purchaseRepo *repository.PurchaseRepository,
	notificationRepo *repository.NotificationRepository,
	emailService *email.EmailService,
	lifecycleJob *lifecycle.Job,
) *PaymentService {
	return &PaymentService{
		stripeService:    stripeService,
		userRepo:         userRepo,
		mediaRepo:        mediaRepo,
		purchaseRepo:     purchaseRepo,
		notificationRepo: notificationRepo,
		emailService:     emailService,
		lifecycleJob:     lifecycleJob,
	}
}

// CreateCheckoutSession bir içerik için hosted checkout başlatır ve pending
// purchase kaydı açar
func (s *PaymentService) CreateCheckoutSession(buyerID, mediaID uint) (*models.CheckoutSession, error) {
	media, err := s.mediaRepo.GetByID(mediaID)
	if err != nil {
		return nil, errors.New("media not found")
	}

	if media.OwnerID == buyerID {
		return nil, errors.New("you cannot buy your own media")
	}
	if media.IsSold {
		return nil, errors.New("this media has already been sold")
	}
	if media.Price <= 0 {
		return nil, errors.New("this media is not for sale")
	}

	buyer, err := s.userRepo.GetByID(buyerID)
	if err != nil {
		return nil, err
	}

	session, err := s.stripeService.CreateCheckoutSession(
		buyer.Email,
		media.Title,
		media.Price,
		map[string]string{
			"buyer_id": fmt.Sprintf("%d", buyerID),
			"media_id": fmt.Sprintf("%d", mediaID),
		},
	)
	if err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		BuyerID:         buyerID,
		SellerID:        media.OwnerID,
		MediaID:         mediaID,
		Amount:          media.Price,
		Currency:        "usd",
		Status:          models.PurchaseStatusPending,
		StripeSessionID: session.ID,
	}

	if err := s.purchaseRepo.Create(purchase); err != nil {
		return nil, err
	}

	return &models.CheckoutSession{
		ID:  session.ID,
		URL: session.URL,
	}, nil
}

// HandleStripeWebhook ödeme onayında purchase'ı tamamlar ve içeriği
// satıldı işaretler
func (s *PaymentService) HandleStripeWebhook(event *stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}
		return s.completePurchase(&session)

	case "checkout.session.expired", "checkout.session.async_payment_failed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		purchase, err := s.purchaseRepo.GetBySessionID(session.ID)
		if err != nil {
			return err
		}
		if purchase.Status == models.PurchaseStatusCompleted {
			return nil
		}

		purchase.Status = models.PurchaseStatusFailed
		return s.purchaseRepo.Update(purchase)
	}

	return nil
}

func (s *PaymentService) completePurchase(session *stripe.CheckoutSession) error {
	purchase, err := s.purchaseRepo.GetBySessionID(session.ID)
	if err != nil {
		return err
	}

	// Webhook retry'larına karşı idempotent
	if purchase.Status == models.PurchaseStatusCompleted {
		return nil
	}

	// Session metadata'sı checkout açılırken yazıldı; kayıtla tutmuyorsa
	// yanlış session'a bağlanmış demektir
	mediaID, err := ParseMetadataID(session.Metadata, "media_id")
	if err != nil {
		return fmt.Errorf("session %s metadata: %w", session.ID, err)
	}
	if mediaID != purchase.MediaID {
		return fmt.Errorf("session %s metadata media_id %d does not match purchase record %d",
			session.ID, mediaID, purchase.MediaID)
	}

	now := time.Now()
	purchase.Status = models.PurchaseStatusCompleted
	purchase.CompletedAt = &now
	if err := s.purchaseRepo.Update(purchase); err != nil {
		return err
	}

	if _, err := s.lifecycleJob.MarkSoldByID(purchase.MediaID, purchase.CompletedAt); err != nil {
		return err
	}

	media, err := s.mediaRepo.GetByID(purchase.MediaID)
	if err != nil {
		return err
	}

	// Alıcı ve satıcıya bildirim; mail alıcıya
	s.notificationRepo.Create(&models.Notification{
		UserID: purchase.BuyerID,
		Type:   models.NotificationTypePurchase,
		Title:  "Purchase complete",
		Message: fmt.Sprintf("You bought %q for $%.2f. It will be deleted on %s.",
			media.Title, purchase.Amount, media.DeleteAfter.Format("January 2, 2006")),
		Link: "/purchases",
	})
	s.notificationRepo.Create(&models.Notification{
		UserID: purchase.SellerID,
		Type:   models.NotificationTypeSale,
		Title:  "Your media sold",
		Message: fmt.Sprintf("%q sold for $%.2f.",
			media.Title, purchase.Amount),
		Link: "/sales",
	})

	if buyer, err := s.userRepo.GetByID(purchase.BuyerID); err == nil {
		go s.emailService.SendPurchaseConfirmation(buyer.Email, buyer.FullName, media.Title, *media.DeleteAfter)
	}

	return nil
}

func (s *PaymentService) GetPurchaseHistory(buyerID uint) ([]models.Purchase, error) {
	return s.purchaseRepo.GetBuyerHistory(buyerID)
}

// ParseMetadataID Stripe metadata'daki sayısal id alanları için
func ParseMetadataID(metadata map[string]string, key string) (uint, error) {
	raw, ok := metadata[key]
	if !ok {
		return 0, fmt.Errorf("missing metadata key: %s", key)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
