package service

import (
	"errors"
	"testing"
	"time"

	"github.com/sefazor/aimarket-backend/internal/models"
)

type fakeCodeStore struct {
	rows map[string]*models.VerificationCode
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{rows: map[string]*models.VerificationCode{}}
}

func (f *fakeCodeStore) Upsert(code *models.VerificationCode) error {
	f.rows[code.Email] = code
	return nil
}

func (f *fakeCodeStore) GetByEmail(email string) (*models.VerificationCode, error) {
	row, ok := f.rows[email]
	if !ok {
		return nil, errors.New("record not found")
	}
	return row, nil
}

func (f *fakeCodeStore) DeleteByEmail(email string) error {
	delete(f.rows, email)
	return nil
}

func newCodeAuthService(store *fakeCodeStore) *AuthService {
	return NewAuthService(nil, store, nil)
}

func TestConsumeCodeDeletesRowOnSuccess(t *testing.T) {
	store := newFakeCodeStore()
	svc := newCodeAuthService(store)

	store.Upsert(&models.VerificationCode{
		Email:     "buyer@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(CodeExpiryReset),
	})

	if err := svc.consumeCode("buyer@example.com", "123456"); err != nil {
		t.Fatalf("consume valid code: %v", err)
	}
	if _, ok := store.rows["buyer@example.com"]; ok {
		t.Fatalf("consumed code must be deleted")
	}

	// Tek kullanımlık: ikinci deneme reddedilir
	if err := svc.consumeCode("buyer@example.com", "123456"); err == nil {
		t.Fatalf("second consume of the same code must fail")
	}
}

func TestConsumeCodeExpiredRejectsAndDeletes(t *testing.T) {
	store := newFakeCodeStore()
	svc := newCodeAuthService(store)

	store.Upsert(&models.VerificationCode{
		Email:     "buyer@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	if err := svc.consumeCode("buyer@example.com", "123456"); err == nil {
		t.Fatalf("expired code must be rejected")
	}
	if _, ok := store.rows["buyer@example.com"]; ok {
		t.Fatalf("expired code row must be deleted on check")
	}
}

func TestConsumeCodeMismatchKeepsRow(t *testing.T) {
	store := newFakeCodeStore()
	svc := newCodeAuthService(store)

	store.Upsert(&models.VerificationCode{
		Email:     "buyer@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(CodeExpiryReset),
	})

	if err := svc.consumeCode("buyer@example.com", "654321"); err == nil {
		t.Fatalf("wrong code must be rejected")
	}
	if _, ok := store.rows["buyer@example.com"]; !ok {
		t.Fatalf("wrong guess must not consume the stored code")
	}
}

func TestIssueCodeOverwritesPrevious(t *testing.T) {
	store := newFakeCodeStore()
	svc := newCodeAuthService(store)

	first, err := svc.issueCode("buyer@example.com", CodeExpiryEmailVerify)
	if err != nil {
		t.Fatalf("issue first code: %v", err)
	}

	second, err := svc.issueCode("buyer@example.com", CodeExpiryEmailVerify)
	if err != nil {
		t.Fatalf("issue second code: %v", err)
	}

	if len(store.rows) != 1 {
		t.Fatalf("email must have a single active code, got %d rows", len(store.rows))
	}
	if store.rows["buyer@example.com"].Code != second {
		t.Fatalf("stored code must be the latest issued one")
	}

	// Eski kod artık geçmez (kodlar çakışmadıysa)
	if first != second {
		if err := svc.consumeCode("buyer@example.com", first); err == nil {
			t.Fatalf("superseded code must be rejected")
		}
	}
}
