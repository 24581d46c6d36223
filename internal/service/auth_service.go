package service

import (
	"errors"
	"strings"
	"time"

	"github.com/sefazor/aimarket-backend/internal/models"
	"github.com/sefazor/aimarket-backend/internal/repository"
	"github.com/sefazor/aimarket-backend/pkg/bcrypt"
	"github.com/sefazor/aimarket-backend/pkg/email"
	jwtPkg "github.com/sefazor/aimarket-backend/pkg/jwt"
	"github.com/sefazor/aimarket-backend/pkg/utils"
)

const (
	// Kod süreleri
	CodeExpiryReset       = 15 * time.Minute
	CodeExpiryEmailVerify = 24 * time.Hour
)

type verificationCodeStore interface {
	Upsert(code *models.VerificationCode) error
	GetByEmail(email string) (*models.VerificationCode, error)
	DeleteByEmail(email string) error
}

type AuthService struct {
	userRepo     *repository.UserRepository
	codeRepo     verificationCodeStore
	emailService *email.EmailService
}

func NewAuthService(userRepo *repository.UserRepository, codeRepo verificationCodeStore, emailService *email.EmailService) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		codeRepo:     codeRepo,
		emailService: emailService,
	}
}

func (s *AuthService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	reqEmail := normalizeEmail(req.Email)

	exists, err := s.userRepo.EmailExists(reqEmail)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	hashedPassword, err := bcrypt.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FullName:   req.FullName,
		Email:      reqEmail,
		Password:   hashedPassword,
		Tier:       models.TierFree,
		IsVerified: false,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Doğrulama kodu üret ve gönder
	code, err := s.issueCode(reqEmail, CodeExpiryEmailVerify)
	if err != nil {
		return nil, err
	}
	go s.emailService.SendVerificationEmail(user.Email, user.FullName, code)
	go s.emailService.SendWelcomeEmail(user.Email, user.FullName)

	token, err := jwtPkg.GenerateToken(user.ID, user.Email, user.Tier)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(normalizeEmail(req.Email))
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.ComparePassword(user.Password, req.Password); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := jwtPkg.GenerateToken(user.ID, user.Email, user.Tier)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  *user,
	}, nil
}

func (s *AuthService) VerifyEmail(req models.VerifyEmailRequest) error {
	reqEmail := normalizeEmail(req.Email)

	if err := s.consumeCode(reqEmail, req.Code); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(reqEmail)
	if err != nil {
		return errors.New("user not found")
	}

	if user.IsVerified {
		return nil
	}

	user.IsVerified = true
	return s.userRepo.Update(user)
}

func (s *AuthService) ForgotPassword(emailAddr string) error {
	reqEmail := normalizeEmail(emailAddr)

	user, err := s.userRepo.GetByEmail(reqEmail)
	if err != nil {
		return nil // Güvenlik için hata dönme
	}

	code, err := s.issueCode(reqEmail, CodeExpiryReset)
	if err != nil {
		return err
	}

	return s.emailService.SendPasswordResetEmail(user.Email, code)
}

func (s *AuthService) ResetPassword(req models.ResetPasswordRequest) error {
	reqEmail := normalizeEmail(req.Email)

	if err := s.consumeCode(reqEmail, req.Code); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(reqEmail)
	if err != nil {
		return errors.New("user not found")
	}

	hashedPassword, err := bcrypt.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(user.ID, hashedPassword)
}

// issueCode email başına tek kod; yenisi eskisinin üzerine yazılır
func (s *AuthService) issueCode(emailAddr string, ttl time.Duration) (string, error) {
	code, err := utils.GenerateNumericCode()
	if err != nil {
		return "", err
	}

	record := &models.VerificationCode{
		Email:     emailAddr,
		Code:      code,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
	if err := s.codeRepo.Upsert(record); err != nil {
		return "", err
	}

	return code, nil
}

// consumeCode tek kullanımlık: başarıda veya süre aşımında satır silinir
func (s *AuthService) consumeCode(emailAddr, code string) error {
	record, err := s.codeRepo.GetByEmail(emailAddr)
	if err != nil {
		return errors.New("invalid or expired code")
	}

	if time.Now().After(record.ExpiresAt) {
		s.codeRepo.DeleteByEmail(emailAddr)
		return errors.New("invalid or expired code")
	}

	if record.Code != code {
		return errors.New("invalid or expired code")
	}

	return s.codeRepo.DeleteByEmail(emailAddr)
}

func normalizeEmail(emailAddr string) string {
	return strings.ToLower(strings.TrimSpace(emailAddr))
}
