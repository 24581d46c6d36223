package email

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/resendlabs/resend-go"
)

type EmailService struct {
	client       *resend.Client
	from         string
	fromName     string
	templatesDir string
	logger       *log.Logger
}

func NewEmailService() *EmailService {
	return &EmailService{
		client:       resend.NewClient(os.Getenv("RESEND_API_KEY")),
		from:         os.Getenv("EMAIL_FROM_ADDRESS"),
		fromName:     os.Getenv("EMAIL_FROM_NAME"),
		templatesDir: "pkg/email/templates",
		logger:       log.New(os.Stdout, "EMAIL: ", log.LstdFlags),
	}
}

func (s *EmailService) SendWelcomeEmail(email, fullName string) error {
	s.logger.Printf("Sending welcome email to: %s (%s)", email, fullName)

	templateData := map[string]interface{}{
		"FullName": fullName,
		"Email":    email,
		"Year":     time.Now().Year(),
	}

	html, err := s.parseTemplate("welcome.html", templateData)
	if err != nil {
		s.logger.Printf("Error parsing welcome template for %s: %v", email, err)
		return err
	}

	return s.send(email, "Welcome to AIMarket!", html)
}

func (s *EmailService) SendVerificationEmail(email, fullName, code string) error {
	s.logger.Printf("Sending verification email to: %s", email)

	templateData := map[string]interface{}{
		"FullName": fullName,
		"Code":     code,
		"Email":    email,
		"Year":     time.Now().Year(),
	}

	html, err := s.parseTemplate("verify-email.html", templateData)
	if err != nil {
		s.logger.Printf("Error parsing verification template for %s: %v", email, err)
		return err
	}

	return s.send(email, "Verify Your Email - AIMarket", html)
}

func (s *EmailService) SendPasswordResetEmail(email, code string) error {
	s.logger.Printf("Sending password reset email to: %s", email)

	templateData := map[string]interface{}{
		"Code":  code,
		"Email": email,
		"Year":  time.Now().Year(),
	}

	html, err := s.parseTemplate("reset-password.html", templateData)
	if err != nil {
		s.logger.Printf("Error parsing reset password template for %s: %v", email, err)
		return err
	}

	return s.send(email, "Reset Your Password - AIMarket", html)
}

func (s *EmailService) SendPurchaseConfirmation(email, fullName, mediaTitle string, deleteAfter time.Time) error {
	templateData := map[string]interface{}{
		"FullName":    fullName,
		"MediaTitle":  mediaTitle,
		"DeleteAfter": deleteAfter.Format("January 2, 2006"),
		"Email":       email,
		"Year":        time.Now().Year(),
	}

	html, err := s.parseTemplate("purchase-confirmation.html", templateData)
	if err != nil {
		return err
	}

	return s.send(email, "Your Purchase - AIMarket", html)
}

// SendExpiryReminder satın alınan içeriklerin silinme tarihi yaklaşınca gönderilir
func (s *EmailService) SendExpiryReminder(email, fullName string, titles []string, moreCount, daysLeft int) error {
	s.logger.Printf("Sending expiry reminder to: %s (%d days left)", email, daysLeft)

	templateData := map[string]interface{}{
		"FullName":  fullName,
		"Titles":    titles,
		"MoreCount": moreCount,
		"DaysLeft":  daysLeft,
		"Email":     email,
		"Year":      time.Now().Year(),
	}

	html, err := s.parseTemplate("expiry-reminder.html", templateData)
	if err != nil {
		s.logger.Printf("Error parsing expiry reminder template for %s: %v", email, err)
		return err
	}

	subject := fmt.Sprintf("Your purchased content expires in %d day(s) - AIMarket", daysLeft)
	return s.send(email, subject, html)
}

func (s *EmailService) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Printf("Failed to send email to %s: %v", to, err)
		return err
	}

	s.logger.Printf("Successfully sent email to %s (ID: %s)", to, resp.Id)
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	templatePath := filepath.Join(s.templatesDir, templateName)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}
