// utils/email.go
package utils

import (
	"fmt"
	"os"

	"github.com/keighl/postmark"
)

// EmailService sends transactional mail through Postmark.
type EmailService struct {
	client *postmark.Client
}

// NewEmailService returns a new EmailService, or nil when
// POSTMARK_API_TOKEN is not configured. Callers treat a nil service as
// "email disabled".
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		return nil
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	_, err := es.client.SendEmail(postmark.Email{
		From:     os.Getenv("EMAIL_SENDER"),
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendWelcomeEmail greets a newly registered user.
func (es *EmailService) SendWelcomeEmail(toEmail, name string) error {
	subject := "Welcome to the Farmers Market"
	htmlContent := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>Your account has been created. Happy trading!",
		name,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
