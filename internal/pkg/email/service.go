// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/config"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

// Provider endpoints
const (
	resendURL     = "https://api.resend.com/emails"
	sendGridURL   = "https://api.sendgrid.com/v3/mail/send"
	mailerSendURL = "https://api.mailersend.com/v1/email"
)

// EmailService renders and delivers transactional e-mail
type EmailService struct {
	config    config.EmailConfig
	app       config.AppConfig
	templates map[Kind]*template.Template
	client    *http.Client
	endpoints map[string]string
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) (*EmailService, error) {
	s := &EmailService{
		config:    cfg.External.Email,
		app:       cfg.App,
		templates: make(map[Kind]*template.Template),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoints: map[string]string{
			"resend":     resendURL,
			"sendgrid":   sendGridURL,
			"mailersend": mailerSendURL,
		},
	}

	if err := s.loadTemplates(); err != nil {
		return nil, err
	}
	return s, nil
}

// Enabled reports whether e-mails are actually delivered
func (s *EmailService) Enabled() bool {
	return s.config.Enabled
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(ctx context.Context, email *Email) error {
	if !s.config.Enabled {
		logrus.WithFields(logrus.Fields{
			"kind": email.Kind,
			"to":   email.To,
		}).Debug("email delivery disabled, skipping")
		return nil
	}

	switch s.config.Provider {
	case "smtp":
		return s.sendSMTPEmail(ctx, email)
	case "resend":
		return s.sendResendEmail(ctx, email)
	case "sendgrid":
		return s.sendSendGridEmail(ctx, email)
	case "mailersend":
		return s.sendMailerSendEmail(ctx, email)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.Provider)
	}
}

// SendWelcomeEmail greets a newly registered customer
func (s *EmailService) SendWelcomeEmail(ctx context.Context, userEmail, userName string) error {
	data := WelcomeData{
		BaseData: s.base(userName, userEmail),
		ShopURL:  s.link("/shop/home"),
	}
	return s.send(ctx, KindWelcome, userEmail, fmt.Sprintf("Welcome to %s!", s.storeName()), data)
}

// SendOrderConfirmationEmail sends the order summary once it is confirmed
func (s *EmailService) SendOrderConfirmationEmail(ctx context.Context, data OrderConfirmationData) error {
	data.BaseData = s.base(data.UserName, data.UserEmail)
	if data.OrderURL == "" {
		data.OrderURL = s.link("/shop/account")
	}
	return s.send(ctx, KindOrderConfirmation, data.UserEmail, fmt.Sprintf("Order Confirmation - %s", data.OrderNumber), data)
}

// SendOrderStatusUpdateEmail sends order status update notification
func (s *EmailService) SendOrderStatusUpdateEmail(ctx context.Context, data OrderStatusUpdateData) error {
	data.BaseData = s.base(data.UserName, data.UserEmail)
	if data.StatusMessage == "" {
		data.StatusMessage = StatusMessage(data.Status)
	}
	if data.OrderURL == "" {
		data.OrderURL = s.link("/shop/account")
	}
	return s.send(ctx, KindOrderStatusUpdate, data.UserEmail, fmt.Sprintf("Order Update - %s", data.OrderNumber), data)
}

// SendRequestReviewedEmail tells the customer how their cancellation or
// return request was decided
func (s *EmailService) SendRequestReviewedEmail(ctx context.Context, data RequestReviewedData) error {
	data.BaseData = s.base(data.UserName, data.UserEmail)
	if data.OrderURL == "" {
		data.OrderURL = s.link("/shop/account")
	}
	subject := fmt.Sprintf("Your %s request for %s was %s", data.RequestKind, data.OrderNumber, data.Decision)
	return s.send(ctx, KindRequestReviewed, data.UserEmail, subject, data)
}

func (s *EmailService) send(ctx context.Context, kind Kind, to, subject string, data interface{}) error {
	html, err := s.renderTemplate(kind, data)
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, &Email{
		To:          []string{to},
		Subject:     subject,
		HTMLContent: html,
		Kind:        kind,
	})
}

// loadTemplates reads templates from TemplateDir when present and falls
// back to the embedded defaults
func (s *EmailService) loadTemplates() error {
	for _, kind := range allKinds {
		name := string(kind) + ".html"

		if dir := s.config.TemplateDir; dir != "" {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				tmpl, err := template.ParseFiles(path)
				if err != nil {
					return fmt.Errorf("failed to parse template %s: %w", path, err)
				}
				s.templates[kind] = tmpl
				continue
			}
		}

		tmpl, err := template.ParseFS(defaultTemplates, "templates/"+name)
		if err != nil {
			return fmt.Errorf("failed to parse embedded template %s: %w", name, err)
		}
		s.templates[kind] = tmpl
	}
	return nil
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(kind Kind, data interface{}) (string, error) {
	tmpl, exists := s.templates[kind]
	if !exists {
		return "", fmt.Errorf("template %s not found", kind)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", kind, err)
	}

	return buf.String(), nil
}

func (s *EmailService) base(userName, userEmail string) BaseData {
	return newBaseData(s.storeName(), s.siteURL(), s.app.CompanyEmail, userName, userEmail)
}

func (s *EmailService) storeName() string {
	if s.config.FromName != "" {
		return s.config.FromName
	}
	return s.app.Name
}

func (s *EmailService) siteURL() string {
	if s.config.BaseURL != "" {
		return s.config.BaseURL
	}
	return s.app.BaseURL
}

func (s *EmailService) link(path string) string {
	return s.siteURL() + path
}

func (s *EmailService) fromAddress() string {
	if s.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	return s.config.FromEmail
}
