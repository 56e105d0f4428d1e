// internal/pkg/email/providers.go
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Resend API structures
type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// SendGrid API structures
type sendGridRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
	ReplyTo          *sendGridAddress          `json:"reply_to,omitempty"`
}

type sendGridPersonalization struct {
	To []sendGridAddress `json:"to"`
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// MailerSend API structures
type mailerSendRequest struct {
	From    sendGridAddress   `json:"from"`
	To      []sendGridAddress `json:"to"`
	Subject string            `json:"subject"`
	HTML    string            `json:"html"`
	ReplyTo *sendGridAddress  `json:"reply_to,omitempty"`
	Tags    []string          `json:"tags,omitempty"`
}

func (s *EmailService) sendResendEmail(ctx context.Context, email *Email) error {
	return s.postJSON(ctx, "resend", resendRequest{
		From:    s.fromAddress(),
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTMLContent,
		ReplyTo: s.config.ReplyTo,
	})
}

func (s *EmailService) sendSendGridEmail(ctx context.Context, email *Email) error {
	to := make([]sendGridAddress, 0, len(email.To))
	for _, addr := range email.To {
		to = append(to, sendGridAddress{Email: addr})
	}

	req := sendGridRequest{
		Personalizations: []sendGridPersonalization{{To: to}},
		From:             sendGridAddress{Email: s.config.FromEmail, Name: s.config.FromName},
		Subject:          email.Subject,
		Content:          []sendGridContent{{Type: "text/html", Value: email.HTMLContent}},
	}
	if s.config.ReplyTo != "" {
		req.ReplyTo = &sendGridAddress{Email: s.config.ReplyTo}
	}
	return s.postJSON(ctx, "sendgrid", req)
}

func (s *EmailService) sendMailerSendEmail(ctx context.Context, email *Email) error {
	to := make([]sendGridAddress, 0, len(email.To))
	for _, addr := range email.To {
		to = append(to, sendGridAddress{Email: addr})
	}

	req := mailerSendRequest{
		From:    sendGridAddress{Email: s.config.FromEmail, Name: s.config.FromName},
		To:      to,
		Subject: email.Subject,
		HTML:    email.HTMLContent,
		Tags:    []string{string(email.Kind)},
	}
	if s.config.ReplyTo != "" {
		req.ReplyTo = &sendGridAddress{Email: s.config.ReplyTo}
	}
	return s.postJSON(ctx, "mailersend", req)
}

// postJSON sends body to a provider API with bearer auth. Any 2xx is success.
func (s *EmailService) postJSON(ctx context.Context, provider string, body interface{}) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("%s API key not configured", provider)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoints[provider], bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", provider, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send %s request: %w", provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s API returned status %d: %s", provider, resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
