// Package notification delivers transactional email with PDF attachments
// through an HTTP mail API. Without an API key it degrades to logging the
// message, which keeps local development and tests offline.
package notification

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const mailAPIURL = "https://api.resend.com/emails"

// Attachment is a file to include with an email.
type Attachment struct {
	Filename string
	Content  []byte
}

// EmailSender sends a single email, best-effort.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string, attachments []Attachment) error
}

// MailAPISender implements EmailSender against the Resend HTTP API.
type MailAPISender struct {
	APIKey     string
	From       string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewMailAPISender(apiKey, from string, logger *zap.Logger) *MailAPISender {
	return &MailAPISender{
		APIKey:     apiKey,
		From:       from,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Logger:     logger,
	}
}

type mailAttachment struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type mailPayload struct {
	From        string           `json:"from"`
	To          []string         `json:"to"`
	Subject     string           `json:"subject"`
	HTML        string           `json:"html"`
	Attachments []mailAttachment `json:"attachments,omitempty"`
}

// Send posts the email. With no API key configured it logs the would-be
// message instead of failing.
func (m *MailAPISender) Send(ctx context.Context, to, subject, html string, attachments []Attachment) error {
	if m.APIKey == "" {
		m.Logger.Info("mail API not configured, logging email instead",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Int("attachments", len(attachments)))
		return nil
	}

	payload := mailPayload{
		From:    m.From,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}
	for _, a := range attachments {
		payload.Attachments = append(payload.Attachments, mailAttachment{
			Filename: a.Filename,
			Content:  base64.StdEncoding.EncodeToString(a.Content),
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mailAPIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail API returned %d for email to %s", resp.StatusCode, to)
	}
	m.Logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

var _ EmailSender = (*MailAPISender)(nil)
