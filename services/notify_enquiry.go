package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/jvconstructions/constructions-backend/config"
	"github.com/jvconstructions/constructions-backend/models"
)

// resendEmailRequest is the request payload for the Resend API
type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
}

var resendBaseURL = "https://api.resend.com"

// SendEmail sends a plain-text email through the Resend API.
//
// Requires environment variables:
//   - RESEND_API_KEY: Resend API key
//   - RESEND_FROM_EMAIL: sender address (e.g. "JV Constructions <[email protected]>")
func SendEmail(cfg map[string]string, subject, body string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	if apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	from := config.GetString(cfg, "RESEND_FROM_EMAIL", "JV Constructions <[email protected]>")

	client := resty.New().
		SetBaseURL(resendBaseURL).
		SetAuthToken(apiKey).
		SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetBody(resendEmailRequest{
			From:    from,
			To:      recipients,
			Subject: subject,
			Text:    body,
		}).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sending email: status %d: %s", resp.StatusCode(), resp.String())
	}

	log.Debug().Str("subject", subject).Int("recipients", len(recipients)).Msg("Sent notification email")
	return nil
}

// NotifyNewEnquiry emails the configured admin addresses about a fresh
// enquiry. Best effort only: failures are logged and never surfaced to the
// submitter.
func NotifyNewEnquiry(cfg map[string]string, enquiry *models.Enquiry, projectCode string) {
	recipientList := config.GetString(cfg, "ENQUIRY_NOTIFY_EMAILS", "")
	if recipientList == "" {
		return
	}

	var recipients []string
	for _, addr := range strings.Split(recipientList, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			recipients = append(recipients, addr)
		}
	}
	if len(recipients) == 0 {
		return
	}

	subject := "New enquiry from " + enquiry.Name
	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\nEmail: %s\nPhone: %s\n", enquiry.Name, enquiry.Email, enquiry.Phone)
	if projectCode != "" {
		fmt.Fprintf(&body, "Project: %s\n", projectCode)
	}
	fmt.Fprintf(&body, "\n%s\n", enquiry.Message)

	if err := SendEmail(cfg, subject, body.String(), recipients); err != nil {
		log.Error().Err(err).Str("enquiryId", enquiry.ID.String()).Msg("Failed to send enquiry notification")
	}
}
