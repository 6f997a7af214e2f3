// Package email sends notification emails through Resend, rendering HTML
// bodies from the embedded templates.
package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned when no Resend API key is configured.
var ErrNotConfigured = errors.New("email: resend api key not configured")

const defaultSender = "onboarding@resend.dev"

// Client wraps the Resend client.
type Client struct {
	client *resend.Client
	from   string
	logger *zerolog.Logger
}

// NewClient creates an email Client. Without an API key the client is
// created but every send fails with ErrNotConfigured.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	from := cfg.Integration.SenderEmail
	if from == "" {
		from = defaultSender
	}

	c := &Client{
		from:   fmt.Sprintf("%s <%s>", "Contacts", from),
		logger: logger,
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

// Render executes the named template with data.
func Render(templateName Template, data map[string]string) (string, error) {
	tmpl, err := template.ParseFS(templates, fmt.Sprintf("templates/%s.html", templateName))
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}
	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to one recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	if c.client == nil {
		return ErrNotConfigured
	}

	html, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := c.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().Str("to", to).Str("template", string(templateName)).Msg("email sent")
	return nil
}
