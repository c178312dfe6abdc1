// Package email sends notification emails through Resend.
//
// Bodies are rendered from the HTML templates under templates/emails.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/deppfellow/bookmarks-api/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

const (
	defaultTemplateDir = "templates/emails"
	defaultFrom        = "onboarding@resend.dev"
	senderName         = "Bookmarks"
)

// sender is the part of the Resend emails service the client uses.
type sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Client struct {
	emails      sender
	from        string
	templateDir string
	logger      *zerolog.Logger
}

func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	from := cfg.Integration.EmailFrom
	if from == "" {
		from = defaultFrom
	}

	return &Client{
		emails:      resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		from:        from,
		templateDir: defaultTemplateDir,
		logger:      logger,
	}
}

// Render executes the named template with data.
func (c *Client) Render(templateName Template, data map[string]string) (string, error) {
	tmplPath := filepath.Join(c.templateDir, string(templateName)+".html")

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	body, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	resp, err := c.emails.Send(&resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", senderName, c.from),
		To:      []string{to},
		Subject: subject,
		Html:    body,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	if resp != nil {
		c.logger.Debug().
			Str("email_id", resp.Id).
			Str("template", string(templateName)).
			Msg("email accepted by provider")
	}

	return nil
}
