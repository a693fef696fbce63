// Package smtp delivers outreach email to verified leads over SMTP with
// STARTTLS.
package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Mirnes420/leadgen"
)

// Ensure Mailer implements leadgen.Mailer at compile time.
var _ leadgen.Mailer = (*Mailer)(nil)

// Config holds the SMTP account the mailer sends from.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string

	// From overrides the envelope sender; empty means Username.
	From string
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	if c.Host == "" {
		return leadgen.Errorf(leadgen.EINVALID, "SMTP host required")
	}
	if c.Port < 1 {
		return leadgen.Errorf(leadgen.EINVALID, "SMTP port required")
	}
	if c.Username == "" || c.Password == "" {
		return leadgen.Errorf(leadgen.EINVALID, "SMTP credentials required")
	}
	return nil
}

func (c *Config) from() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}

// Mailer sends templated outreach messages through an SMTP relay. The
// net/smtp client upgrades the connection with STARTTLS when the server
// offers it, which the usual port 587 submission endpoints do.
type Mailer struct {
	Config   Config
	Template Template

	// SendFn overrides delivery; nil means smtp.SendMail.
	SendFn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewMailer creates a Mailer with the given account and template.
func NewMailer(cfg Config, tmpl Template) *Mailer {
	return &Mailer{Config: cfg, Template: tmpl}
}

// Send delivers one personalized message to the address. Unresolved
// addresses are rejected before any connection is made.
func (m *Mailer) Send(ctx context.Context, toEmail, businessName, city string) error {
	if toEmail == "" || toEmail == leadgen.Unresolved {
		return leadgen.Errorf(leadgen.EINVALID, "cannot send to an unresolved address")
	}
	if err := m.Config.Validate(); err != nil {
		return err
	}

	subject, body := m.Template.Render(businessName, city)
	msg := buildMessage(m.Config.from(), toEmail, subject, body)

	addr := fmt.Sprintf("%s:%d", m.Config.Host, m.Config.Port)
	auth := smtp.PlainAuth("", m.Config.Username, m.Config.Password, m.Config.Host)

	send := m.SendFn
	if send == nil {
		send = smtp.SendMail
	}

	// net/smtp has no context support; run the delivery aside so a
	// canceled run does not hang on a stuck relay.
	done := make(chan error, 1)
	go func() {
		done <- send(addr, auth, m.Config.from(), []string{toEmail}, msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("sending to %s: %w", toEmail, err)
		}
		return nil
	}
}

// buildMessage assembles an RFC 5322 message with CRLF line endings.
func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
