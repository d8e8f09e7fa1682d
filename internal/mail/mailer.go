// ABOUTME: Contact-form mail rendering and SMTP delivery
// ABOUTME: Message text is rendered as Markdown via goldmark into an HTML body

package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/2389/campus-gateway/internal/config"
)

// ContactMessage is a contact-form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// Mailer delivers contact-form submissions to the office mailbox.
type Mailer interface {
	SendContact(ctx context.Context, msg ContactMessage) error
}

var bodyTemplate = template.Must(template.New("contact").Parse(`<h3>New Contact Form Submission</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Message:</strong></p>
{{.Body}}
`))

// RenderBody builds the HTML mail body. The free-text message is rendered as
// Markdown; name and email are escaped by the template.
func RenderBody(msg ContactMessage) (string, error) {
	var rendered bytes.Buffer
	if err := goldmark.Convert([]byte(msg.Message), &rendered); err != nil {
		return "", fmt.Errorf("rendering message: %w", err)
	}

	var out bytes.Buffer
	err := bodyTemplate.Execute(&out, struct {
		Name  string
		Email string
		Body  template.HTML
	}{
		Name:  msg.Name,
		Email: msg.Email,
		Body:  template.HTML(rendered.String()),
	})
	if err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return out.String(), nil
}

// SMTPMailer sends contact mail over SMTP with PLAIN auth. Transport
// credentials come from the injected config, never from the environment at
// send time.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	to       string
}

// Ensure SMTPMailer implements Mailer.
var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer creates a mailer from the mail configuration.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		to:       cfg.To,
	}
}

// SendContact renders and delivers a contact-form submission.
func (m *SMTPMailer) SendContact(ctx context.Context, msg ContactMessage) error {
	body, err := RenderBody(msg)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.username)
	fmt.Fprintf(&b, "To: %s\r\n", m.to)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.Email)
	fmt.Fprintf(&b, "Subject: Contact Form Submission from %s\r\n", sanitizeHeader(msg.Name))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.username, []string{m.to}, []byte(b.String())); err != nil {
		return fmt.Errorf("sending contact mail: %w", err)
	}

	return nil
}

// sanitizeHeader strips CR/LF so form input cannot inject extra headers.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
