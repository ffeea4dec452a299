package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/shared/i18n"
)

var _ usecases.Notifier = (*SMTPNotifier)(nil)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // Base URL for ticket links (e.g., "http://localhost:8080")
}

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier mails technicians when a ticket is assigned to them and
// customers when their ticket is closed.
type SMTPNotifier struct {
	config  SMTPConfig
	sender  sender
	catalog *i18n.Catalog
}

func NewSMTPNotifier(config SMTPConfig, catalog *i18n.Catalog) *SMTPNotifier {
	return &SMTPNotifier{
		config:  config,
		sender:  gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		catalog: catalog,
	}
}

func (s *SMTPNotifier) TicketAssigned(ctx context.Context, n usecases.AssignedNotification) error {
	if n.SupportEmail == "" {
		return fmt.Errorf("technician has no email address")
	}

	tr := s.catalog.Translator(n.Language)
	subject := tr.T("mail.assigned.subject", n.TicketID)
	intro := tr.T("mail.assigned.body", n.SupportName, n.TicketID, tr.Subject(n.Subject), n.CustomerName)

	plainBody := fmt.Sprintf("%s\n\n%s:\n%s\n%s", intro, tr.T("mail.description"), n.Description, s.ticketURL(n.TicketID))
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>%s</p>
			<p><strong>%s:</strong></p>
			<blockquote>%s</blockquote>
			%s
		</body>
		</html>
	`, html.EscapeString(intro), html.EscapeString(tr.T("mail.description")),
		strings.ReplaceAll(html.EscapeString(n.Description), "\n", "<br>"), s.ticketLink(n.TicketID))

	return s.sendEmail(n.SupportEmail, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) TicketClosed(ctx context.Context, n usecases.ClosedNotification) error {
	if n.CustomerEmail == "" {
		return fmt.Errorf("customer has no email address")
	}

	tr := s.catalog.Translator(n.Language)
	subject := tr.T("mail.closed.subject", n.TicketID)
	intro := tr.T("mail.closed.body", n.CustomerName, n.TicketID, tr.Subject(n.Subject), n.ClosedAt)

	plainBody := fmt.Sprintf("%s\n%s", intro, s.ticketURL(n.TicketID))
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>%s</p>
			%s
		</body>
		</html>
	`, html.EscapeString(intro), s.ticketLink(n.TicketID))

	return s.sendEmail(n.CustomerEmail, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) ticketURL(id uint) string {
	if s.config.BaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/tickets/%d", strings.TrimRight(s.config.BaseURL, "/"), id)
}

func (s *SMTPNotifier) ticketLink(id uint) string {
	u := s.ticketURL(id)
	if u == "" {
		return ""
	}
	return fmt.Sprintf(`<p><a href="%s">%s</a></p>`, html.EscapeString(u), html.EscapeString(u))
}

func (s *SMTPNotifier) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
