package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/orris-inc/helpdesk/internal/application/ticket/usecases"
	"github.com/orris-inc/helpdesk/internal/shared/i18n"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, m...)
	return nil
}

func newTestNotifier(s sender) *SMTPNotifier {
	n := NewSMTPNotifier(SMTPConfig{
		FromAddress: "helpdesk@example.test",
		FromName:    "Help Desk",
		BaseURL:     "https://desk.example.test/",
	}, i18n.NewCatalog("es"))
	n.sender = s
	return n
}

func rendered(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSMTPNotifier_TicketAssigned(t *testing.T) {
	capture := &captureSender{}
	n := newTestNotifier(capture)

	err := n.TicketAssigned(context.Background(), usecases.AssignedNotification{
		TicketID:     42,
		Subject:      "hardware_failure",
		Description:  "Paper jam <tray 2>",
		SupportName:  "Xavier",
		SupportEmail: "x@example.test",
		CustomerName: "Acme",
		Language:     "en-US,en;q=0.9",
	})
	require.NoError(t, err)
	require.Len(t, capture.sent, 1)

	msg := capture.sent[0]
	assert.Equal(t, []string{"x@example.test"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Ticket #42 has been assigned to you"}, msg.GetHeader("Subject"))

	body := rendered(t, msg)
	assert.Contains(t, body, "Hardware failure")
	assert.Contains(t, body, "https://desk.example.test/tickets/42")
	assert.Contains(t, body, "&lt;tray 2&gt;")
}

func TestSMTPNotifier_TicketClosedUsesDefaultLocale(t *testing.T) {
	capture := &captureSender{}
	n := newTestNotifier(capture)

	err := n.TicketClosed(context.Background(), usecases.ClosedNotification{
		TicketID:      7,
		Subject:       "maintenance",
		CustomerName:  "Acme",
		CustomerEmail: "ops@acme.test",
		ClosedAt:      "02/01/2026 15:04",
	})
	require.NoError(t, err)
	require.Len(t, capture.sent, 1)
	assert.Equal(t, []string{"El ticket #7 fue cerrado"}, capture.sent[0].GetHeader("Subject"))
}

func TestSMTPNotifier_Errors(t *testing.T) {
	n := newTestNotifier(&captureSender{err: errors.New("connection refused")})

	err := n.TicketClosed(context.Background(), usecases.ClosedNotification{TicketID: 1, CustomerEmail: "a@b.test"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	err = n.TicketAssigned(context.Background(), usecases.AssignedNotification{TicketID: 1})
	assert.Error(t, err)
}
