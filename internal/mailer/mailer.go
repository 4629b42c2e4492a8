package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"summit-registration/config"
	"summit-registration/internal/model"
	"summit-registration/pkg/logger"

	"github.com/domodwyer/mailyak/v3"
	"go.uber.org/zap"
)

// Mailer sends transactional mail. Send failures are reported to the
// caller and recorded on the ticket; they are never fatal to payment
// confirmation.
type Mailer interface {
	SendTicket(ctx context.Context, ticket *model.Ticket, amount int64) error
}

type SMTPMailer struct {
	cfg config.SMTPConfig
	log *zap.Logger
}

func NewSMTPMailer(cfg config.SMTPConfig) Mailer {
	return &SMTPMailer{
		cfg: cfg,
		log: logger.WithComponent("mailer"),
	}
}

func (m *SMTPMailer) SendTicket(ctx context.Context, ticket *model.Ticket, amount int64) error {
	if m.cfg.Host == "" {
		// no relay configured: simulate the send so local and demo
		// environments still complete the flow
		m.log.Info("SMTP not configured, simulating ticket email",
			zap.String("ticket_code", ticket.TicketCode),
			zap.String("to", ticket.ParticipantEmail))
		return nil
	}

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	mail := mailyak.New(fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port), auth)
	mail.From(m.cfg.From)
	mail.FromName("Synergy SEA Summit 2025")
	mail.To(ticket.ParticipantEmail)
	mail.Subject(fmt.Sprintf("Your Synergy SEA Summit 2025 e-ticket (%s)", ticket.OrderID))

	if qrPNG, ok := decodeQRDataURI(ticket.QRCode); ok {
		mail.AttachInline("qr.png", bytes.NewReader(qrPNG))
	}

	mail.HTML().Set(renderTicketHTML(ticket, amount))
	mail.Plain().Set(renderTicketPlain(ticket, amount))

	if err := mail.Send(); err != nil {
		return fmt.Errorf("failed to send ticket email: %w", err)
	}

	m.log.Info("ticket email sent",
		zap.String("ticket_code", ticket.TicketCode),
		zap.String("to", ticket.ParticipantEmail))
	return nil
}

func renderTicketHTML(ticket *model.Ticket, amount int64) string {
	var b strings.Builder
	b.WriteString("<h2>Payment confirmed! See you at Synergy SEA Summit 2025</h2>")
	fmt.Fprintf(&b, "<p>Hi %s,</p>", ticket.ParticipantName)
	fmt.Fprintf(&b, "<p>Your payment of %d has been received. Present this QR code at the door:</p>", amount)
	b.WriteString(`<p><img src="cid:qr.png" alt="ticket QR"/></p>`)
	fmt.Fprintf(&b, "<p>Ticket code: <strong>%s</strong><br/>Order: %s</p>", ticket.TicketCode, ticket.OrderID)
	return b.String()
}

func renderTicketPlain(ticket *model.Ticket, amount int64) string {
	return fmt.Sprintf(
		"Payment confirmed - see you at Synergy SEA Summit 2025!\n\n"+
			"Hi %s,\n\nYour payment of %d has been received.\n"+
			"Ticket code: %s\nOrder: %s\n",
		ticket.ParticipantName, amount, ticket.TicketCode, ticket.OrderID)
}

// decodeQRDataURI unwraps the stored "data:image/png;base64," payload.
func decodeQRDataURI(uri string) ([]byte, bool) {
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		return nil, false
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return nil, false
	}
	return raw, true
}
