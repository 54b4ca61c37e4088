package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/aeterna-motors/booking-api/internal/kafka"
	"github.com/aeterna-motors/booking-api/internal/logger"
)

// Sender delivers booking confirmation e-mails over SMTP. With an empty
// address delivery is skipped and the message is logged instead, so local
// setups work without a mail relay.
type Sender struct {
	addr string // SMTP host:port, empty disables delivery
	from string
}

// NewSender creates a Sender. addr may be empty.
func NewSender(addr, from string) *Sender {
	return &Sender{addr: addr, from: from}
}

// Send delivers a confirmation for the given booking event.
func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	subject := fmt.Sprintf("Your Aeterna booking %s", event.ReferenceID)
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nWe received your booking request for the %s.\r\nYour reference code is %s, current status: %s.\r\n\r\nAeterna Motors",
		event.Name, event.Model, event.ReferenceID, event.Status,
	)

	if s.addr == "" {
		logger.Log.Infow("smtp not configured, logging confirmation instead",
			"to", event.Email,
			"reference_id", event.ReferenceID,
			"subject", subject,
		)
		return nil
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.from, event.Email, subject, body,
	))

	if err := smtp.SendMail(s.addr, nil, s.from, []string{event.Email}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	logger.Log.Infow("confirmation sent",
		"to", event.Email,
		"reference_id", event.ReferenceID,
	)
	return nil
}
