package email

import (
	"context"
	"testing"

	"github.com/aeterna-motors/booking-api/internal/kafka"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSender_Send_NoSMTPConfigured(t *testing.T) {
	sender := NewSender("", "bookings@aeterna-motors.example")

	event := kafka.BookingEvent{
		Type:        kafka.EventBookingCreated,
		BookingID:   uuid.New(),
		ReferenceID: "ABC123XYZ",
		Name:        "Alice",
		Email:       "alice@example.com",
		Model:       "GT-9",
		Status:      "pending",
	}

	// Without an SMTP address the confirmation is logged, not sent
	err := sender.Send(context.Background(), event)
	assert.NoError(t, err)
}
