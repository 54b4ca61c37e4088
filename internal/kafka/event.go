package kafka

import (
	"time"

	"github.com/google/uuid"
)

// EventBookingCreated is emitted once a booking has been stored with its
// allocated reference.
const EventBookingCreated = "booking.created"

// BookingEvent is the payload published to the bookings topic.
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   uuid.UUID `json:"booking_id"`
	ReferenceID string    `json:"reference_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Model       string    `json:"model"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
