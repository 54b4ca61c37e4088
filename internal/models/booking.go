package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking status values. Bookings start as pending; confirmation and
// rejection happen through an administrative process outside this API.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusRejected  = "rejected"
)

// BookingDB represents a booking record in the database
type BookingDB struct {
	BookingID   uuid.UUID  `json:"id" db:"booking_id"`             // Primary key
	Name        string     `json:"name" db:"name"`                 // Requester name
	Email       string     `json:"email" db:"email"`               // Requester email
	Model       string     `json:"model" db:"model"`               // Requested car model
	UserID      *uuid.UUID `json:"user_id,omitempty" db:"user_id"` // Owning user, nil for anonymous bookings
	Status      string     `json:"status" db:"status"`             // pending / confirmed / rejected
	ReferenceID string     `json:"reference_id" db:"reference_id"` // Unique human-readable reference
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`     // Creation timestamp
}
