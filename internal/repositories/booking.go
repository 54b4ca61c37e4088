package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aeterna-motors/booking-api/internal/logger"
	"github.com/aeterna-motors/booking-api/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type BookingWriteRepository struct {
	db *sqlx.DB
}

func NewBookingWriteRepository(db *sqlx.DB) *BookingWriteRepository {
	return &BookingWriteRepository{db: db}
}

// Save inserts a new pending booking and returns the stored record.
// A colliding reference id is reported as ErrReferenceIDExists so the caller
// can regenerate; each call is its own implicit transaction, which keeps a
// failed attempt from poisoning the retry.
func (r *BookingWriteRepository) Save(ctx context.Context, name, email, model string, userID *uuid.UUID, referenceID string) (*models.BookingDB, error) {
	const query = `
		INSERT INTO bookings (name, email, model, user_id, status, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING booking_id, name, email, model, user_id, status, reference_id, created_at
	`
	args := []any{name, email, model, userID, models.BookingStatusPending, referenceID}

	var booking models.BookingDB
	err := r.db.GetContext(ctx, &booking, query, args...)

	// Log with query in single line
	logger.Log.Infow("booking write",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{name, email, model, userID, referenceID},
		"error", err,
	)

	if constraint, ok := uniqueViolation(err); ok {
		if strings.Contains(constraint, "reference") {
			return nil, ErrReferenceIDExists
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

type BookingReadRepository struct {
	db *sqlx.DB
}

func NewBookingReadRepository(db *sqlx.DB) *BookingReadRepository {
	return &BookingReadRepository{db: db}
}

// ListByUserID returns the bookings owned by the given user, newest first.
func (r *BookingReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.BookingDB, error) {
	const query = `
		SELECT booking_id, name, email, model, user_id, status, reference_id, created_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	bookings := make([]models.BookingDB, 0)
	err := r.db.SelectContext(ctx, &bookings, query, userID)

	logger.Log.Infow("booking list",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"count", len(bookings),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// GetByIDAndUserID returns the booking with the given id owned by the given
// user, or nil if no such booking exists.
func (r *BookingReadRepository) GetByIDAndUserID(ctx context.Context, bookingID, userID uuid.UUID) (*models.BookingDB, error) {
	const query = `
		SELECT booking_id, name, email, model, user_id, status, reference_id, created_at
		FROM bookings
		WHERE booking_id = $1 AND user_id = $2
		LIMIT 1
	`

	var booking models.BookingDB
	err := r.db.GetContext(ctx, &booking, query, bookingID, userID)

	logger.Log.Infow("booking read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{bookingID, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &booking, nil
}
