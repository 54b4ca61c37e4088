package services

import (
	"context"
	"errors"

	"github.com/aeterna-motors/booking-api/internal/kafka"
	"github.com/aeterna-motors/booking-api/internal/logger"
	"github.com/aeterna-motors/booking-api/internal/models"
	"github.com/aeterna-motors/booking-api/internal/repositories"
	"github.com/google/uuid"
)

// ErrBookingNotFound is returned when a booking does not exist or is not
// owned by the requesting identity.
var ErrBookingNotFound = errors.New("booking not found")

// BookingReader defines read-only operations for bookings.
type BookingReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.BookingDB, error)
	GetByIDAndUserID(ctx context.Context, bookingID, userID uuid.UUID) (*models.BookingDB, error)
}

// BookingWriter defines write operations for bookings.
type BookingWriter interface {
	Save(ctx context.Context, name, email, model string, userID *uuid.UUID, referenceID string) (*models.BookingDB, error)
}

// EventPublisher defines an interface for publishing booking events.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// BookingService handles booking creation with reference allocation,
// plus listing and retrieval of owned bookings.
type BookingService struct {
	reader         BookingReader
	writer         BookingWriter
	producer       EventPublisher
	topic          string
	newReferenceID func() string
}

// BookingServiceOption configures a BookingService.
type BookingServiceOption func(*BookingService)

// WithEventPublisher makes the service publish a booking.created event to
// the given topic after each successful creation.
func WithEventPublisher(producer EventPublisher, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.topic = topic
	}
}

// WithReferenceGenerator overrides the reference id generator.
func WithReferenceGenerator(gen func() string) BookingServiceOption {
	return func(s *BookingService) {
		s.newReferenceID = gen
	}
}

// NewBookingService creates a new BookingService instance.
func NewBookingService(reader BookingReader, writer BookingWriter, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		reader:         reader,
		writer:         writer,
		newReferenceID: NewReferenceID,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// CreateBooking allocates a unique reference and stores a pending booking.
// The insert-time unique violation is the sole collision signal: on
// ErrReferenceIDExists a fresh reference is generated and the insert is
// retried. There is no pre-check, so the store stays the single authority
// on uniqueness. userID is nil for anonymous bookings.
func (svc *BookingService) CreateBooking(ctx context.Context, name, email, model string, userID *uuid.UUID) (*models.BookingDB, error) {
	for {
		referenceID := svc.newReferenceID()

		booking, err := svc.writer.Save(ctx, name, email, model, userID, referenceID)
		if errors.Is(err, repositories.ErrReferenceIDExists) {
			logger.Log.Infow("reference id collision, regenerating", "reference_id", referenceID)
			continue
		}
		if err != nil {
			logger.Log.Errorw("failed to save booking", "err", err)
			return nil, err
		}

		svc.publishCreated(ctx, booking)
		return booking, nil
	}
}

// publishCreated emits a booking.created event. Publishing is best-effort:
// the booking is already stored, so a broker failure must not fail the
// request.
func (svc *BookingService) publishCreated(ctx context.Context, booking *models.BookingDB) {
	if svc.producer == nil {
		return
	}

	event := kafka.BookingEvent{
		Type:        kafka.EventBookingCreated,
		BookingID:   booking.BookingID,
		ReferenceID: booking.ReferenceID,
		Name:        booking.Name,
		Email:       booking.Email,
		Model:       booking.Model,
		Status:      booking.Status,
		CreatedAt:   booking.CreatedAt,
	}
	if err := svc.producer.Publish(ctx, svc.topic, booking.ReferenceID, event); err != nil {
		logger.Log.Errorw("failed to publish booking event",
			"reference_id", booking.ReferenceID,
			"err", err,
		)
	}
}

// ListBookings returns the bookings owned by the given user, newest first.
func (svc *BookingService) ListBookings(ctx context.Context, userID uuid.UUID) ([]models.BookingDB, error) {
	bookings, err := svc.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list bookings", "err", err)
		return nil, err
	}
	return bookings, nil
}

// GetBooking returns a single booking owned by the given user.
func (svc *BookingService) GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*models.BookingDB, error) {
	booking, err := svc.reader.GetByIDAndUserID(ctx, bookingID, userID)
	if err != nil {
		logger.Log.Errorw("failed to get booking", "err", err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}
