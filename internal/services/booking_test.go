package services_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/aeterna-motors/booking-api/internal/kafka"
	"github.com/aeterna-motors/booking-api/internal/models"
	"github.com/aeterna-motors/booking-api/internal/repositories"
	"github.com/aeterna-motors/booking-api/internal/services"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var referenceIDPattern = regexp.MustCompile(`^[A-Z0-9]{9}$`)

func TestBookingService_CreateBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockBookingReader(ctrl)
	mockWriter := services.NewMockBookingWriter(ctrl)

	svc := services.NewBookingService(mockReader, mockWriter)

	userID := uuid.New()

	mockWriter.EXPECT().
		Save(gomock.Any(), "Alice", "alice@example.com", "GT-9", &userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, name, email, model string, uid *uuid.UUID, referenceID string) (*models.BookingDB, error) {
			assert.Regexp(t, referenceIDPattern, referenceID)
			return &models.BookingDB{
				BookingID:   uuid.New(),
				Name:        name,
				Email:       email,
				Model:       model,
				UserID:      uid,
				Status:      models.BookingStatusPending,
				ReferenceID: referenceID,
			}, nil
		})

	booking, err := svc.CreateBooking(context.Background(), "Alice", "alice@example.com", "GT-9", &userID)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Regexp(t, referenceIDPattern, booking.ReferenceID)
}

// A colliding first candidate must trigger regeneration and yield a
// different, non-colliding reference.
func TestBookingService_CreateBooking_RetriesOnCollision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockBookingReader(ctrl)
	mockWriter := services.NewMockBookingWriter(ctrl)

	// Force the generator to emit a taken reference once
	refs := []string{"TAKEN1234", "FRESH5678"}
	svc := services.NewBookingService(mockReader, mockWriter,
		services.WithReferenceGenerator(func() string {
			ref := refs[0]
			refs = refs[1:]
			return ref
		}),
	)

	gomock.InOrder(
		mockWriter.EXPECT().
			Save(gomock.Any(), "Bob", "bob@example.com", "X", nil, "TAKEN1234").
			Return(nil, repositories.ErrReferenceIDExists),
		mockWriter.EXPECT().
			Save(gomock.Any(), "Bob", "bob@example.com", "X", nil, "FRESH5678").
			DoAndReturn(func(_ context.Context, name, email, model string, uid *uuid.UUID, referenceID string) (*models.BookingDB, error) {
				return &models.BookingDB{BookingID: uuid.New(), ReferenceID: referenceID, Status: models.BookingStatusPending}, nil
			}),
	)

	booking, err := svc.CreateBooking(context.Background(), "Bob", "bob@example.com", "X", nil)
	assert.NoError(t, err)
	assert.Equal(t, "FRESH5678", booking.ReferenceID)
	assert.NotEqual(t, "TAKEN1234", booking.ReferenceID)
}

// N sequential allocations must produce N distinct references, even for
// identical booking payloads submitted back-to-back.
func TestBookingService_CreateBooking_DistinctReferences(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockBookingReader(ctrl)
	mockWriter := services.NewMockBookingWriter(ctrl)

	svc := services.NewBookingService(mockReader, mockWriter)

	const n = 100
	seen := make(map[string]bool, n)

	mockWriter.EXPECT().
		Save(gomock.Any(), "Bob", "bob@example.com", "X", nil, gomock.Any()).
		DoAndReturn(func(_ context.Context, name, email, model string, uid *uuid.UUID, referenceID string) (*models.BookingDB, error) {
			return &models.BookingDB{BookingID: uuid.New(), ReferenceID: referenceID}, nil
		}).
		Times(n)

	for i := 0; i < n; i++ {
		booking, err := svc.CreateBooking(context.Background(), "Bob", "bob@example.com", "X", nil)
		assert.NoError(t, err)
		assert.False(t, seen[booking.ReferenceID], "duplicate reference %s", booking.ReferenceID)
		seen[booking.ReferenceID] = true
	}
	assert.Len(t, seen, n)
}

func TestBookingService_CreateBooking_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockBookingReader(ctrl)
	mockWriter := services.NewMockBookingWriter(ctrl)
	mockProducer := services.NewMockEventPublisher(ctrl)

	svc := services.NewBookingService(mockReader, mockWriter,
		services.WithEventPublisher(mockProducer, "bookings"),
	)

	mockWriter.EXPECT().
		Save(gomock.Any(), "Alice", "alice@example.com", "GT-9", nil, gomock.Any()).
		DoAndReturn(func(_ context.Context, name, email, model string, uid *uuid.UUID, referenceID string) (*models.BookingDB, error) {
			return &models.BookingDB{
				BookingID:   uuid.New(),
				Name:        name,
				Email:       email,
				Model:       model,
				Status:      models.BookingStatusPending,
				ReferenceID: referenceID,
			}, nil
		})
	mockProducer.EXPECT().
		Publish(gomock.Any(), "bookings", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, topic, key string, payload any) error {
			event, ok := payload.(kafka.BookingEvent)
			assert.True(t, ok)
			assert.Equal(t, kafka.EventBookingCreated, event.Type)
			assert.Equal(t, key, event.ReferenceID)
			return nil
		})

	_, err := svc.CreateBooking(context.Background(), "Alice", "alice@example.com", "GT-9", nil)
	assert.NoError(t, err)
}

// A broker failure must not fail the request; the booking is already stored.
func TestBookingService_CreateBooking_PublishFailureIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockBookingReader(ctrl)
	mockWriter := services.NewMockBookingWriter(ctrl)
	mockProducer := services.NewMockEventPublisher(ctrl)

	svc := services.NewBookingService(mockReader, mockWriter,
		services.WithEventPublisher(mockProducer, "bookings"),
	)

	mockWriter.EXPECT().
		Save(gomock.Any(), "Alice", "alice@example.com", "GT-9", nil, gomock.Any()).
		DoAndReturn(func(_ context.Context, name, email, model string, uid *uuid.UUID, referenceID string) (*models.BookingDB, error) {
			return &models.BookingDB{BookingID: uuid.New(), ReferenceID: referenceID}, nil
		})
	mockProducer.EXPECT().
		Publish(gomock.Any(), "bookings", gomock.Any(), gomock.Any()).
		Return(errors.New("broker unavailable"))

	booking, err := svc.CreateBooking(context.Background(), "Alice", "alice@example.com", "GT-9", nil)
	assert.NoError(t, err)
	assert.NotNil(t, booking)
}

func TestBookingService_CreateBooking_WriterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockBookingReader(ctrl)
	mockWriter := services.NewMockBookingWriter(ctrl)

	svc := services.NewBookingService(mockReader, mockWriter)

	mockWriter.EXPECT().
		Save(gomock.Any(), "Alice", "alice@example.com", "GT-9", nil, gomock.Any()).
		Return(nil, errors.New("store unavailable"))

	booking, err := svc.CreateBooking(context.Background(), "Alice", "alice@example.com", "GT-9", nil)
	assert.Error(t, err)
	assert.Nil(t, booking)
}

func TestBookingService_ListBookings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockBookingReader(ctrl)
	mockWriter := services.NewMockBookingWriter(ctrl)

	svc := services.NewBookingService(mockReader, mockWriter)

	userID := uuid.New()
	expected := []models.BookingDB{
		{BookingID: uuid.New(), ReferenceID: "AAAAAAAA1"},
		{BookingID: uuid.New(), ReferenceID: "AAAAAAAA2"},
	}

	mockReader.EXPECT().
		ListByUserID(gomock.Any(), userID).
		Return(expected, nil)

	bookings, err := svc.ListBookings(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, expected, bookings)
}

func TestBookingService_GetBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockBookingReader(ctrl)
	mockWriter := services.NewMockBookingWriter(ctrl)

	svc := services.NewBookingService(mockReader, mockWriter)

	bookingID := uuid.New()
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockReader.EXPECT().
			GetByIDAndUserID(gomock.Any(), bookingID, userID).
			Return(&models.BookingDB{BookingID: bookingID}, nil)

		booking, err := svc.GetBooking(context.Background(), bookingID, userID)
		assert.NoError(t, err)
		assert.Equal(t, bookingID, booking.BookingID)
	})

	t.Run("not found", func(t *testing.T) {
		mockReader.EXPECT().
			GetByIDAndUserID(gomock.Any(), bookingID, userID).
			Return(nil, nil)

		booking, err := svc.GetBooking(context.Background(), bookingID, userID)
		assert.ErrorIs(t, err, services.ErrBookingNotFound)
		assert.Nil(t, booking)
	})
}
