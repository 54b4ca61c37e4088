package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aeterna-motors/booking-api/internal/logger"
	"github.com/aeterna-motors/booking-api/internal/middlewares"
	"github.com/aeterna-motors/booking-api/internal/models"
	"github.com/aeterna-motors/booking-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// BookingGetter defines the interface that the booking service must implement.
type BookingGetter interface {
	GetBooking(ctx context.Context, bookingID, userID uuid.UUID) (*models.BookingDB, error)
}

// GetBookingResponse represents a single-booking lookup
// swagger:model GetBookingResponse
type GetBookingResponse struct {
	// Requested booking
	Booking *models.BookingDB `json:"booking"`
}

// NewGetBookingHandler returns an HTTP handler for a single owned booking.
// @Summary Get own booking
// @Description Returns one booking owned by the presented identity.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking id"
// @Success 200 {object} handlers.GetBookingResponse "Requested booking"
// @Failure 401 "Missing or invalid token"
// @Failure 404 {object} handlers.ErrorResponse "Booking not found"
// @Router /api/bookings/{id} [get]
func NewGetBookingHandler(svc BookingGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		bookingID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Booking not found",
			})
			return
		}

		booking, err := svc.GetBooking(r.Context(), bookingID, claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrBookingNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Booking not found",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(GetBookingResponse{Booking: booking})
	}
}
