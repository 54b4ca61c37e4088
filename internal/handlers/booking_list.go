package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aeterna-motors/booking-api/internal/logger"
	"github.com/aeterna-motors/booking-api/internal/middlewares"
	"github.com/aeterna-motors/booking-api/internal/models"
	"github.com/google/uuid"
)

// BookingLister defines the interface that the booking service must implement.
type BookingLister interface {
	ListBookings(ctx context.Context, userID uuid.UUID) ([]models.BookingDB, error)
}

// ListBookingsResponse represents the owned-bookings listing
// swagger:model ListBookingsResponse
type ListBookingsResponse struct {
	// Bookings owned by the caller, newest first
	Bookings []models.BookingDB `json:"bookings"`
}

// NewListBookingsHandler returns an HTTP handler listing the caller's bookings.
// @Summary List own bookings
// @Description Returns the bookings owned by the presented identity, newest first.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ListBookingsResponse "Owned bookings"
// @Failure 401 "Missing or invalid token"
// @Router /api/bookings [get]
func NewListBookingsHandler(svc BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		bookings, err := svc.ListBookings(r.Context(), claims.UserID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ListBookingsResponse{Bookings: bookings})
	}
}
