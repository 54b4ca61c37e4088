package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aeterna-motors/booking-api/internal/jwt"
	"github.com/aeterna-motors/booking-api/internal/logger"
	"github.com/aeterna-motors/booking-api/internal/models"
	"github.com/google/uuid"
)

// BookingCreator defines the interface that the booking service must implement.
type BookingCreator interface {
	CreateBooking(ctx context.Context, name, email, model string, userID *uuid.UUID) (*models.BookingDB, error)
}

// ClaimsGetter extracts and verifies an optional bearer token.
type ClaimsGetter interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// CreateBookingRequest represents the JSON body for booking submission
// swagger:model CreateBookingRequest
type CreateBookingRequest struct {
	// Requester name
	// required: true
	// default: John Doe
	Name string `json:"name"`

	// Requester email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Requested car model
	// required: true
	// default: Aeterna GT-9
	Model string `json:"model"`
}

// CreateBookingResponse represents a successful booking submission
// swagger:model CreateBookingResponse
type CreateBookingResponse struct {
	// Success message
	// default: Booking created successfully
	Message string `json:"message"`

	// Created booking with its allocated reference
	Booking *models.BookingDB `json:"booking"`
}

// NewCreateBookingHandler returns an HTTP handler for booking submission.
// The bearer token is optional: a valid token ties the booking to the
// caller's identity, an invalid or absent one leaves it anonymous.
// @Summary Submit a booking
// @Description Creates a pending booking with a unique reference code. Authentication is optional.
// @Tags bookings
// @Accept json
// @Produce json
// @Param createBookingRequest body handlers.CreateBookingRequest true "Booking request"
// @Success 201 {object} handlers.CreateBookingResponse "Booking created"
// @Failure 400 {object} handlers.ValidationErrorResponse "Invalid request fields"
// @Router /api/bookings [post]
func NewCreateBookingHandler(svc BookingCreator, tokener ClaimsGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBookingRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		req.Name = trimmed(req.Name)
		req.Email = trimmed(req.Email)
		req.Model = trimmed(req.Model)

		var fieldErrs []FieldError
		if req.Name == "" {
			fieldErrs = append(fieldErrs, FieldError{Field: "name", Message: "Name is required"})
		}
		if !validEmail(req.Email) {
			fieldErrs = append(fieldErrs, FieldError{Field: "email", Message: "Valid email is required"})
		}
		if req.Model == "" {
			fieldErrs = append(fieldErrs, FieldError{Field: "model", Message: "Car model is required"})
		}
		if len(fieldErrs) > 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Errors: fieldErrs})
			return
		}

		// An invalid token does not fail the request; the booking proceeds
		// anonymously.
		var userID *uuid.UUID
		if tokenString, err := tokener.GetTokenFromRequest(r.Context(), r); err == nil {
			if claims, err := tokener.GetClaims(r.Context(), tokenString); err == nil {
				userID = &claims.UserID
			}
		}

		booking, err := svc.CreateBooking(r.Context(), req.Name, req.Email, req.Model, userID)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "Internal server error",
			})
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateBookingResponse{
			Message: "Booking created successfully",
			Booking: booking,
		})
	}
}
