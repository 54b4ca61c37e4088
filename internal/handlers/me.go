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
	"github.com/google/uuid"
)

// UserGetter defines the interface that the identity service must implement.
type UserGetter interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
}

// MeResponse represents the current-user response
// swagger:model MeResponse
type MeResponse struct {
	// Authenticated user
	User *models.UserDB `json:"user"`
}

// NewMeHandler returns an HTTP handler for the current-user lookup.
// @Summary Get current user
// @Description Returns the user behind the presented bearer token.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.MeResponse "Current user"
// @Failure 401 "Missing or invalid token"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /api/auth/me [get]
func NewMeHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := middlewares.ClaimsFromContext(r.Context())
		if claims == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		user, err := svc.GetUser(r.Context(), claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "User not found",
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
		json.NewEncoder(w).Encode(MeResponse{User: user})
	}
}
