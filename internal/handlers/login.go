package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aeterna-motors/booking-api/internal/logger"
	"github.com/aeterna-motors/booking-api/internal/models"
	"github.com/aeterna-motors/booking-api/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (*models.UserDB, string, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// Success message
	// default: Login successful
	Message string `json:"message"`

	// Bearer token
	Token string `json:"token"`

	// Authenticated user
	User *models.UserDB `json:"user"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by email and password and return a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.LoginResponse "Token returned"
// @Failure 400 {object} handlers.ValidationErrorResponse "Invalid request fields"
// @Failure 401 {object} handlers.ErrorResponse "Invalid email or password"
// @Router /api/auth/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		req.Email = trimmed(req.Email)

		var fieldErrs []FieldError
		if !validEmail(req.Email) {
			fieldErrs = append(fieldErrs, FieldError{Field: "email", Message: "Valid email is required"})
		}
		if req.Password == "" {
			fieldErrs = append(fieldErrs, FieldError{Field: "password", Message: "Password is required"})
		}
		if len(fieldErrs) > 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Errors: fieldErrs})
			return
		}

		user, token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				// Unknown email and wrong password produce the same answer
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "Invalid email or password",
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
		json.NewEncoder(w).Encode(LoginResponse{
			Message: "Login successful",
			Token:   token,
			User:    user,
		})
	}
}
