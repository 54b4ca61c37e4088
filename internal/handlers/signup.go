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

// Signuper defines the interface that the signup service must implement.
type Signuper interface {
	Signup(ctx context.Context, name, email, password string) (*models.UserDB, string, error)
}

// SignupRequest represents the JSON body for user signup
// swagger:model SignupRequest
type SignupRequest struct {
	// Name
	// required: true
	// default: John Doe
	Name string `json:"name"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email"`

	// Password, at least 6 characters
	// required: true
	// default: secret123
	Password string `json:"password"`
}

// SignupResponse represents a successful signup response
// swagger:model SignupResponse
type SignupResponse struct {
	// Success message
	// default: User created successfully
	Message string `json:"message"`

	// Bearer token
	Token string `json:"token"`

	// Created user
	User *models.UserDB `json:"user"`
}

// NewSignupHandler returns an HTTP handler for user signup.
// @Summary Sign up a new user
// @Description Creates a new user account with a unique email, stores a bcrypt password hash and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param signupRequest body handlers.SignupRequest true "User signup request"
// @Success 201 {object} handlers.SignupResponse "User successfully created"
// @Failure 400 {object} handlers.ValidationErrorResponse "Invalid request fields"
// @Router /api/auth/signup [post]
func NewSignupHandler(svc Signuper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		req.Name = trimmed(req.Name)
		req.Email = trimmed(req.Email)

		var fieldErrs []FieldError
		if req.Name == "" {
			fieldErrs = append(fieldErrs, FieldError{Field: "name", Message: "Name is required"})
		}
		if !validEmail(req.Email) {
			fieldErrs = append(fieldErrs, FieldError{Field: "email", Message: "Valid email is required"})
		}
		if len(req.Password) < 6 {
			fieldErrs = append(fieldErrs, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
		}
		if len(fieldErrs) > 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Errors: fieldErrs})
			return
		}

		user, token, err := svc.Signup(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailAlreadyExists):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{
					Error: "User with this email already exists",
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

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SignupResponse{
			Message: "User created successfully",
			Token:   token,
			User:    user,
		})
	}
}
