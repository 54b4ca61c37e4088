package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse represents the liveness check body
// swagger:model HealthResponse
type HealthResponse struct {
	// Status
	// default: OK
	Status string `json:"status"`

	// Service description
	// default: Aeterna booking API is running
	Message string `json:"message"`

	// Server time, RFC 3339
	Timestamp string `json:"timestamp"`
}

// NewHealthHandler returns a liveness check handler.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse "Service is up"
// @Router /api/health [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(HealthResponse{
			Status:    "OK",
			Message:   "Aeterna booking API is running",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
