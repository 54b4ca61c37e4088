package middlewares

import (
	"context"
	"net/http"

	"github.com/aeterna-motors/booking-api/internal/jwt"
	"github.com/aeterna-motors/booking-api/internal/logger"
)

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var claimsKey = contextKey{}

// SetClaimsToContext stores verified token claims in the context
func SetClaimsToContext(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext retrieves the verified token claims from the context.
// Returns nil if the request was not authenticated.
func ClaimsFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(claimsKey).(*jwt.Claims)
	return claims
}

// AuthMiddleware returns a middleware that requires a valid bearer token
// and makes the verified identity available via ClaimsFromContext.
// Missing, malformed, expired and badly-signed tokens all yield the same
// 401 so the caller learns nothing about which check failed.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetClaimsToContext(ctx, claims)))
		})
	}
}
