// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// principalKey is the context key for storing the authenticated principal.
const principalKey ContextKey = "principal"

// APIKeyHeader carries the key for the public score endpoint
const APIKeyHeader = "X-API-Key"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (Principal, error)
}

// Principal is the authenticated caller extracted from token claims.
type Principal interface {
	GetFacilitatorID() uuid.UUID
	IsAdmin() bool
}

// KeyVerifier checks a plaintext API key against the configured keys.
type KeyVerifier interface {
	VerifyAPIKey(key string) bool
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the principal to request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			principal, err := validator.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// APIKeyMiddleware rejects requests whose X-API-Key does not match a configured key.
func APIKeyMiddleware(verifier KeyVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(APIKeyHeader))
			if key == "" || !verifier.VerifyAPIKey(key) {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipal extracts the authenticated principal from the request context.
func GetPrincipal(r *http.Request) (Principal, error) {
	principal, ok := r.Context().Value(principalKey).(Principal)
	if !ok || principal == nil {
		return nil, fmt.Errorf("principal not found in request context")
	}
	return principal, nil
}

// GetFacilitatorID extracts the authenticated facilitator ID from the request context.
func GetFacilitatorID(r *http.Request) (uuid.UUID, error) {
	principal, err := GetPrincipal(r)
	if err != nil {
		return uuid.Nil, err
	}
	return principal.GetFacilitatorID(), nil
}

// PrincipalKey returns the context key for the principal (for testing purposes).
func PrincipalKey() ContextKey {
	return principalKey
}
