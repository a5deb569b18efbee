package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/sparklweb1988/microfnance/internal/domain"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// OrganizationIDKey is the context key for the caller's organization ID
	OrganizationIDKey contextKey = "organization_id"
	// OfficerIDKey is the context key for the authenticated officer ID
	OfficerIDKey contextKey = "officer_id"
	// BranchIDKey is the context key for the officer's branch ID
	BranchIDKey contextKey = "branch_id"
)

// APIKeyValidator resolves an API key to the officer it belongs to
type APIKeyValidator interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.LoanOfficer, error)
}

// AuthMiddleware provides API key authentication middleware
type AuthMiddleware struct {
	validator APIKeyValidator
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator APIKeyValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// Authenticate returns an Echo middleware that validates officer API keys
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorizedError(c, "Missing authorization header")
			}

			// Check Bearer prefix
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return unauthorizedError(c, "Invalid authorization header format")
			}

			key := parts[1]

			// Officer keys always start with "mfo_"
			if !strings.HasPrefix(key, "mfo_") {
				return unauthorizedError(c, "Invalid API key format")
			}

			officer, err := m.validator.GetByAPIKey(c.Request().Context(), key)
			if err != nil {
				if err == domain.ErrOfficerNotFound {
					log.Debug().Msg("API key not found")
					return unauthorizedError(c, "Invalid or revoked API key")
				}
				log.Error().Err(err).Msg("API key validation failed")
				return unauthorizedError(c, "API key validation failed")
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, OrganizationIDKey, officer.OrganizationID)
			ctx = context.WithValue(ctx, OfficerIDKey, officer.ID)
			ctx = context.WithValue(ctx, BranchIDKey, officer.BranchID)

			c.SetRequest(c.Request().WithContext(ctx))

			log.Debug().
				Int64("organization_id", officer.OrganizationID).
				Int64("officer_id", officer.ID).
				Msg("API key authentication successful")

			return next(c)
		}
	}
}

// GetOrganizationID extracts the organization ID from the context
func GetOrganizationID(c echo.Context) int64 {
	if id, ok := c.Request().Context().Value(OrganizationIDKey).(int64); ok {
		return id
	}
	return 0
}

// GetOfficerID extracts the authenticated officer ID from the context
func GetOfficerID(c echo.Context) int64 {
	if id, ok := c.Request().Context().Value(OfficerIDKey).(int64); ok {
		return id
	}
	return 0
}

// GetBranchID extracts the officer's branch ID from the context
func GetBranchID(c echo.Context) int64 {
	if id, ok := c.Request().Context().Value(BranchIDKey).(int64); ok {
		return id
	}
	return 0
}
