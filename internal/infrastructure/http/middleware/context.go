package middleware

import (
	"context"

	"github.com/fandangolas/heimdall/internal/domain"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// WithClaims injects validated token claims into the context.
func WithClaims(ctx context.Context, claims *domain.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the claims from the context, or nil.
func ClaimsFromContext(ctx context.Context) *domain.TokenClaims {
	v := ctx.Value(claimsContextKey)
	if v == nil {
		return nil
	}
	c, _ := v.(*domain.TokenClaims)
	return c
}
