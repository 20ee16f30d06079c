// Package authctx propagates validated claims through a request context.
//
//	ctx = authctx.Set(ctx, claims)            // auth middleware
//	claims, ok := authctx.Get[*jwt.Claims](ctx) // handlers
//	id, err := authctx.SubjectID(ctx)
package authctx

import (
	"context"

	"github.com/google/uuid"

	"github.com/biduedson/reservas-api/auth"
	"github.com/biduedson/reservas-api/errors"
)

type contextKey struct{}

var claimsKey = contextKey{}

// Set stores validated claims in the context.
func Set(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Get retrieves typed claims from the context.
// Returns false when they are missing or of another type.
func Get[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(claimsKey).(T)
	return claims, ok
}

// GetOrError retrieves typed claims, or a TokenMalformed error when absent.
func GetOrError[T any](ctx context.Context) (T, error) {
	claims, ok := Get[T](ctx)
	if !ok {
		var zero T
		return zero, errors.TokenMalformed("no claims in context")
	}
	return claims, nil
}

// Identity returns the authenticated identity stored by the auth middleware.
func Identity(ctx context.Context) (auth.Identity, error) {
	return GetOrError[auth.Identity](ctx)
}

// SubjectID returns the authenticated account id. A missing identity or a
// subject that is not a UUID is a TokenMalformed error.
func SubjectID(ctx context.Context) (uuid.UUID, error) {
	id, err := Identity(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	subject, ok := id.SubjectID()
	if !ok {
		return uuid.Nil, errors.TokenMalformed("subject is not an account id")
	}
	return subject, nil
}
