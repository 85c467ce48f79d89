// Package requestcontext carries per-request identity through the call tree.
package requestcontext

import (
	"context"
	"time"
)

type contextKeyUsername struct{}
type contextKeyRole struct{}
type contextKeyRequestID struct{}
type contextKeyTime struct{}

// WithUsername returns a context carrying the authenticated username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, contextKeyUsername{}, username)
}

// Username retrieves the authenticated username, or "" when unauthenticated.
func Username(ctx context.Context) string {
	username, ok := ctx.Value(contextKeyUsername{}).(string)
	if !ok {
		return ""
	}
	return username
}

// WithRole returns a context carrying the caller's workflow role.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, contextKeyRole{}, role)
}

// Role retrieves the caller's workflow role, or "" when absent.
func Role(ctx context.Context) string {
	role, ok := ctx.Value(contextKeyRole{}).(string)
	if !ok {
		return ""
	}
	return role
}

// WithRequestID returns a context carrying the request correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, id)
}

// RequestID retrieves the request correlation id, or "" when absent.
func RequestID(ctx context.Context) string {
	id, ok := ctx.Value(contextKeyRequestID{}).(string)
	if !ok {
		return ""
	}
	return id
}

// WithTime returns a context carrying the request-scoped timestamp so every
// operation within one request observes the same "now".
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyTime{}, t)
}

// Now retrieves the request-scoped timestamp, falling back to the wall clock
// outside a request.
func Now(ctx context.Context) time.Time {
	t, ok := ctx.Value(contextKeyTime{}).(time.Time)
	if !ok {
		return time.Now()
	}
	return t
}
