package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type actorKey struct{}
type requestIDKey struct{}

// Actor identifies the authenticated admin acting on a request.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

func GetActor(ctx context.Context) *Actor {
	if a, ok := ctx.Value(actorKey{}).(*Actor); ok {
		return a
	}
	return nil
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
