package telemetry

import (
	"context"

	"github.com/google/uuid"
)

type callIDKey struct{}

// WithCallID returns a child of ctx tagged with id. A nil ctx is treated as
// context.Background().
func WithCallID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, callIDKey{}, id)
}

// EnsureCallID tags ctx with incoming, or with a fresh random ID when incoming
// is empty, and returns the ID it used.
func EnsureCallID(ctx context.Context, incoming string) (context.Context, string) {
	id := incoming
	if id == "" {
		id = uuid.NewString()
	}
	return WithCallID(ctx, id), id
}

// CallID returns the call ID carried by ctx, or "" when there is none.
func CallID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(callIDKey{}).(string)
	return id
}
