package middleware

import (
	"context"

	"github.com/taskhive/task-service/internal/application/task"
)

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity attaches the authenticated caller to the request context.
func WithIdentity(ctx context.Context, id task.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the authenticated caller, if any.
func IdentityFromContext(ctx context.Context) (task.Identity, bool) {
	id, ok := ctx.Value(identityKey).(task.Identity)
	return id, ok
}

// UserIDFromContext is a convenience accessor for handlers that only need
// the caller id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := IdentityFromContext(ctx)
	return id.ID, ok
}

func RoleFromContext(ctx context.Context) (string, bool) {
	id, ok := IdentityFromContext(ctx)
	return id.Role, ok
}
