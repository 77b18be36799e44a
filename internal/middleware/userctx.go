package middleware

import (
	"context"

	"github.com/baharkarakas/ypa-web/internal/auth"
)

type identityKey struct{}

// WithIdentity stores the verified identity for downstream handlers.
// It also fills the uid/role keys so RequireRole works the same behind the guard.
func WithIdentity(ctx context.Context, id *auth.Identity) context.Context {
	ctx = context.WithValue(ctx, identityKey{}, id)
	ctx = context.WithValue(ctx, ctxUserIDKey, id.ID)
	return context.WithValue(ctx, ctxRoleKey, id.Role)
}

func IdentityFrom(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*auth.Identity)
	return id, ok && id != nil
}
