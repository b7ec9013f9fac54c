package shared

import "context"

// Identity is the verified caller attached to a request after the
// authorization gate has accepted its access token. Downstream
// handlers trust it for the request's duration.
type Identity struct {
	UserID int64
	Role   Role
}

type identityContextKey struct{}

// ContextWithIdentity stores the resolved identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the resolved identity from context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
