package auth

import (
	"context"

	pkgerrors "github.com/pricewatch/pricewatch-bff/pkg/errors"
)

// Identity is the resolved caller of a user-scoped operation. The user ID is
// opaque; it is minted by the external identity provider and attached to every
// scoped tracker request.
type Identity struct {
	UserID string
}

// Resolver yields the caller identity for the current request. Implementations
// return a typed AUTH_REQUIRED error instead of panicking so callers can fail
// fast before any network request is built.
type Resolver interface {
	Resolve(ctx context.Context) (Identity, error)
}

type ctxIdentityKey struct{}

// WithIdentity seeds the context with a resolved identity. The Auth middleware
// calls this after validating the bearer token.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey{}, id)
}

// IdentityFromContext returns the identity seeded by the middleware, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(ctxIdentityKey{}).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, false
	}
	return id, true
}

// ContextResolver resolves identity from the request context.
type ContextResolver struct{}

// Resolve implements Resolver.
func (ContextResolver) Resolve(ctx context.Context) (Identity, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return Identity{}, pkgerrors.New(pkgerrors.CodeAuthRequired, "no authenticated identity")
	}
	return id, nil
}
