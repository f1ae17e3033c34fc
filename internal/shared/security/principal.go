// Package security carries the authenticated principal through request contexts
// and issues and validates the bearer tokens that establish it.
package security

import "context"

// Authorities granted to shop users.
const (
	RoleClient = "ROLE_CLIENT"
	RoleAdmin  = "ROLE_ADMIN"
)

// Principal is the identity extracted from a validated bearer token.
type Principal struct {
	Username    string
	Authorities []string
}

// HasAuthority reports whether the principal was granted authority.
func (p Principal) HasAuthority(authority string) bool {
	for _, granted := range p.Authorities {
		if granted == authority {
			return true
		}
	}
	return false
}

// HasAnyAuthority reports whether any of the given authorities was granted.
func (p Principal) HasAnyAuthority(authorities ...string) bool {
	for _, authority := range authorities {
		if p.HasAuthority(authority) {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal stores the principal on the context.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// PrincipalFromContext returns the principal stored by WithPrincipal.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	principal, ok := ctx.Value(principalKey{}).(Principal)
	if !ok || principal.Username == "" {
		return Principal{}, false
	}
	return principal, true
}
