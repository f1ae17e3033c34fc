package ports

import (
	"context"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	LoadUserByUsername(ctx context.Context, username string) (*domain.Credentials, error)
	// Authenticated resolves the user behind the principal stored in ctx.
	Authenticated(ctx context.Context) (*domain.User, error)
	GetMe(ctx context.Context) (*domain.User, error)
	IssueToken(ctx context.Context, username, password string) (security.Token, error)
}

// TokenIssuer signs access tokens for authenticated principals.
type TokenIssuer interface {
	Issue(principal security.Principal) (security.Token, error)
}

// Authenticator resolves the calling user from a request context.
type Authenticator interface {
	Authenticated(ctx context.Context) (*domain.User, error)
}
