package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/domain"
)

var ErrUserNotFound = errors.New("user not found")

// UserDetailsProjection is one row of the credential lookup:
// a user joined with one of its roles.
type UserDetailsProjection struct {
	Username  string
	Password  string
	RoleID    int64
	Authority string
}

type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// SearchUserAndRolesByEmail returns one row per role held by the user with email.
	SearchUserAndRolesByEmail(ctx context.Context, email string) ([]UserDetailsProjection, error)
}
