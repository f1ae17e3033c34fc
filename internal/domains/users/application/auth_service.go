package application

import (
	"context"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

// AuthService guards resources owned by a single user.
type AuthService struct {
	users ports.Authenticator
}

func NewAuthService(users ports.Authenticator) *AuthService {
	return &AuthService{users: users}
}

// ValidateSelfOrAdmin allows administrators and the user identified by userID.
func (s *AuthService) ValidateSelfOrAdmin(ctx context.Context, userID int64) error {
	me, err := s.users.Authenticated(ctx)
	if err != nil {
		return err
	}
	if me.HasRole(security.RoleAdmin) {
		return nil
	}
	if me.ID == userID {
		return nil
	}
	return ErrForbidden
}
