package identity

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	userports "github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
)

var _ orderports.Identity = (*Identity)(nil)

// Identity resolves order clients through the users context.
type Identity struct {
	users userports.Authenticator
}

func New(users userports.Authenticator) *Identity {
	return &Identity{users: users}
}

func (i *Identity) CurrentClient(ctx context.Context) (domain.Client, error) {
	if i == nil || i.users == nil {
		return domain.Client{}, errors.New("order identity not configured")
	}
	user, err := i.users.Authenticated(ctx)
	if err != nil {
		return domain.Client{}, err
	}
	return domain.Client{ID: user.ID, Name: user.Name}, nil
}
