package application

import (
	"context"
	"errors"
	"strings"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo   ports.Repository
	tokens ports.TokenIssuer
}

func NewService(repo ports.Repository, tokens ports.TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// LoadUserByUsername collects the credentials and authorities of the user with email username.
func (s *Service) LoadUserByUsername(ctx context.Context, username string) (*domain.Credentials, error) {
	rows, err := s.repo.SearchUserAndRolesByEmail(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrUserNotFound
	}
	creds := &domain.Credentials{
		Username:     rows[0].Username,
		PasswordHash: rows[0].Password,
		Authorities:  make([]string, 0, len(rows)),
	}
	for _, row := range rows {
		if row.Authority != "" {
			creds.Authorities = append(creds.Authorities, row.Authority)
		}
	}
	return creds, nil
}

func (s *Service) Authenticated(ctx context.Context) (*domain.User, error) {
	principal, ok := security.PrincipalFromContext(ctx)
	if !ok {
		return nil, ports.ErrUserNotFound
	}
	return s.repo.FindByEmail(ctx, principal.Username)
}

func (s *Service) GetMe(ctx context.Context) (*domain.User, error) {
	return s.Authenticated(ctx)
}

// IssueToken verifies the password grant and signs an access token.
func (s *Service) IssueToken(ctx context.Context, username, password string) (security.Token, error) {
	if s.tokens == nil {
		return security.Token{}, errors.New("token issuer not configured")
	}
	creds, err := s.LoadUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return security.Token{}, ErrInvalidCredentials
		}
		return security.Token{}, err
	}
	if !creds.CheckPassword(password) {
		return security.Token{}, ErrInvalidCredentials
	}
	return s.tokens.Issue(security.Principal{Username: creds.Username, Authorities: creds.Authorities})
}

var _ ports.Service = (*Service)(nil)
