package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

type fakeTokenIssuer struct {
	issued []security.Principal
}

func (f *fakeTokenIssuer) Issue(principal security.Principal) (security.Token, error) {
	f.issued = append(f.issued, principal)
	return security.Token{AccessToken: "token-for-" + principal.Username, TokenType: security.TokenTypeBearer}, nil
}

var (
	roleClient = domain.Role{ID: 1, Authority: security.RoleClient}
	roleAdmin  = domain.Role{ID: 2, Authority: security.RoleAdmin}
)

func seedUsers(t *testing.T) *memory.Repository {
	t.Helper()
	hash, err := domain.HashPassword("123456")
	require.NoError(t, err)
	repo := memory.NewRepository()
	ctx := context.Background()

	maria, err := domain.NewUser(1, "Maria Brown", "maria@gmail.com", hash)
	require.NoError(t, err)
	maria.AddRole(roleClient)
	_, err = repo.Save(ctx, maria)
	require.NoError(t, err)

	alex, err := domain.NewUser(2, "Alex Green", "alex@gmail.com", hash)
	require.NoError(t, err)
	alex.AddRole(roleClient)
	alex.AddRole(roleAdmin)
	_, err = repo.Save(ctx, alex)
	require.NoError(t, err)
	return repo
}

func asUser(email string) context.Context {
	return security.WithPrincipal(context.Background(), security.Principal{Username: email})
}

func TestLoadUserByUsername_CollectsAuthorities(t *testing.T) {
	svc := NewService(seedUsers(t), nil)

	creds, err := svc.LoadUserByUsername(context.Background(), "alex@gmail.com")
	require.NoError(t, err)
	require.Equal(t, "alex@gmail.com", creds.Username)
	require.ElementsMatch(t, []string{security.RoleClient, security.RoleAdmin}, creds.Authorities)
	require.True(t, creds.CheckPassword("123456"))
}

func TestLoadUserByUsername_Unknown(t *testing.T) {
	svc := NewService(seedUsers(t), nil)

	_, err := svc.LoadUserByUsername(context.Background(), "ghost@gmail.com")
	require.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestAuthenticated_ResolvesPrincipal(t *testing.T) {
	svc := NewService(seedUsers(t), nil)

	me, err := svc.GetMe(asUser("maria@gmail.com"))
	require.NoError(t, err)
	require.Equal(t, int64(1), me.ID)
	require.Equal(t, "Maria Brown", me.Name)

	_, err = svc.Authenticated(context.Background())
	require.ErrorIs(t, err, ports.ErrUserNotFound)

	_, err = svc.Authenticated(asUser("ghost@gmail.com"))
	require.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestIssueToken(t *testing.T) {
	tokens := &fakeTokenIssuer{}
	svc := NewService(seedUsers(t), tokens)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "maria@gmail.com", "123456")
	require.NoError(t, err)
	require.Equal(t, "token-for-maria@gmail.com", token.AccessToken)
	require.Equal(t, []string{security.RoleClient}, tokens.issued[0].Authorities)

	_, err = svc.IssueToken(ctx, "maria@gmail.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.IssueToken(ctx, "ghost@gmail.com", "123456")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, tokens.issued, 1)
}

func TestValidateSelfOrAdmin(t *testing.T) {
	auth := NewAuthService(NewService(seedUsers(t), nil))

	require.NoError(t, auth.ValidateSelfOrAdmin(asUser("maria@gmail.com"), 1), "owner")
	require.NoError(t, auth.ValidateSelfOrAdmin(asUser("alex@gmail.com"), 1), "admin on someone else")
	require.NoError(t, auth.ValidateSelfOrAdmin(asUser("alex@gmail.com"), 2), "admin on self")
	require.ErrorIs(t, auth.ValidateSelfOrAdmin(asUser("maria@gmail.com"), 2), ErrForbidden)
}

type failingAuthenticator struct{ err error }

func (f failingAuthenticator) Authenticated(context.Context) (*domain.User, error) {
	return nil, f.err
}

func TestValidateSelfOrAdmin_PropagatesResolutionError(t *testing.T) {
	boom := errors.New("lookup failed")
	auth := NewAuthService(failingAuthenticator{err: boom})

	require.ErrorIs(t, auth.ValidateSelfOrAdmin(context.Background(), 1), boom)
}
