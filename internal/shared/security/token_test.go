package security

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_IssueAndValidate(t *testing.T) {
	manager, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	token, err := manager.Issue(Principal{Username: "maria@gmail.com", Authorities: []string{RoleClient}})
	require.NoError(t, err)
	require.Equal(t, TokenTypeBearer, token.TokenType)
	require.Equal(t, time.Hour, token.ExpiresIn)

	principal, err := manager.Validate(token.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "maria@gmail.com", principal.Username)
	require.True(t, principal.HasAuthority(RoleClient))
	require.False(t, principal.HasAuthority(RoleAdmin))
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewTokenManager(testSecret, time.Minute, WithClock(func() time.Time { return issuedAt }))
	require.NoError(t, err)
	token, err := issuer.Issue(Principal{Username: "alex@gmail.com"})
	require.NoError(t, err)

	later, err := NewTokenManager(testSecret, time.Minute, WithClock(func() time.Time { return issuedAt.Add(time.Hour) }))
	require.NoError(t, err)
	_, err = later.Validate(token.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	manager, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour)
	require.NoError(t, err)
	token, err := other.Issue(Principal{Username: "alex@gmail.com"})
	require.NoError(t, err)

	_, err = manager.Validate(token.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Validate("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsUnexpectedAlgorithm(t *testing.T) {
	manager, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)
	claims := Claims{
		Username: "alex@gmail.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    DefaultIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = manager.Validate(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManager_RejectsWeakSecret(t *testing.T) {
	_, err := NewTokenManager("short", time.Hour)
	require.ErrorIs(t, err, ErrWeakSecret)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	require.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{Username: "alex@gmail.com", Authorities: []string{RoleClient, RoleAdmin}})
	principal, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	require.True(t, principal.HasAnyAuthority(RoleAdmin))
}
