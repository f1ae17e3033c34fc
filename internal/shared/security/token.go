package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenTypeBearer is reported to clients alongside issued tokens.
	TokenTypeBearer = "Bearer"
	// DefaultTokenTTL matches the access token lifetime of the token endpoint.
	DefaultTokenTTL = 24 * time.Hour
	// DefaultIssuer is stamped into every issued token.
	DefaultIssuer = "go-gin-commerce-api"

	minSecretLength = 32
)

var (
	// ErrInvalidToken signals a token that failed signature, issuer, or expiry validation.
	ErrInvalidToken = errors.New("invalid bearer token")
	// ErrWeakSecret signals a signing secret too short for HS256.
	ErrWeakSecret = errors.New("token signing secret must be at least 32 bytes")
)

// Claims is the JWT payload issued for shop users.
type Claims struct {
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}

// Token is an issued access token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	Scope       string
}

// TokenManager issues and validates HS256 access tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithIssuer overrides the iss claim.
func WithIssuer(issuer string) TokenOption {
	return func(m *TokenManager) {
		if strings.TrimSpace(issuer) != "" {
			m.issuer = issuer
		}
	}
}

// WithClock overrides the time source; used by tests.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewTokenManager validates the secret and applies defaults.
func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	m := &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: DefaultIssuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// Issue signs a token for the principal.
func (m *TokenManager) Issue(principal Principal) (Token, error) {
	if strings.TrimSpace(principal.Username) == "" {
		return Token{}, errors.New("principal username is required")
	}
	now := m.now()
	claims := Claims{
		Username:    principal.Username,
		Authorities: append([]string(nil), principal.Authorities...),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   principal.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{
		AccessToken: signed,
		TokenType:   TokenTypeBearer,
		ExpiresIn:   m.ttl,
		Scope:       "read write",
	}, nil
}

// Validate parses the raw token and returns the principal it carries.
func (m *TokenManager) Validate(raw string) (Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Principal{}, ErrInvalidToken
	}
	username := claims.Username
	if username == "" {
		username = claims.Subject
	}
	if username == "" {
		return Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return Principal{Username: username, Authorities: claims.Authorities}, nil
}
