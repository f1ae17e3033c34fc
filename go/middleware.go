package shopserver

import (
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-commerce-api/internal/shared/errors"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

// TokenValidator resolves a bearer token into the principal it was issued for.
type TokenValidator interface {
	Validate(raw string) (security.Principal, error)
}

// Security authenticates bearer tokens and enforces route authorities.
type Security struct {
	tokens TokenValidator
}

// NewSecurity builds the guard. A nil validator rejects every token.
func NewSecurity(tokens TokenValidator) *Security {
	return &Security{tokens: tokens}
}

// RequireAuthentication stores the caller principal in the request context or aborts with 401.
func (s *Security) RequireAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := s.authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireAnyRole authenticates the caller and aborts with 403 unless one of roles was granted.
func (s *Security) RequireAnyRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := s.authenticate(c)
		if !ok {
			return
		}
		if !principal.HasAnyAuthority(roles...) {
			apierrors.Abort(c, apierrors.ErrForbidden.WithDetail("access denied"))
			return
		}
		c.Next()
	}
}

func (s *Security) authenticate(c *gin.Context) (security.Principal, bool) {
	raw, found := bearerToken(c.GetHeader("Authorization"))
	if !found {
		apierrors.Abort(c, apierrors.ErrUnauthorized.WithDetail("full authentication is required"))
		return security.Principal{}, false
	}
	if s == nil || s.tokens == nil {
		apierrors.Abort(c, apierrors.ErrUnauthorized.WithDetail("invalid access token"))
		return security.Principal{}, false
	}
	principal, err := s.tokens.Validate(raw)
	if err != nil {
		apierrors.Abort(c, apierrors.ErrUnauthorized.WithDetail("invalid access token"))
		return security.Principal{}, false
	}
	c.Request = c.Request.WithContext(security.WithPrincipal(c.Request.Context(), principal))
	return principal, true
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
