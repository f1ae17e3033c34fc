package shopserver

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/go-gin-commerce-api/internal/domains/users/adapters/http/mapper"
	usersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/users/application"
	usersports "github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
)

const grantTypePassword = "password"

// ClientCredentials identify the single OAuth client allowed to request tokens.
type ClientCredentials struct {
	ID     string
	Secret string
}

// AuthAPI issues access tokens through the password grant.
type AuthAPI struct {
	service usersports.Service
	client  ClientCredentials
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service usersports.Service, client ClientCredentials) AuthAPI {
	return AuthAPI{service: service, client: client}
}

// Post /oauth2/token
// Exchange user credentials for an access token
func (api *AuthAPI) Token(c *gin.Context) {
	id, secret, ok := c.Request.BasicAuth()
	if !ok || !api.clientMatches(id, secret) {
		c.Header("WWW-Authenticate", `Basic realm="oauth2"`)
		respondOAuthError(c, http.StatusUnauthorized, "invalid_client", "client authentication failed")
		return
	}
	var form userhttpmapper.TokenRequest
	if err := c.ShouldBind(&form); err != nil {
		respondOAuthError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if form.GrantType != grantTypePassword {
		respondOAuthError(c, http.StatusBadRequest, "unsupported_grant_type", "only the password grant is supported")
		return
	}
	token, err := api.service.IssueToken(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, usersapp.ErrInvalidCredentials) {
			respondOAuthError(c, http.StatusBadRequest, "invalid_grant", "bad credentials")
			return
		}
		_ = c.Error(err)
		respondOAuthError(c, http.StatusInternalServerError, "server_error", "token could not be issued")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, userhttpmapper.FromToken(token))
}

func (api *AuthAPI) clientMatches(id, secret string) bool {
	if api.client.ID == "" {
		return false
	}
	idOK := subtle.ConstantTimeCompare([]byte(id), []byte(api.client.ID)) == 1
	secretOK := subtle.ConstantTimeCompare([]byte(secret), []byte(api.client.Secret)) == 1
	return idOK && secretOK
}

// respondOAuthError writes the RFC 6749 error body used by token endpoints.
func respondOAuthError(c *gin.Context, status int, code, description string) {
	c.JSON(status, gin.H{"error": code, "error_description": description})
}
