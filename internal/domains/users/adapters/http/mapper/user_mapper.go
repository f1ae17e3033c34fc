package mapper

import (
	userdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

const birthDateLayout = "2006-01-02"

// User is the representation returned by /users/me.
type User struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	BirthDate string   `json:"birthDate,omitempty"`
	Roles     []string `json:"roles"`
}

// TokenRequest is the password grant form of the token endpoint.
type TokenRequest struct {
	GrantType string `form:"grant_type" binding:"required"`
	Username  string `form:"username" binding:"required"`
	Password  string `form:"password" binding:"required"`
}

// TokenResponse is the token endpoint success body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}

// FromDomainUser converts a domain user into its transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{Roles: []string{}}
	}
	out := User{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Roles: user.Authorities(),
	}
	if !user.BirthDate.IsZero() {
		out.BirthDate = user.BirthDate.Format(birthDateLayout)
	}
	return out
}

func FromToken(token security.Token) TokenResponse {
	return TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   int64(token.ExpiresIn.Seconds()),
		Scope:       token.Scope,
	}
}
