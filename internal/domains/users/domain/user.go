package domain

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyName     = errors.New("user name is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrEmptyPassword = errors.New("password is required")
)

// Role is an authority granted to users.
type Role struct {
	ID        int64
	Authority string
}

// User is a shop customer or administrator. Email is the login identity.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	BirthDate    time.Time
	PasswordHash string
	Roles        []Role
}

// NewUser builds a user ensuring required invariants.
func NewUser(id int64, name, email, passwordHash string) (*User, error) {
	user := &User{
		ID:           id,
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate enforces invariants on the aggregate.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.PasswordHash == "" {
		return ErrEmptyPassword
	}
	return nil
}

// AddRole grants role unless the user already holds its authority.
func (u *User) AddRole(role Role) {
	if u.HasRole(role.Authority) {
		return
	}
	u.Roles = append(u.Roles, role)
}

// HasRole reports whether the user holds authority.
func (u *User) HasRole(authority string) bool {
	for _, role := range u.Roles {
		if role.Authority == authority {
			return true
		}
	}
	return false
}

// Authorities lists the authority names of the user roles.
func (u *User) Authorities() []string {
	authorities := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		authorities = append(authorities, role.Authority)
	}
	return authorities
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]Role(nil), u.Roles...)
	return &clone
}

// Credentials is the login view of a user: identity, password hash and authorities.
type Credentials struct {
	Username     string
	PasswordHash string
	Authorities  []string
}

// CheckPassword compares plain against the stored bcrypt hash.
func (c Credentials) CheckPassword(plain string) bool {
	if c.PasswordHash == "" || plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(plain)) == nil
}

// HashPassword produces the bcrypt hash stored for a password.
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
