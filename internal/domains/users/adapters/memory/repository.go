package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps users in memory, indexed by id and by lower-cased email.
type Repository struct {
	mu      sync.RWMutex
	users   map[int64]*domain.User
	byEmail map[string]int64
	nextID  int64
}

func NewRepository() *Repository {
	return &Repository{users: map[int64]*domain.User{}, byEmail: map[string]int64{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := user.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	key := emailKey(clone.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if owner, taken := r.byEmail[key]; taken && owner != clone.ID {
		return nil, errors.New("email already registered")
	}
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	if previous, ok := r.users[clone.ID]; ok {
		delete(r.byEmail, emailKey(previous.Email))
	}
	r.users[clone.ID] = clone
	r.byEmail[key] = clone.ID
	return clone.Clone(), nil
}

func (r *Repository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, ports.ErrUserNotFound
	}
	return r.users[id].Clone(), nil
}

func (r *Repository) SearchUserAndRolesByEmail(_ context.Context, email string) ([]ports.UserDetailsProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, nil
	}
	user := r.users[id]
	rows := make([]ports.UserDetailsProjection, 0, len(user.Roles))
	for _, role := range user.Roles {
		rows = append(rows, ports.UserDetailsProjection{
			Username:  user.Email,
			Password:  user.PasswordHash,
			RoleID:    role.ID,
			Authority: role.Authority,
		})
	}
	return rows, nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
