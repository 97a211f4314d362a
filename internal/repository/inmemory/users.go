package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"finapi/internal/domain"
	"finapi/internal/repository"
)

// Users is an in-memory UsersRepository. It backs the use-case tests so the
// ledger logic stays independent of storage technology.
type Users struct {
	mu    sync.RWMutex
	users map[string]domain.User // keyed by id
}

// NewUsers creates an empty in-memory Users repository.
func NewUsers() *Users {
	return &Users{users: make(map[string]domain.User)}
}

// Create stores a new user, assigning identifier and timestamp.
func (r *Users) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now()
	r.users[stored.ID] = stored
	return &stored, nil
}

// FindByID looks up a user by identifier.
func (r *Users) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

// FindByEmail looks up a user by email.
func (r *Users) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

var _ repository.UsersRepository = (*Users)(nil)
