package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"finapi/internal/domain"
	"finapi/internal/repository"
)

// Users is the MySQL-backed UsersRepository.
type Users struct {
	db *gorm.DB
}

// NewUsers creates a Users repository on top of an open GORM handle.
func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create stores a new user, assigning a UUID identifier.
func (r *Users) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// The unique index on email backs the duplicate-email rule.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// FindByID looks up a user by identifier.
func (r *Users) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// FindByEmail looks up a user by email.
func (r *Users) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Compile-time check that Users satisfies the repository contract.
var _ repository.UsersRepository = (*Users)(nil)
