package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"finapi/internal/domain"
	"finapi/internal/repository"
)

// CreateUserInput carries the signup attributes.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// CreateUser registers a new identity record.
type CreateUser struct {
	users repository.UsersRepository
}

// NewCreateUser wires the use case with its repository.
func NewCreateUser(users repository.UsersRepository) *CreateUser {
	return &CreateUser{users: users}
}

// Execute creates the user after checking the email is free. The stored
// credential is a bcrypt hash; the plaintext never leaves this function.
func (uc *CreateUser) Execute(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	_, err := uc.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return uc.users.Create(ctx, &domain.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
	})
}

// ShowUserProfile returns the identity record for an authenticated user.
type ShowUserProfile struct {
	users repository.UsersRepository
}

// NewShowUserProfile wires the use case with its repository.
func NewShowUserProfile(users repository.UsersRepository) *ShowUserProfile {
	return &ShowUserProfile{users: users}
}

// Execute looks the user up by identifier.
func (uc *ShowUserProfile) Execute(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.FindByID(ctx, userID)
}
