package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"finapi/internal/domain"
	"finapi/internal/repository"
	"finapi/internal/utils"
)

// AuthenticateOutput is the session returned on a successful login.
type AuthenticateOutput struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// AuthenticateUser verifies credentials and issues a session token.
type AuthenticateUser struct {
	users     repository.UsersRepository
	jwtSecret string
}

// NewAuthenticateUser wires the use case with its repository and signing secret.
func NewAuthenticateUser(users repository.UsersRepository, jwtSecret string) *AuthenticateUser {
	return &AuthenticateUser{users: users, jwtSecret: jwtSecret}
}

// Execute checks the email and password against the stored credential.
// Unknown email and password mismatch are indistinguishable to the caller.
func (uc *AuthenticateUser) Execute(ctx context.Context, email, password string) (*AuthenticateOutput, error) {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrIncorrectCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrIncorrectCredentials
	}
	token, err := utils.GenerateJWT(user.ID, uc.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &AuthenticateOutput{Token: token, User: user}, nil
}
