package usecase

import (
	"context"
	"errors"
	"testing"

	"finapi/internal/domain"
	"finapi/internal/repository/inmemory"
	"finapi/internal/utils"
)

const testSecret = "test-secret"

func createTestUser(t *testing.T, users *inmemory.Users, email string) *domain.User {
	t.Helper()
	user, err := NewCreateUser(users).Execute(context.Background(), CreateUserInput{
		Name:     "User name test",
		Email:    email,
		Password: "123456",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func TestCreateUser(t *testing.T) {
	users := inmemory.NewUsers()
	user := createTestUser(t, users, "user1@test.com")

	if user.ID == "" {
		t.Fatal("user id should be assigned")
	}
	if user.Password == "123456" {
		t.Fatal("stored credential must be hashed, not plaintext")
	}
	got, err := users.FindByEmail(context.Background(), "user1@test.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.ID != user.ID || got.Name != "User name test" {
		t.Fatalf("stored user mismatch: %+v", got)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := inmemory.NewUsers()
	createTestUser(t, users, "user1@test.com")

	_, err := NewCreateUser(users).Execute(context.Background(), CreateUserInput{
		Name:     "User name test 2",
		Email:    "user1@test.com",
		Password: "3336699",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthenticateUser(t *testing.T) {
	users := inmemory.NewUsers()
	user := createTestUser(t, users, "user1@test.com")
	auth := NewAuthenticateUser(users, testSecret)

	session, err := auth.Execute(context.Background(), "user1@test.com", "123456")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if session.Token == "" {
		t.Fatal("session token should be set")
	}
	if session.User == nil || session.User.ID != user.ID {
		t.Fatalf("session user mismatch: %+v", session.User)
	}
	// The token must carry the user id it was issued for.
	claims, err := utils.ParseJWT(session.Token, testSecret)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user id = %q, want %q", claims.UserID, user.ID)
	}
}

func TestAuthenticateUserRejections(t *testing.T) {
	users := inmemory.NewUsers()
	createTestUser(t, users, "user1@test.com")
	auth := NewAuthenticateUser(users, testSecret)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@test.com", "123456"},
		{"wrong password", "user1@test.com", "wrongpass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Execute(context.Background(), tt.email, tt.password)
			if !errors.Is(err, domain.ErrIncorrectCredentials) {
				t.Fatalf("want ErrIncorrectCredentials, got %v", err)
			}
		})
	}
}

func TestShowUserProfile(t *testing.T) {
	users := inmemory.NewUsers()
	user := createTestUser(t, users, "user1@test.com")
	uc := NewShowUserProfile(users)

	got, err := uc.Execute(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("show profile: %v", err)
	}
	if got.Email != "user1@test.com" {
		t.Fatalf("profile email = %q", got.Email)
	}

	if _, err := uc.Execute(context.Background(), "missing-id"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}
