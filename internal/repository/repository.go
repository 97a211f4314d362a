package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"finapi/internal/domain"
)

// UsersRepository is the storage contract for identity records.
// The ledger use cases only read from it; Create is used by the signup flow.
type UsersRepository interface {
	// Create stores a new user, assigning its identifier and timestamp.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when the id does not resolve.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when the email is unknown.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Balance is the result of folding a user's ledger: the derived net sum plus
// every entry that justifies it, in creation order. It is never persisted.
type Balance struct {
	Balance   decimal.Decimal    `json:"balance"`
	Statement []domain.Statement `json:"statement"`
}

// StatementsRepository is the storage contract for the append-only ledger.
type StatementsRepository interface {
	// Create appends one immutable entry, assigning identifier and timestamp,
	// and returns the stored entry.
	Create(ctx context.Context, stmt *domain.Statement) (*domain.Statement, error)
	// CreatePair appends a transfer's debit and credit entries as a single
	// atomic unit: both become visible or neither does.
	CreatePair(ctx context.Context, debit, credit *domain.Statement) error
	// FindByID is scoped to the owning user; an entry belonging to a
	// different user yields domain.ErrStatementNotFound.
	FindByID(ctx context.Context, id, userID string) (*domain.Statement, error)
	// GetUserBalance folds the user's entries in creation order: deposit and
	// transfer add, withdraw subtracts.
	GetUserBalance(ctx context.Context, userID string) (*Balance, error)
}
