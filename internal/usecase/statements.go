package usecase

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"finapi/internal/domain"
	"finapi/internal/repository"
)

// CreateStatementInput carries a single-user deposit or withdraw request.
type CreateStatementInput struct {
	UserID      string
	Type        domain.OperationType // deposit or withdraw
	Amount      decimal.Decimal
	Description string
}

// CreateStatement validates and appends a single-user ledger entry.
type CreateStatement struct {
	users      repository.UsersRepository
	statements repository.StatementsRepository
	locks      *Locks
}

// NewCreateStatement wires the use case with its collaborators.
func NewCreateStatement(users repository.UsersRepository, statements repository.StatementsRepository, locks *Locks) *CreateStatement {
	return &CreateStatement{users: users, statements: statements, locks: locks}
}

// Execute runs lookup, balance check (withdraw only) and append, in that
// order. Validation happens strictly before the append, so a rejected
// operation never reaches the ledger.
func (uc *CreateStatement) Execute(ctx context.Context, input CreateStatementInput) (*domain.Statement, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrAmountMustBePositive
	}
	if _, err := uc.users.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}
	if input.Type == domain.OperationWithdraw {
		// The payer's lock stays held through the append so a concurrent
		// withdrawal cannot pass the check against a stale balance.
		mu := uc.locks.For(input.UserID)
		mu.Lock()
		defer mu.Unlock()
		balance, err := uc.statements.GetUserBalance(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		if balance.Balance.LessThan(input.Amount) {
			return nil, domain.ErrInsufficientFunds
		}
	}
	stmt, err := uc.statements.Create(ctx, &domain.Statement{
		UserID:      input.UserID,
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":      input.UserID,
		"statement_id": stmt.ID,
		"type":         stmt.Type,
		"amount":       stmt.Amount.String(),
	}).Info("Statement created")
	return stmt, nil
}

// GetBalance derives a user's balance by folding the ledger.
type GetBalance struct {
	users      repository.UsersRepository
	statements repository.StatementsRepository
}

// NewGetBalance wires the use case with its collaborators.
func NewGetBalance(users repository.UsersRepository, statements repository.StatementsRepository) *GetBalance {
	return &GetBalance{users: users, statements: statements}
}

// Execute returns the derived balance plus every entry, in creation order.
func (uc *GetBalance) Execute(ctx context.Context, userID string) (*repository.Balance, error) {
	if _, err := uc.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.statements.GetUserBalance(ctx, userID)
}

// GetStatementOperation fetches a single entry scoped to its owner.
type GetStatementOperation struct {
	users      repository.UsersRepository
	statements repository.StatementsRepository
}

// NewGetStatementOperation wires the use case with its collaborators.
func NewGetStatementOperation(users repository.UsersRepository, statements repository.StatementsRepository) *GetStatementOperation {
	return &GetStatementOperation{users: users, statements: statements}
}

// Execute looks the entry up; an entry owned by a different user is treated
// as not found.
func (uc *GetStatementOperation) Execute(ctx context.Context, userID, statementID string) (*domain.Statement, error) {
	if _, err := uc.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return uc.statements.FindByID(ctx, statementID, userID)
}
