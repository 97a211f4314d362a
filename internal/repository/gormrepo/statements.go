package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finapi/internal/domain"
	"finapi/internal/repository"
)

// Statements is the MySQL-backed StatementsRepository. Entries are only ever
// inserted; the tables carry no update path.
type Statements struct {
	db *gorm.DB
}

// NewStatements creates a Statements repository on top of an open GORM handle.
func NewStatements(db *gorm.DB) *Statements {
	return &Statements{db: db}
}

// Create appends one immutable ledger entry.
func (r *Statements) Create(ctx context.Context, stmt *domain.Statement) (*domain.Statement, error) {
	if stmt.ID == "" {
		stmt.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(stmt).Error; err != nil {
		return nil, fmt.Errorf("create statement: %w", err)
	}
	return stmt, nil
}

// CreatePair appends a transfer's debit and credit inside one database
// transaction. A failure after the first insert rolls back, so readers never
// observe a half-committed transfer.
func (r *Statements) CreatePair(ctx context.Context, debit, credit *domain.Statement) error {
	if debit.ID == "" {
		debit.ID = uuid.NewString()
	}
	if credit.ID == "" {
		credit.ID = uuid.NewString()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(debit).Error; err != nil {
			return err // Rollback
		}
		if err := tx.Create(credit).Error; err != nil {
			return err // Rollback
		}
		return nil // Commit
	})
	if err != nil {
		return fmt.Errorf("create transfer pair: %w", err)
	}
	return nil
}

// FindByID looks up an entry scoped to its owning user.
func (r *Statements) FindByID(ctx context.Context, id, userID string) (*domain.Statement, error) {
	var stmt domain.Statement
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&stmt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStatementNotFound
		}
		return nil, fmt.Errorf("find statement by id: %w", err)
	}
	return &stmt, nil
}

// GetUserBalance loads the user's entries in creation order and folds them.
// The balance is always derived here, never read from a stored column, so it
// cannot drift from the entries that justify it.
func (r *Statements) GetUserBalance(ctx context.Context, userID string) (*repository.Balance, error) {
	var entries []domain.Statement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("fetch statements: %w", err)
	}
	balance := decimal.Zero
	for _, entry := range entries {
		switch entry.Type {
		case domain.OperationWithdraw:
			balance = balance.Sub(entry.Amount)
		default: // deposit and transfer both credit the owner
			balance = balance.Add(entry.Amount)
		}
	}
	return &repository.Balance{Balance: balance, Statement: entries}, nil
}

var _ repository.StatementsRepository = (*Statements)(nil)
