package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finapi/internal/domain"
	"finapi/internal/repository"
)

// Statements is an in-memory StatementsRepository. A single slice guarded by
// one mutex keeps appends in creation order; CreatePair appends both entries
// under the same lock hold, so readers see both or neither.
type Statements struct {
	mu      sync.RWMutex
	entries []domain.Statement
}

// NewStatements creates an empty in-memory ledger.
func NewStatements() *Statements {
	return &Statements{}
}

// Create appends one immutable entry.
func (r *Statements) Create(ctx context.Context, stmt *domain.Statement) (*domain.Statement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.append(stmt)
	return &stored, nil
}

// CreatePair appends a transfer's debit and credit as a single atomic unit.
func (r *Statements) CreatePair(ctx context.Context, debit, credit *domain.Statement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.append(debit)
	r.append(credit)
	return nil
}

// append stores a copy of the entry; callers must hold the write lock.
func (r *Statements) append(stmt *domain.Statement) domain.Statement {
	stored := *stmt
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	stored.CreatedAt = time.Now()
	r.entries = append(r.entries, stored)
	return stored
}

// FindByID looks up an entry scoped to its owning user.
func (r *Statements) FindByID(ctx context.Context, id, userID string) (*domain.Statement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, entry := range r.entries {
		if entry.ID == id && entry.UserID == userID {
			e := entry
			return &e, nil
		}
	}
	return nil, domain.ErrStatementNotFound
}

// GetUserBalance folds the user's entries in creation order.
func (r *Statements) GetUserBalance(ctx context.Context, userID string) (*repository.Balance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	balance := decimal.Zero
	statement := make([]domain.Statement, 0)
	for _, entry := range r.entries {
		if entry.UserID != userID {
			continue
		}
		if entry.Type == domain.OperationWithdraw {
			balance = balance.Sub(entry.Amount)
		} else {
			balance = balance.Add(entry.Amount)
		}
		statement = append(statement, entry)
	}
	return &repository.Balance{Balance: balance, Statement: statement}, nil
}

var _ repository.StatementsRepository = (*Statements)(nil)
