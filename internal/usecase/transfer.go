package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"finapi/internal/domain"
	"finapi/internal/events"
	"finapi/internal/repository"
)

// TransferInput carries a two-user transfer request.
type TransferInput struct {
	SenderID    string
	RecipientID string
	Amount      decimal.Decimal
	Description string
}

// Transfer moves funds between two users as a pair of linked ledger entries:
// a withdraw on the sender and a transfer carrying the sender id on the
// recipient, committed as one atomic unit.
type Transfer struct {
	users      repository.UsersRepository
	statements repository.StatementsRepository
	locks      *Locks
	publisher  events.Publisher
}

// NewTransfer wires the use case with its collaborators.
func NewTransfer(users repository.UsersRepository, statements repository.StatementsRepository, locks *Locks, publisher events.Publisher) *Transfer {
	return &Transfer{users: users, statements: statements, locks: locks, publisher: publisher}
}

// Execute validates in a fixed order (sender lookup, balance check, recipient
// lookup) and then appends the entry pair. The order decides which error
// surfaces first and is part of the contract. Returns the sender's debit entry.
func (uc *Transfer) Execute(ctx context.Context, input TransferInput) (*domain.Statement, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrAmountMustBePositive
	}
	if _, err := uc.users.FindByID(ctx, input.SenderID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSenderNotFound
		}
		return nil, err
	}

	// Sender's lock covers the balance check and the pair append.
	mu := uc.locks.For(input.SenderID)
	mu.Lock()
	defer mu.Unlock()

	balance, err := uc.statements.GetUserBalance(ctx, input.SenderID)
	if err != nil {
		return nil, err
	}
	if balance.Balance.LessThan(input.Amount) {
		return nil, domain.ErrInsufficientFunds
	}
	if _, err := uc.users.FindByID(ctx, input.RecipientID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, err
	}

	// The sender's debit is stored as a withdraw so the balance fold needs no
	// transfer-direction special case at read time.
	debit := &domain.Statement{
		UserID:      input.SenderID,
		Type:        domain.OperationWithdraw,
		Amount:      input.Amount,
		Description: input.Description,
	}
	senderID := input.SenderID
	credit := &domain.Statement{
		UserID:      input.RecipientID,
		SenderID:    &senderID,
		Type:        domain.OperationTransfer,
		Amount:      input.Amount,
		Description: input.Description,
	}
	if err := uc.statements.CreatePair(ctx, debit, credit); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"sender_id":    input.SenderID,
		"recipient_id": input.RecipientID,
		"amount":       input.Amount.String(),
	}).Info("Transfer completed")

	// Event delivery is best effort; the transfer already committed.
	if err := uc.publisher.Publish(ctx, events.TransferCompleted{
		DebitStatementID:  debit.ID,
		CreditStatementID: credit.ID,
		SenderID:          input.SenderID,
		RecipientID:       input.RecipientID,
		Amount:            input.Amount,
		OccurredAt:        time.Now(),
	}); err != nil {
		logrus.WithFields(logrus.Fields{
			"sender_id": input.SenderID,
			"error":     err.Error(),
		}).Warn("Failed to publish transfer event")
	}

	return debit, nil
}
