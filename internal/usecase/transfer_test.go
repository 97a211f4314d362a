package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"finapi/internal/domain"
	"finapi/internal/events"
)

// recordingPublisher captures published transfer events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.TransferCompleted
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.TransferCompleted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func newTransferEnv(t *testing.T) (*statementEnv, *Transfer, *recordingPublisher) {
	t.Helper()
	env := newStatementEnv(t)
	publisher := &recordingPublisher{}
	transfer := NewTransfer(env.users, env.statements, env.locks, publisher)
	return env, transfer, publisher
}

func TestTransfer(t *testing.T) {
	env, transfer, publisher := newTransferEnv(t)
	sender := createTestUser(t, env.users, "sender@test.com")
	recipient := createTestUser(t, env.users, "recipient@test.com")

	// Sender: 150 - 25 = 125. Recipient: 25. Transfer 50 -> 75 and 75.
	env.mustCreate(t, sender.ID, domain.OperationDeposit, 150)
	env.mustCreate(t, sender.ID, domain.OperationWithdraw, 25)
	env.mustCreate(t, recipient.ID, domain.OperationDeposit, 25)

	debit, err := transfer.Execute(context.Background(), TransferInput{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Amount:      decimal.NewFromInt(50),
		Description: "Transfer test 1",
	})
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}

	// The returned entry is the sender's debit, stored as a withdraw.
	if debit.UserID != sender.ID || debit.Type != domain.OperationWithdraw {
		t.Fatalf("debit entry mismatch: %+v", debit)
	}
	if !env.mustBalance(t, sender.ID).Equal(decimal.NewFromInt(75)) {
		t.Fatalf("sender balance = %s, want 75", env.mustBalance(t, sender.ID))
	}
	if !env.mustBalance(t, recipient.ID).Equal(decimal.NewFromInt(75)) {
		t.Fatalf("recipient balance = %s, want 75", env.mustBalance(t, recipient.ID))
	}

	// Exactly one credit entry on the recipient, carrying the sender id and
	// the same amount.
	b, err := env.balance.Execute(context.Background(), recipient.ID)
	if err != nil {
		t.Fatalf("recipient balance: %v", err)
	}
	var credits []domain.Statement
	for _, entry := range b.Statement {
		if entry.Type == domain.OperationTransfer {
			credits = append(credits, entry)
		}
	}
	if len(credits) != 1 {
		t.Fatalf("credit entries = %d, want 1", len(credits))
	}
	credit := credits[0]
	if credit.SenderID == nil || *credit.SenderID != sender.ID {
		t.Fatalf("credit sender_id = %v, want %s", credit.SenderID, sender.ID)
	}
	if !credit.Amount.Equal(debit.Amount) {
		t.Fatalf("credit amount %s != debit amount %s", credit.Amount, debit.Amount)
	}

	// One event per completed transfer.
	if len(publisher.events) != 1 {
		t.Fatalf("published events = %d, want 1", len(publisher.events))
	}
	event := publisher.events[0]
	if event.SenderID != sender.ID || event.RecipientID != recipient.ID || !event.Amount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("event mismatch: %+v", event)
	}
}

func TestTransferSenderNotFound(t *testing.T) {
	env, transfer, publisher := newTransferEnv(t)
	recipient := createTestUser(t, env.users, "recipient@test.com")

	_, err := transfer.Execute(context.Background(), TransferInput{
		SenderID:    "missing-id",
		RecipientID: recipient.ID,
		Amount:      decimal.NewFromInt(50),
		Description: "Transfer test",
	})
	if !errors.Is(err, domain.ErrSenderNotFound) {
		t.Fatalf("want ErrSenderNotFound, got %v", err)
	}
	// Rejected before any balance check or entry creation.
	if b := env.mustBalance(t, recipient.ID); !b.IsZero() {
		t.Fatalf("recipient balance = %s, want 0", b)
	}
	if len(publisher.events) != 0 {
		t.Fatal("no event should be published for a rejected transfer")
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	env, transfer, _ := newTransferEnv(t)
	sender := createTestUser(t, env.users, "sender@test.com")
	recipient := createTestUser(t, env.users, "recipient@test.com")

	_, err := transfer.Execute(context.Background(), TransferInput{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Amount:      decimal.NewFromInt(50),
		Description: "Transfer test",
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	if b := env.mustBalance(t, sender.ID); !b.IsZero() {
		t.Fatalf("sender balance = %s, want 0", b)
	}
}

func TestTransferRecipientNotFound(t *testing.T) {
	env, transfer, _ := newTransferEnv(t)
	sender := createTestUser(t, env.users, "sender@test.com")
	env.mustCreate(t, sender.ID, domain.OperationDeposit, 100)

	_, err := transfer.Execute(context.Background(), TransferInput{
		SenderID:    sender.ID,
		RecipientID: "missing-id",
		Amount:      decimal.NewFromInt(50),
		Description: "Transfer test",
	})
	if !errors.Is(err, domain.ErrRecipientNotFound) {
		t.Fatalf("want ErrRecipientNotFound, got %v", err)
	}
	// The sender's debit must not exist either.
	if b := env.mustBalance(t, sender.ID); !b.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("sender balance = %s, want 100", b)
	}
}

func TestTransferErrorOrder(t *testing.T) {
	// An unknown sender with no funds surfaces SenderNotFound, not
	// InsufficientFunds: the sender lookup runs before the balance check.
	_, transfer, _ := newTransferEnv(t)
	_, err := transfer.Execute(context.Background(), TransferInput{
		SenderID:    "missing-sender",
		RecipientID: "missing-recipient",
		Amount:      decimal.NewFromInt(50),
	})
	if !errors.Is(err, domain.ErrSenderNotFound) {
		t.Fatalf("want ErrSenderNotFound first, got %v", err)
	}
}

func TestTransferBalanceSumInvariant(t *testing.T) {
	env, transfer, _ := newTransferEnv(t)
	sender := createTestUser(t, env.users, "sender@test.com")
	recipient := createTestUser(t, env.users, "recipient@test.com")
	env.mustCreate(t, sender.ID, domain.OperationDeposit, 200)
	env.mustCreate(t, recipient.ID, domain.OperationDeposit, 40)

	before := env.mustBalance(t, sender.ID).Add(env.mustBalance(t, recipient.ID))
	if _, err := transfer.Execute(context.Background(), TransferInput{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Amount:      decimal.NewFromInt(75),
		Description: "Invariant check",
	}); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	after := env.mustBalance(t, sender.ID).Add(env.mustBalance(t, recipient.ID))
	if !before.Equal(after) {
		t.Fatalf("balance sum changed across transfer: %s -> %s", before, after)
	}
}

func TestConcurrentTransfersFromOneSender(t *testing.T) {
	env, transfer, _ := newTransferEnv(t)
	sender := createTestUser(t, env.users, "sender@test.com")
	recipient := createTestUser(t, env.users, "recipient@test.com")

	const n = 4
	env.mustCreate(t, sender.ID, domain.OperationDeposit, (n-1)*10)

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := transfer.Execute(context.Background(), TransferInput{
				SenderID:    sender.ID,
				RecipientID: recipient.ID,
				Amount:      decimal.NewFromInt(10),
				Description: "concurrent transfer",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var rejected, succeeded int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientFunds):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != n-1 || rejected != 1 {
		t.Fatalf("succeeded=%d rejected=%d, want %d and 1", succeeded, rejected, n-1)
	}
	if !env.mustBalance(t, sender.ID).IsZero() {
		t.Fatalf("sender balance = %s, want 0", env.mustBalance(t, sender.ID))
	}
	if !env.mustBalance(t, recipient.ID).Equal(decimal.NewFromInt((n - 1) * 10)) {
		t.Fatalf("recipient balance = %s, want %d", env.mustBalance(t, recipient.ID), (n-1)*10)
	}
}
