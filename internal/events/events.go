package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TransferCompleted is emitted after a transfer's entry pair has committed.
type TransferCompleted struct {
	DebitStatementID  string          `json:"debit_statement_id"`
	CreditStatementID string          `json:"credit_statement_id"`
	SenderID          string          `json:"sender_id"`
	RecipientID       string          `json:"recipient_id"`
	Amount            decimal.Decimal `json:"amount"`
	OccurredAt        time.Time       `json:"occurred_at"`
}

// Publisher delivers completed-transfer events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event TransferCompleted) error
}

// NopPublisher discards events; used when no broker is configured.
type NopPublisher struct{}

// Publish drops the event.
func (NopPublisher) Publish(ctx context.Context, event TransferCompleted) error {
	return nil
}

var _ Publisher = NopPublisher{}
