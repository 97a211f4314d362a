package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType is the kind of movement a statement entry records.
type OperationType string

const (
	OperationDeposit  OperationType = "deposit"  // Funds added by the owner
	OperationWithdraw OperationType = "withdraw" // Funds removed: plain withdrawal or a transfer's debit side
	OperationTransfer OperationType = "transfer" // Funds received from another user, carries SenderID
)

// Statement Model: one immutable ledger record of a monetary movement.
// The ledger is append-only; there is no update or delete path anywhere.
type Statement struct {
	ID          string          `gorm:"primaryKey;type:char(36)" json:"id"`          // UUID primary key
	UserID      string          `gorm:"type:char(36);index;not null" json:"user_id"` // Owning user
	SenderID    *string         `gorm:"type:char(36)" json:"sender_id,omitempty"`    // Counterparty, set only on transfer credits
	Type        OperationType   `gorm:"type:varchar(16);not null" json:"type"`       // deposit, withdraw or transfer
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`   // Always positive; Type decides the sign at fold time
	Description string          `gorm:"type:varchar(255)" json:"description"`        // Free text
	CreatedAt   time.Time       `json:"created_at"`                                  // Timestamp of the append
}
