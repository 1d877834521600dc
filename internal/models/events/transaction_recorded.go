package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/account-ledger/internal/models"
)

// AccountKey is the message key of every ledger event. The ledger holds a single account,
// so all its events share one partition and keep their relative order.
const AccountKey = "account"

type TransactionRecorded struct {
	TransactionID string                 `json:"transaction_id"`
	Kind          models.TransactionKind `json:"kind"`
	Amount        decimal.Decimal        `json:"amount"`
	BalanceAfter  decimal.Decimal        `json:"balance_after"`
	Date          time.Time              `json:"date"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

func NewTransactionRecorded(tx models.Transaction, at time.Time) TransactionRecorded {
	return TransactionRecorded{
		TransactionID: tx.ID,
		Kind:          tx.Kind,
		Amount:        decimal.NewFromInt(tx.SignedAmount()),
		BalanceAfter:  decimal.NewFromInt(tx.BalanceAfter),
		Date:          tx.Date,
		OccurredAt:    at,
	}
}

// Key returns AccountKey. Consumers order events by partition offset; BalanceAfter
// increases or decreases by exactly Amount from one event to the next.
func (e TransactionRecorded) Key() string {
	return AccountKey
}
