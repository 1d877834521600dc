package models

import "time"

// TransactionKind tells whether money entered or left the account
type TransactionKind string

const (
	Deposit    TransactionKind = "DEPOSIT"
	Withdrawal TransactionKind = "WITHDRAWAL"
)

func (k TransactionKind) Valid() bool {
	return k == Deposit || k == Withdrawal
}

// Transaction represents a single movement applied to the account.
// Amount is always stored as a positive magnitude; the sign comes from Kind.
type Transaction struct {
	ID           string          `json:"id"`            // unique identifier
	Date         time.Time       `json:"date"`          // date stamped by the caller
	Amount       int64           `json:"amount"`        // positive magnitude
	BalanceAfter int64           `json:"balance_after"` // account balance right after this movement
	Kind         TransactionKind `json:"kind"`
}

// SignedAmount returns the amount with the sign the movement has on the balance.
func (t Transaction) SignedAmount() int64 {
	if t.Kind == Withdrawal {
		return -t.Amount
	}
	return t.Amount
}
