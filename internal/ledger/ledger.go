package ledger

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	interfaces "github.com/sheikh-saqib/account-ledger/internal/interfaces"
	"github.com/sheikh-saqib/account-ledger/internal/models"
)

// Ledger records the deposits and withdrawals of a single account.
// The balance is always the signed sum of the recorded transactions.
// A single mutex serializes every method, so a Ledger is safe for concurrent use.
type Ledger struct {
	mu           sync.Mutex
	store        interfaces.TransactionStore // optional journal, written before the in-memory state
	transactions []models.Transaction        // append-only, in the order they were applied
	balance      int64
	pendingDate  time.Time // stamped on the next Deposit/Withdraw
	now          func() time.Time
}

// Option configures a Ledger at construction time.
type Option func(*Ledger)

// WithClock overrides the source of the current time used for the default transaction date.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithStore journals every accepted transaction to store. A transaction the store
// refuses is not applied.
func WithStore(store interfaces.TransactionStore) Option {
	return func(l *Ledger) {
		l.store = store
	}
}

// NewLedger creates an empty ledger with a zero balance. Until SetTransactionDate is
// called, transactions are stamped with the creation time.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		transactions: make([]models.Transaction, 0, 16),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.pendingDate = l.now()
	return l
}

// Load rebuilds a ledger from the history kept in store and keeps journaling to it.
// The balance is recomputed by replaying the history; a history that does not
// reconcile is rejected with ErrInconsistentHistory.
func Load(store interfaces.TransactionStore, opts ...Option) (*Ledger, error) {
	history, err := store.GetTransactions()
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	l := NewLedger(append(opts, WithStore(store))...)

	for i, tx := range history {
		if err := l.replay(tx); err != nil {
			return nil, fmt.Errorf("%w: transaction %d (%s): %v", ErrInconsistentHistory, i, tx.ID, err)
		}
	}
	return l, nil
}

func (l *Ledger) replay(tx models.Transaction) error {
	if !tx.Kind.Valid() {
		return fmt.Errorf("unknown kind %q", tx.Kind)
	}
	if tx.Amount <= 0 {
		return fmt.Errorf("non-positive amount %d", tx.Amount)
	}

	if tx.Kind == models.Deposit && tx.Amount > math.MaxInt64-l.balance {
		return fmt.Errorf("deposit of %d overflows balance %d", tx.Amount, l.balance)
	}
	balance := l.balance + tx.SignedAmount()
	if balance < 0 {
		return fmt.Errorf("balance would become %d", balance)
	}
	if balance != tx.BalanceAfter {
		return fmt.Errorf("balance after is %d, replayed balance is %d", tx.BalanceAfter, balance)
	}

	l.balance = balance
	l.transactions = append(l.transactions, tx)
	return nil
}

// SetTransactionDate sets the date stamped on subsequent Deposit and Withdraw calls.
// Transactions already recorded keep their dates.
func (l *Ledger) SetTransactionDate(date time.Time) error {
	if date.IsZero() {
		return errDateNotSet
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pendingDate = date
	return nil
}

// Deposit adds amount to the balance, dated with the pending transaction date.
func (l *Ledger) Deposit(amount int64) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.apply(models.Deposit, l.pendingDate, amount)
}

// DepositOn adds amount to the balance, dated with date. The pending date is left untouched.
func (l *Ledger) DepositOn(date time.Time, amount int64) (models.Transaction, error) {
	if date.IsZero() {
		return models.Transaction{}, errDateNotSet
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.apply(models.Deposit, date, amount)
}

// Withdraw removes amount from the balance, dated with the pending transaction date.
// It fails with an *InsufficientFundsError when the balance does not cover amount.
func (l *Ledger) Withdraw(amount int64) (models.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.apply(models.Withdrawal, l.pendingDate, amount)
}

// WithdrawOn removes amount from the balance, dated with date.
func (l *Ledger) WithdrawOn(date time.Time, amount int64) (models.Transaction, error) {
	if date.IsZero() {
		return models.Transaction{}, errDateNotSet
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.apply(models.Withdrawal, date, amount)
}

// apply validates and records one movement. Callers must hold l.mu.
// Nothing is changed unless every check and the journal write succeed.
func (l *Ledger) apply(kind models.TransactionKind, date time.Time, amount int64) (models.Transaction, error) {
	if amount <= 0 {
		return models.Transaction{}, invalidAmount(amount)
	}

	balance := l.balance
	switch kind {
	case models.Deposit:
		if amount > math.MaxInt64-l.balance {
			return models.Transaction{}, overflowAmount(amount)
		}
		balance += amount
	case models.Withdrawal:
		if l.balance < amount {
			return models.Transaction{}, &InsufficientFundsError{Balance: l.balance, Requested: amount}
		}
		balance -= amount
	}

	tx := models.Transaction{
		ID:           uuid.NewString(),
		Date:         date,
		Amount:       amount,
		BalanceAfter: balance,
		Kind:         kind,
	}

	if l.store != nil {
		if err := l.store.SaveTransaction(tx); err != nil {
			return models.Transaction{}, fmt.Errorf("save transaction: %w", err)
		}
	}

	l.balance = balance
	l.transactions = append(l.transactions, tx)
	return tx, nil
}

// GetBalance returns the current balance.
func (l *Ledger) GetBalance() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balance
}

// GetTransactions returns a copy of the transactions in the order they were applied.
func (l *Ledger) GetTransactions() []models.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	copied := make([]models.Transaction, len(l.transactions))
	copy(copied, l.transactions)
	return copied
}
