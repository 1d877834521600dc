package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for a non-positive amount or an unset date.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientFunds matches every *InsufficientFundsError through errors.Is.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInconsistentHistory is returned by Load when stored transactions do not reconcile.
	ErrInconsistentHistory = errors.New("inconsistent transaction history")
)

// InsufficientFundsError carries the balance at the time of the rejected withdrawal
// and the amount that was requested.
type InsufficientFundsError struct {
	Balance   int64
	Requested int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: current balance: %d, requested: %d", e.Balance, e.Requested)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

func invalidAmount(amount int64) error {
	return fmt.Errorf("%w: amount must be positive, provided: %d", ErrInvalidArgument, amount)
}

func overflowAmount(amount int64) error {
	return fmt.Errorf("%w: amount would overflow balance, provided: %d", ErrInvalidArgument, amount)
}

var errDateNotSet = fmt.Errorf("%w: date must be set", ErrInvalidArgument)
