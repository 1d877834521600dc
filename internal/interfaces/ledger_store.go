package interfaces

import (
	"github.com/sheikh-saqib/account-ledger/internal/models"
)

// TransactionStore journals the transactions of the account in the order they were applied.
type TransactionStore interface {
	SaveTransaction(tx models.Transaction) error
	GetTransactions() ([]models.Transaction, error)
}
