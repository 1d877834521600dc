package memory

import (
	"sync"

	interfaces "github.com/sheikh-saqib/account-ledger/internal/interfaces"
	"github.com/sheikh-saqib/account-ledger/internal/models"
)

// MemoryTransactionStore is an in-memory implementation of interfaces.TransactionStore.
// It keeps transactions in a slice, in the order they were saved, and is safe for concurrent use.
type MemoryTransactionStore struct {
	mu           sync.Mutex           // protects transactions
	transactions []models.Transaction // every saved transaction, oldest first
}

func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{
		transactions: make([]models.Transaction, 0),
	}
}

// SaveTransaction appends the transaction. It always succeeds in memory.
func (m *MemoryTransactionStore) SaveTransaction(tx models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.transactions = append(m.transactions, tx)
	return nil
}

// GetTransactions returns a copy so callers can't modify the stored history.
func (m *MemoryTransactionStore) GetTransactions() ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.Transaction, len(m.transactions))
	copy(copied, m.transactions)
	return copied, nil
}

// Compile-time check: ensure MemoryTransactionStore implements TransactionStore
var _ interfaces.TransactionStore = (*MemoryTransactionStore)(nil)
