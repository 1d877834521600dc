package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	interfaces "github.com/sheikh-saqib/account-ledger/internal/interfaces"
	"github.com/sheikh-saqib/account-ledger/internal/models"
)

// ErrDuplicateTransaction is returned when a transaction with the same ID was already saved.
var ErrDuplicateTransaction = errors.New("transaction already saved")

const uniqueViolation = pq.ErrorCode("23505")

// Schema creates the journal table. seq keeps the order the ledger applied transactions in,
// which is not necessarily the order of tx_date.
const Schema = `CREATE TABLE IF NOT EXISTS ledger_transactions (
	seq           BIGSERIAL PRIMARY KEY,
	id            UUID NOT NULL UNIQUE,
	tx_date       DATE NOT NULL,
	amount        NUMERIC NOT NULL CHECK (amount > 0),
	balance_after NUMERIC NOT NULL,
	kind          TEXT NOT NULL
)`

type PostgresTransactionStore struct {
	db *sql.DB
}

func NewPostgresTransactionStore(db *sql.DB) *PostgresTransactionStore {
	return &PostgresTransactionStore{
		db: db,
	}
}

// Open connects to dsn with the lib/pq driver and checks the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func (p *PostgresTransactionStore) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, Schema)
	return err
}

func (p *PostgresTransactionStore) SaveTransaction(tx models.Transaction) error {
	const query = `INSERT INTO ledger_transactions (id, tx_date, amount, balance_after, kind)
	VALUES ($1,$2,$3,$4,$5)`

	_, err := p.db.Exec(query,
		tx.ID,
		tx.Date,
		decimal.NewFromInt(tx.Amount),
		decimal.NewFromInt(tx.BalanceAfter),
		string(tx.Kind),
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicateTransaction, tx.ID)
	}
	return err
}

func (p *PostgresTransactionStore) GetTransactions() ([]models.Transaction, error) {
	const query = `SELECT id, tx_date, amount, balance_after, kind FROM ledger_transactions
	ORDER BY seq`

	rows, err := p.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var (
			tx           models.Transaction
			amount       decimal.Decimal
			balanceAfter decimal.Decimal
			kind         string
		)
		if err := rows.Scan(&tx.ID, &tx.Date, &amount, &balanceAfter, &kind); err != nil {
			return nil, err
		}

		// amounts are stored in whole units
		if !amount.IsInteger() || !balanceAfter.IsInteger() {
			return nil, fmt.Errorf("transaction %s: fractional amount", tx.ID)
		}
		tx.Amount = amount.IntPart()
		tx.BalanceAfter = balanceAfter.IntPart()
		tx.Kind = models.TransactionKind(kind)

		transactions = append(transactions, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

var _ interfaces.TransactionStore = (*PostgresTransactionStore)(nil)
