// Package account drives a ledger on behalf of a caller: it logs every accepted or
// rejected movement and announces accepted ones as events.
package account

import (
	"sync"
	"time"

	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/account-ledger/internal/interfaces"
	"github.com/sheikh-saqib/account-ledger/internal/ledger"
	"github.com/sheikh-saqib/account-ledger/internal/models"
	"github.com/sheikh-saqib/account-ledger/internal/models/events"
)

type Service struct {
	mu        sync.Mutex // serializes a mutation with the publication of its event
	ledger    *ledger.Ledger
	publisher interfaces.EventPublisher // nil disables publishing
	topic     string
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(l *ledger.Ledger, publisher interfaces.EventPublisher, topic string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		ledger:    l,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) SetTransactionDate(date time.Time) error {
	if err := s.ledger.SetTransactionDate(date); err != nil {
		s.logger.Warn("transaction date rejected", zap.Error(err))
		return err
	}
	s.logger.Debug("transaction date set", zap.Time("date", date))
	return nil
}

// Deposit records a deposit. A zero date uses the ledger's pending transaction date.
func (s *Service) Deposit(date time.Time, amount int64) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		tx  models.Transaction
		err error
	)
	if date.IsZero() {
		tx, err = s.ledger.Deposit(amount)
	} else {
		tx, err = s.ledger.DepositOn(date, amount)
	}
	return s.record(models.Deposit, amount, tx, err)
}

// Withdraw records a withdrawal. A zero date uses the ledger's pending transaction date.
func (s *Service) Withdraw(date time.Time, amount int64) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		tx  models.Transaction
		err error
	)
	if date.IsZero() {
		tx, err = s.ledger.Withdraw(amount)
	} else {
		tx, err = s.ledger.WithdrawOn(date, amount)
	}
	return s.record(models.Withdrawal, amount, tx, err)
}

func (s *Service) record(kind models.TransactionKind, amount int64, tx models.Transaction, err error) (models.Transaction, error) {
	if err != nil {
		s.logger.Warn("transaction rejected",
			zap.String("kind", string(kind)),
			zap.Int64("amount", amount),
			zap.Error(err),
		)
		return models.Transaction{}, err
	}

	s.logger.Info("transaction recorded",
		zap.String("transaction_id", tx.ID),
		zap.String("kind", string(tx.Kind)),
		zap.Int64("amount", tx.Amount),
		zap.Int64("balance_after", tx.BalanceAfter),
	)

	if s.publisher != nil {
		// the transaction is already part of the ledger; a lost event is only logged
		if perr := s.publisher.Publish(s.topic, events.NewTransactionRecorded(tx, s.now())); perr != nil {
			s.logger.Error("failed to publish transaction event",
				zap.String("transaction_id", tx.ID),
				zap.String("topic", s.topic),
				zap.Error(perr),
			)
		}
	}
	return tx, nil
}

func (s *Service) Balance() int64 {
	return s.ledger.GetBalance()
}

func (s *Service) Transactions() []models.Transaction {
	return s.ledger.GetTransactions()
}

func (s *Service) Statement() string {
	return s.ledger.RenderStatement()
}
