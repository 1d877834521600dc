package account

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sheikh-saqib/account-ledger/internal/ledger"
	"github.com/sheikh-saqib/account-ledger/internal/models"
	"github.com/sheikh-saqib/account-ledger/internal/models/events"
)

type published struct {
	topic string
	event any
}

type fakePublisher struct {
	sent []published
	err  error
}

func (f *fakePublisher) Publish(topic string, event any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{topic: topic, event: event})
	return nil
}

func newTestService(t *testing.T, pub *fakePublisher) (*Service, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewService(ledger.NewLedger(), nil, "ledger.events", zap.New(core))
	// assigned only when set, so a nil *fakePublisher never becomes a non-nil interface
	if pub != nil {
		svc.publisher = pub
	}
	return svc, logs
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestReferenceScenario(t *testing.T) {
	pub := &fakePublisher{}
	svc, _ := newTestService(t, pub)

	require.NoError(t, svc.SetTransactionDate(date(2012, time.January, 10)))
	_, err := svc.Deposit(time.Time{}, 1000)
	require.NoError(t, err)
	_, err = svc.Deposit(date(2012, time.January, 13), 2000)
	require.NoError(t, err)
	_, err = svc.Withdraw(date(2012, time.January, 14), 500)
	require.NoError(t, err)

	assert.Equal(t, int64(2500), svc.Balance())
	assert.Len(t, svc.Transactions(), 3)
	assert.Equal(t, "Date || Amount || Balance\n"+
		"14/01/2012 || -500 || 2500\n"+
		"13/01/2012 || 2000 || 3000\n"+
		"10/01/2012 || 1000 || 1000\n", svc.Statement())

	require.Len(t, pub.sent, 3)
	assert.Equal(t, "ledger.events", pub.sent[2].topic)
	event, ok := pub.sent[2].event.(events.TransactionRecorded)
	require.True(t, ok)
	assert.Equal(t, models.Withdrawal, event.Kind)
	assert.Equal(t, "-500", event.Amount.String())
	assert.Equal(t, "2500", event.BalanceAfter.String())
}

func TestRejectionsAreLoggedAndReturned(t *testing.T) {
	pub := &fakePublisher{}
	svc, logs := newTestService(t, pub)

	_, err := svc.Deposit(time.Time{}, 0)
	require.ErrorIs(t, err, ledger.ErrInvalidArgument)

	_, err = svc.Withdraw(time.Time{}, 50)
	require.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	err = svc.SetTransactionDate(time.Time{})
	require.ErrorIs(t, err, ledger.ErrInvalidArgument)

	assert.Empty(t, pub.sent)
	assert.Equal(t, int64(0), svc.Balance())
	assert.Equal(t, 2, logs.FilterMessage("transaction rejected").Len())
	assert.Equal(t, 1, logs.FilterMessage("transaction date rejected").Len())
	for _, entry := range logs.FilterMessage("transaction rejected").All() {
		assert.Equal(t, zapcore.WarnLevel, entry.Level)
	}
}

func TestPublishFailureDoesNotFailDeposit(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc, logs := newTestService(t, pub)

	tx, err := svc.Deposit(date(2024, time.February, 1), 100)

	require.NoError(t, err)
	assert.Equal(t, int64(100), tx.BalanceAfter)
	assert.Equal(t, int64(100), svc.Balance())
	failures := logs.FilterMessage("failed to publish transaction event").All()
	require.Len(t, failures, 1)
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	assert.Equal(t, tx.ID, failures[0].ContextMap()["transaction_id"])
}

func TestWithoutPublisher(t *testing.T) {
	svc, logs := newTestService(t, nil)

	_, err := svc.Deposit(time.Time{}, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("transaction recorded").Len())
}

func TestNilLogger(t *testing.T) {
	svc := NewService(ledger.NewLedger(), nil, "", nil)
	_, err := svc.Deposit(time.Time{}, 10)
	require.NoError(t, err)
}

func TestConcurrentDepositsPublishInLedgerOrder(t *testing.T) {
	pub := &fakePublisher{}
	svc, _ := newTestService(t, pub)
	const deposits = 50

	var wg sync.WaitGroup
	for i := 0; i < deposits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Deposit(time.Time{}, 1)
		}()
	}
	wg.Wait()

	require.Len(t, pub.sent, deposits)
	txs := svc.Transactions()
	for i, sent := range pub.sent {
		event, ok := sent.event.(events.TransactionRecorded)
		require.True(t, ok)
		assert.Equal(t, events.AccountKey, event.Key())
		assert.Equal(t, txs[i].ID, event.TransactionID, "event %d follows ledger order", i)
		assert.Equal(t, int64(i+1), event.BalanceAfter.IntPart())
	}
}
