// Command statement records the reference deposits and withdrawal on a fresh
// ledger and prints the resulting statement.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/account-ledger/internal/ledger"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(os.Stdout, ledger.NewLedger()); err != nil {
		logger.Error("unexpected error", zap.Error(err))
		os.Exit(1)
	}
}

func run(out io.Writer, l *ledger.Ledger) error {
	fmt.Fprintln(out, "=== Banking Service ===")

	steps := []struct {
		date     time.Time
		amount   int64
		withdraw bool
	}{
		{date: time.Date(2012, time.January, 10, 0, 0, 0, 0, time.UTC), amount: 1000},
		{date: time.Date(2012, time.January, 13, 0, 0, 0, 0, time.UTC), amount: 2000},
		{date: time.Date(2012, time.January, 14, 0, 0, 0, 0, time.UTC), amount: 500, withdraw: true},
	}

	for _, step := range steps {
		if err := l.SetTransactionDate(step.date); err != nil {
			return err
		}
		if step.withdraw {
			if _, err := l.Withdraw(step.amount); err != nil {
				return err
			}
			fmt.Fprintf(out, "Withdrew %d\n", step.amount)
			continue
		}
		if _, err := l.Deposit(step.amount); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deposited %d\n", step.amount)
	}

	fmt.Fprintln(out, "\n=== Bank Statement ===")
	return l.PrintStatement(out)
}
