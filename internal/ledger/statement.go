package ledger

import (
	"fmt"
	"io"
	"strings"

	"github.com/sheikh-saqib/account-ledger/internal/models"
)

const (
	StatementHeader = "Date || Amount || Balance"

	statementDateLayout = "02/01/2006" // DD/MM/YYYY
)

// FormatTransaction renders one statement line, e.g. "14/01/2012 || -500 || 2500".
func FormatTransaction(tx models.Transaction) string {
	sign := ""
	if tx.Kind == models.Withdrawal {
		sign = "-"
	}
	return fmt.Sprintf("%s || %s%d || %d", tx.Date.Format(statementDateLayout), sign, tx.Amount, tx.BalanceAfter)
}

// RenderStatement returns the header followed by one line per transaction, most
// recently applied first. Order follows application, not the transaction dates.
func (l *Ledger) RenderStatement() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b strings.Builder
	b.WriteString(StatementHeader)
	b.WriteByte('\n')
	for i := len(l.transactions) - 1; i >= 0; i-- {
		b.WriteString(FormatTransaction(l.transactions[i]))
		b.WriteByte('\n')
	}
	return b.String()
}

// PrintStatement writes the statement to w.
func (l *Ledger) PrintStatement(w io.Writer) error {
	_, err := io.WriteString(w, l.RenderStatement())
	return err
}
