package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sheikh-saqib/account-ledger/internal/ledger"
)

type errorResponse struct {
	Error     string `json:"error"`
	Balance   *int64 `json:"balance,omitempty"`
	Requested *int64 `json:"requested,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

// writeLedgerErr maps ledger errors to status codes: invalid argument is 400,
// insufficient funds is 409 with the balance and requested amount, anything else 500.
func writeLedgerErr(w http.ResponseWriter, err error) {
	var fundsErr *ledger.InsufficientFundsError
	switch {
	case errors.As(err, &fundsErr):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:     err.Error(),
			Balance:   &fundsErr.Balance,
			Requested: &fundsErr.Requested,
		})
	case errors.Is(err, ledger.ErrInvalidArgument):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}
