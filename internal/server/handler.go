package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/account-ledger/internal/account"
	"github.com/sheikh-saqib/account-ledger/internal/models"
)

// dateLayout is the format dates are accepted in on the API.
const dateLayout = "2006-01-02"

// Server serves the ledger API over HTTP on top of an account.Service.
type Server struct {
	svc    *account.Service
	logger *zap.Logger
}

// NewServer creates a Server; a nil logger discards log output.
func NewServer(svc *account.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{svc: svc, logger: logger}
}

type movementRequest struct {
	Amount int64  `json:"amount"`
	Date   string `json:"date,omitempty"` // optional, defaults to the pending transaction date
}

type dateRequest struct {
	Date string `json:"date"`
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as YYYY-MM-DD: %q", s)
	}
	return d, nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) setTransactionDate(w http.ResponseWriter, r *http.Request) {
	var req dateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.svc.SetTransactionDate(date); err != nil {
		writeLedgerErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	s.movement(w, r, s.svc.Deposit)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	s.movement(w, r, s.svc.Withdraw)
}

func (s *Server) movement(w http.ResponseWriter, r *http.Request, apply func(time.Time, int64) (models.Transaction, error)) {
	var req movementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := apply(date, req.Amount)
	if err != nil {
		writeLedgerErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int64{"balance": s.svc.Balance()})
}

func (s *Server) transactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Transactions())
}

func (s *Server) statement(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(s.svc.Statement())); err != nil {
		s.logger.Warn("failed to write statement", zap.Error(err))
	}
}
