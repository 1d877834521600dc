package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds request bodies; every request on the API is a small JSON object.
const maxBodyBytes = 64 << 10

// Router registers every endpoint of the ledger API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Get("/health", s.health)

	r.Put("/transaction-date", s.setTransactionDate)
	r.Post("/deposits", s.deposit)
	r.Post("/withdrawals", s.withdraw)

	r.Get("/balance", s.balance)
	r.Get("/transactions", s.transactions)
	r.Get("/statement", s.statement)

	return r
}
