package handler

import (
	"errors"
	"net/http"

	"lendingpool/core"
	"lendingpool/handler/auth"
	"lendingpool/handler/render"
	"lendingpool/handler/rest"

	"github.com/go-chi/chi"
)

// Server server
type Server struct {
	pools        core.PoolStore
	transactions core.TransactionStore
	ledgerz      core.LedgerService
	queryz       core.LedgerService
}

// New new server function, queryz serves the read endpoints
func New(
	pools core.PoolStore,
	transactions core.TransactionStore,
	ledgerz core.LedgerService,
	queryz core.LedgerService,
) Server {
	return Server{
		pools:        pools,
		transactions: transactions,
		ledgerz:      ledgerz,
		queryz:       queryz,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(auth.HandleAuthentication())
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	r.Mount("/", rest.Handle(s.pools, s.transactions, s.ledgerz, s.queryz))
	return r
}
