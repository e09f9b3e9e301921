package rest

import (
	"errors"
	"net/http"

	"lendingpool/core"
	"lendingpool/handler/auth"
	"lendingpool/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	pools core.PoolStore,
	transactions core.TransactionStore,
	ledgerz core.LedgerService,
	queryz core.LedgerService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/pools", poolsHandler(pools, queryz))
	router.Get("/pools/{asset}", poolHandler(queryz))
	router.Get("/positions/{user}", positionsHandler(pools, queryz))
	router.Get("/health/{user}", healthHandler(queryz))
	router.Get("/transactions/{user}", transactionsHandler(transactions))

	router.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired())
		r.Post("/actions/{action}", actionHandler(ledgerz))
	})

	return router
}
