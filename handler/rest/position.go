package rest

import (
	"errors"
	"net/http"

	"lendingpool/core"
	"lendingpool/handler/param"
	"lendingpool/handler/render"
	"lendingpool/handler/views"

	"github.com/go-chi/chi"
)

func positionsHandler(pools core.PoolStore, ledgerz core.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userID := chi.URLParam(r, "user")

		list, e := pools.List(ctx)
		if e != nil {
			render.Error(w, e)
			return
		}

		account := views.Account{
			UserID:    userID,
			Positions: make([]*core.PositionView, 0, len(list)),
		}

		for _, p := range list {
			pos, e := ledgerz.Position(ctx, userID, p.AssetID)
			if errors.Is(e, core.ErrPositionNotFound) {
				continue
			} else if e != nil {
				render.Error(w, e)
				return
			}

			account.Positions = append(account.Positions, pos)
		}

		if account.Health, e = ledgerz.Health(ctx, userID); e != nil {
			render.Error(w, e)
			return
		}

		render.JSON(w, account)
	}
}

func healthHandler(ledgerz core.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, e := ledgerz.Health(r.Context(), chi.URLParam(r, "user"))
		if e != nil {
			render.Error(w, e)
			return
		}

		render.JSON(w, views.HealthView(h))
	}
}

// response user transactions
func transactionsHandler(transactions core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var params struct {
			Limit int `json:"limit"`
		}

		if e := param.Binding(r, &params); e != nil {
			render.BadRequest(w, e)
			return
		}

		limit := params.Limit
		if limit <= 0 || limit > 500 {
			limit = 500
		}

		list, e := transactions.ListByUser(ctx, chi.URLParam(r, "user"), limit)
		if e != nil {
			render.Error(w, e)
			return
		}

		render.JSON(w, list)
	}
}
