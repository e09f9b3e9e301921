package rest

import (
	"net/http"

	"lendingpool/core"
	"lendingpool/handler/render"
	"lendingpool/handler/views"

	"github.com/go-chi/chi"
)

func poolsHandler(pools core.PoolStore, ledgerz core.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		list, e := pools.List(ctx)
		if e != nil {
			render.Error(w, e)
			return
		}

		items := make([]views.Pool, 0, len(list))
		for _, p := range list {
			pool, e := ledgerz.Pool(ctx, p.AssetID)
			if e != nil {
				render.Error(w, e)
				return
			}

			items = append(items, views.PoolView(pool))
		}

		render.JSON(w, items)
	}
}

func poolHandler(ledgerz core.LedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pool, e := ledgerz.Pool(r.Context(), chi.URLParam(r, "asset"))
		if e != nil {
			render.Error(w, e)
			return
		}

		render.JSON(w, views.PoolView(pool))
	}
}
