package hc

import (
	"net/http"
	"time"

	"lendingpool/core"
	"lendingpool/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle handle hc request
func Handle(ver string, pools core.PoolStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, pools))
	return r
}

func handle(version string, pools core.PoolStore) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := pools.List(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		uptime := time.Since(b).Truncate(time.Millisecond)
		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
			"pools":   len(list),
		})
	}
}
