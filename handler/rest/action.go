package rest

import (
	"context"
	"errors"
	"net/http"

	"lendingpool/core"
	"lendingpool/handler/param"
	"lendingpool/handler/render"
	"lendingpool/handler/request"

	"github.com/go-chi/chi"
)

type actionFunc func(ctx context.Context, req *core.LiquidateRequest) (*core.Transaction, error)

func single(f func(ctx context.Context, req *core.Request) (*core.Transaction, error)) actionFunc {
	return func(ctx context.Context, req *core.LiquidateRequest) (*core.Transaction, error) {
		return f(ctx, &req.Request)
	}
}

func actionHandler(ledgerz core.LedgerService) http.HandlerFunc {
	actions := map[string]actionFunc{
		"deposit":  single(ledgerz.Deposit),
		"withdraw": single(ledgerz.Withdraw),
		"redeem":   single(ledgerz.Redeem),
		"borrow":   single(ledgerz.Borrow),
		"repay":    single(ledgerz.Repay),
		"liquidate": func(ctx context.Context, req *core.LiquidateRequest) (*core.Transaction, error) {
			return ledgerz.Liquidate(ctx, req)
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		name := chi.URLParam(r, "action")
		do, ok := actions[name]
		if !ok {
			render.NotFoundRequest(w, errors.New("unknown action "+name))
			return
		}

		var req core.LiquidateRequest
		if e := param.Decode(r, &req); e != nil {
			render.BadRequest(w, e)
			return
		}

		req.UserID, _ = request.NewContext(ctx).GetUser()

		var e error
		if name == "liquidate" {
			e = param.Validate(&req)
		} else {
			e = param.Validate(&req.Request)
		}

		if e != nil {
			render.BadRequest(w, e)
			return
		}

		tx, e := do(ctx, &req)
		if e != nil {
			render.Error(w, e)
			return
		}

		render.JSON(w, tx)
	}
}
