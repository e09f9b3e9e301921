package auth

import (
	"errors"
	"net/http"
	"strings"

	"lendingpool/handler/render"
	"lendingpool/handler/request"

	"github.com/fox-one/pkg/logger"
)

// UserHeader set by the gateway after authenticating the caller
const UserHeader = "X-User-Id"

// HandleAuthentication puts the gateway supplied user id into the context
func HandleAuthentication() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID := strings.TrimSpace(r.Header.Get(UserHeader))
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromContext(ctx).WithField("user", userID)
			ctx = logger.WithContext(ctx, log)
			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithUser(userID)))
		}

		return http.HandlerFunc(fn)
	}
}

// LoginRequired rejects requests without a user
func LoginRequired() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if _, ok := request.NewContext(r.Context()).GetUser(); !ok {
				render.Error401(w, errors.New("missing "+UserHeader))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
