package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/georgemunganga/supermart-backend/internal/apperr"
	"github.com/georgemunganga/supermart-backend/internal/httpx"
	"github.com/georgemunganga/supermart-backend/internal/modules/user"
)

type ctxKey struct{}

// WithUser stores the acting user in ctx.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the user stored by the protect middleware.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*user.User)
	return u, ok && u != nil
}

// Middlewares groups the route guards handed to module routers.
type Middlewares struct {
	Protect func(http.Handler) http.Handler
	Admin   func(http.Handler) http.Handler
}

// NewMiddlewares builds the bearer-token guard backed by issuer and users.
func NewMiddlewares(issuer *Issuer, users user.Service) Middlewares {
	return Middlewares{Protect: Protect(issuer, users), Admin: RequireAdmin}
}

// Protect rejects requests without a valid bearer token and loads the
// token's user into the request context.
func Protect(issuer *Issuer, users user.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if !strings.HasPrefix(header, "Bearer ") || raw == "" {
				httpx.Error(w, r, apperr.Unauthorized("Not authorized, no token"))
				return
			}

			id, err := issuer.Parse(raw)
			if err != nil {
				httpx.Error(w, r, err)
				return
			}

			u, err := users.GetUser(r.Context(), id)
			if apperr.Is(err, apperr.KindNotFound) {
				httpx.Error(w, r, apperr.Unauthorized("Not authorized, token failed"))
				return
			}
			if err != nil {
				httpx.Error(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireAdmin must run after Protect.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok || !u.IsAdmin() {
			httpx.Error(w, r, apperr.Unauthorized("Not authorized as an admin"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
