package middleware

import (
	"context"
	"net/http"

	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/services/account"
)

// GetUser retrieves the authenticated principal from the request context.
// Returns nil if the session is anonymous.
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// Principal returns middleware that resolves the session's user reference
// to a fresh User record. The record is re-read per request so role and
// attempt-total changes take effect without re-login.
func Principal(accounts *account.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var user *model.User
			if sess := GetSession(r.Context()); sess != nil && sess.Authenticated() {
				if u, err := accounts.GetUser(r.Context(), sess.UserID); err == nil {
					user = u
				}
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser returns middleware that redirects anonymous requests to the
// login page
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetUser(r.Context()) == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns middleware that rejects non-admin principals with
// 403 before the handler body runs, so admin routes never touch the store
// on behalf of an unauthorized caller
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !GetUser(r.Context()).IsAdmin() {
				http.Error(w, "Access denied", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
