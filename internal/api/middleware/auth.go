package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gobrains/brains/internal/api/apierr"
	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/services/account"
	"github.com/gobrains/brains/internal/session"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
	userContextKey    contextKey = "user"
)

// GetSession retrieves the session from the request context
func GetSession(r *http.Request) (*session.Session, bool) {
	sess, ok := r.Context().Value(sessionContextKey).(*session.Session)
	return sess, ok
}

// GetUser retrieves the authenticated user from the request context
func GetUser(r *http.Request) (*model.User, bool) {
	user, ok := r.Context().Value(userContextKey).(*model.User)
	return user, ok
}

// Auth resolves the session token and, when the session belongs to an
// account, the user behind it. Requests without a token pass through
// unauthenticated; RequireUser and RequireAdmin enforce presence.
func Auth(sessions *session.Manager, accounts *account.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sessions.Get(r.Context(), token)
			if err != nil {
				if errors.Is(err, model.ErrSessionNotFound) {
					next.ServeHTTP(w, r)
					return
				}
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			if sess.UserID != "" {
				user, err := accounts.GetUser(ctx, sess.UserID)
				if err == nil {
					ctx = context.WithValue(ctx, userContextKey, user)
				} else if !errors.Is(err, model.ErrUserNotFound) {
					apierr.WriteError(w, err)
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests without an authenticated user
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUser(r); !ok {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin rejects requests unless the authenticated user is an admin
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r)
			if !ok {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			if !user.IsAdmin() {
				apierr.WriteError(w, apierr.NewForbiddenError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken pulls the session token from the Authorization header,
// falling back to the session cookie shared with the web surface
func extractToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie("session"); err == nil {
		return cookie.Value
	}
	return ""
}
