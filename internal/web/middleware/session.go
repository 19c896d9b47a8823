package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gobrains/brains/internal/model"
	"github.com/gobrains/brains/internal/session"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
	userContextKey    contextKey = "user"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "session"

// GetSession retrieves the current session from the request context.
// The session middleware guarantees it is present on wrapped routes.
func GetSession(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionContextKey).(*session.Session)
	return sess
}

// Session returns middleware that loads the request's session, creating a
// fresh one when the cookie is missing, expired or references a session
// the store no longer has. A missing or corrupt session is never an
// error, it just means no game yet.
func Session(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := loadSession(r, manager)
			if sess == nil {
				created, err := manager.Create(r.Context())
				if err != nil {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				sess = created
				SetSessionCookie(w, sess.Token)
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func loadSession(r *http.Request, manager *session.Manager) *session.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	sess, err := manager.Get(r.Context(), cookie.Value)
	if err != nil {
		if !errors.Is(err, model.ErrSessionNotFound) {
			// Store trouble: fall through to a fresh session rather
			// than failing the request
			return nil
		}
		return nil
	}
	return sess
}

// SetSessionCookie writes the session cookie
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
