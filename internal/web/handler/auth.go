package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gobrains/brains/internal/services/account"
	"github.com/gobrains/brains/internal/session"
	"github.com/gobrains/brains/internal/web/middleware"
	"github.com/gobrains/brains/internal/web/view"
)

const (
	msgBadCredentials = "Email or password incorrect."
	msgLoginFailed    = "An error occurred while logging in."
	msgRegisterFailed = "An error occurred while creating your account."
	msgAccountCreated = "Account created, you can log in now."
)

// AuthHandler handles login, logout and registration
type AuthHandler struct {
	accounts *account.Service
	sessions *session.Manager
	renderer *view.Renderer
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts *account.Service, sessions *session.Manager, renderer *view.Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		renderer: renderer,
		logger:   logger,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, nil, "")
}

// Login handles the login form. A failed lookup and a failed password
// check render the same message, so the form never reveals which emails
// are registered.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, []view.FormError{{Msg: msgLoginFailed}}, "")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.accounts.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			h.renderLogin(w, r, []view.FormError{{Msg: msgBadCredentials}}, email)
			return
		}
		h.logger.Error("login failed", slog.String("error", err.Error()))
		h.renderLogin(w, r, []view.FormError{{Msg: msgLoginFailed}}, email)
		return
	}

	sess := middleware.GetSession(r.Context())
	sess.UserID = user.ID
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to save session", slog.String("error", err.Error()))
		h.renderLogin(w, r, []view.FormError{{Msg: msgLoginFailed}}, email)
		return
	}

	middleware.SetFlash(w, "success", "Welcome back, "+user.Username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and clears the cookie
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetSession(r.Context())
	if err := h.sessions.Destroy(r.Context(), sess.Token); err != nil {
		h.logger.Error("failed to destroy session", slog.String("error", err.Error()))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.renderRegister(w, r, nil, "", "")
}

// Register handles the registration form
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, r, []view.FormError{{Msg: msgRegisterFailed}}, "", "")
		return
	}

	in := account.RegisterInput{
		Email:           r.FormValue("email"),
		Username:        r.FormValue("username"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirmPassword"),
	}

	_, err := h.accounts.Register(r.Context(), in)
	if err != nil {
		var verrs account.ValidationErrors
		if errors.As(err, &verrs) {
			formErrs := make([]view.FormError, len(verrs))
			for i, fe := range verrs {
				formErrs[i] = view.FormError{Msg: fe.Msg}
			}
			h.renderRegister(w, r, formErrs, in.Email, in.Username)
			return
		}

		h.logger.Error("registration failed", slog.String("error", err.Error()))
		h.renderRegister(w, r, []view.FormError{{Msg: msgRegisterFailed}}, in.Email, in.Username)
		return
	}

	middleware.SetFlash(w, "success", msgAccountCreated)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, formErrs []view.FormError, email string) {
	data := view.LoginPageData{
		PageData: pageData(r, "Log in"),
		Errors:   formErrs,
		Email:    email,
	}
	render(w, r, h.renderer, h.logger, view.PageLogin, data)
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, formErrs []view.FormError, email, username string) {
	data := view.RegisterPageData{
		PageData: pageData(r, "Sign up"),
		Errors:   formErrs,
		Email:    email,
		Username: username,
	}
	render(w, r, h.renderer, h.logger, view.PageRegister, data)
}
