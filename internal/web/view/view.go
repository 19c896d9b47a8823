// Package view renders the HTML pages from templates embedded in the
// binary. Each page template is parsed against the shared layout once at
// startup, so a broken template fails fast rather than at request time.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/gobrains/brains/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names accepted by Render
const (
	PageGame        = "game"
	PageLogin       = "login"
	PageRegister    = "register"
	PageUsers       = "users"
	PageLeaderboard = "leaderboard"
	PageTeams       = "teams"
)

var pageFiles = map[string]string{
	PageGame:        "game.html",
	PageLogin:       "login.html",
	PageRegister:    "register.html",
	PageUsers:       "users.html",
	PageLeaderboard: "leaderboard.html",
	PageTeams:       "teams.html",
}

// Renderer holds the parsed page templates
type Renderer struct {
	pages map[string]*template.Template
}

var funcMap = template.FuncMap{
	"add1": func(i int) int { return i + 1 },
}

// New parses all embedded templates
func New() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		tmpl, err := template.New(file).Funcs(funcMap).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+file)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", file, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page to w
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// FlashMessage is a one-shot notice carried across a redirect
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData is the data every page shares
type PageData struct {
	Title string
	User  *model.User // authenticated principal, nil when anonymous
	Flash *FlashMessage
}

// FormError is one user-facing form failure message
type FormError struct {
	Msg string
}

// GamePageData is the view model for the guess page
type GamePageData struct {
	PageData
	Message      string
	Win          bool
	Attempts     int
	SecretNumber int
}

// LoginPageData is the view model for the login page
type LoginPageData struct {
	PageData
	Errors []FormError
	Email  string
}

// RegisterPageData is the view model for the registration page
type RegisterPageData struct {
	PageData
	Errors   []FormError
	Email    string
	Username string
}

// UserListPageData is the view model for the admin listing and leaderboard
type UserListPageData struct {
	PageData
	Users []*model.User
}

// TeamEntry is one team with its members resolved for display
type TeamEntry struct {
	ID      model.TeamID
	Name    string
	Score   int
	Members []*model.User
}

// TeamsPageData is the view model for the teams page
type TeamsPageData struct {
	PageData
	Teams []TeamEntry
}
