package web_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/gobrains/brains/internal/factory"
	"github.com/gobrains/brains/internal/services/account"
	"github.com/gobrains/brains/internal/web"
	"github.com/gobrains/brains/internal/web/view"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
	cookies *cookieJar
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := factory.NewTestApp()

	renderer, err := view.New()
	require.NoError(t, err)

	router := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		SessionManager: app.SessionManager,
		GameService:    app.GameService,
		AccountService: app.AccountService,
		TeamService:    app.TeamService,
		Renderer:       renderer,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
		cookies: newCookieJar(),
	}
}

// request makes an HTTP request and returns the response
func (ts *webTestServer) request(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	// Add cookies from jar
	ts.cookies.addTo(req)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	// Extract Set-Cookie headers into jar
	ts.cookies.extract(rr)

	return rr
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	return ts.request(http.MethodGet, path, nil)
}

// post makes a POST request with form data
func (ts *webTestServer) post(path string, form url.Values) *httptest.ResponseRecorder {
	return ts.request(http.MethodPost, path, form)
}

// register creates an account directly through the service
func (ts *webTestServer) register(email, username, password string) {
	ts.t.Helper()
	_, err := ts.app.AccountService.Register(context.Background(), account.RegisterInput{
		Email:           email,
		Username:        username,
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(ts.t, err)
}

// login authenticates through the login form, populating the cookie jar
func (ts *webTestServer) login(email, password string) {
	ts.t.Helper()
	rr := ts.post("/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(ts.t, http.StatusSeeOther, rr.Code)
	require.Equal(ts.t, "/", rr.Header().Get("Location"))
}

// queueSecret makes the next drawn secret equal to n
func (ts *webTestServer) queueSecret(n int) {
	ts.app.MockRandom.QueueIntn(n - 1)
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}

// cookieJar maintains cookies across requests (like a browser would)
type cookieJar struct {
	cookies map[string]*http.Cookie
}

func newCookieJar() *cookieJar {
	return &cookieJar{
		cookies: make(map[string]*http.Cookie),
	}
}

// addTo adds all cookies to the request
func (j *cookieJar) addTo(req *http.Request) {
	for _, cookie := range j.cookies {
		req.AddCookie(cookie)
	}
}

// extract extracts Set-Cookie headers from response
func (j *cookieJar) extract(rr *httptest.ResponseRecorder) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.MaxAge < 0 {
			// Cookie being deleted
			delete(j.cookies, cookie.Name)
		} else {
			j.cookies[cookie.Name] = cookie
		}
	}
}
