package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobrains/brains/internal/api"
	"github.com/gobrains/brains/internal/api/response"
	"github.com/gobrains/brains/internal/factory"
	"github.com/gobrains/brains/internal/model"
)

// testServer creates a test server with all dependencies
type testServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		SessionManager: app.SessionManager,
		AccountService: app.AccountService,
		TeamService:    app.TeamService,
	})

	return &testServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// registerAndLogin registers an account and returns its session token
func (ts *testServer) registerAndLogin(email, username string) string {
	ts.t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/register", map[string]string{
		"email":            email,
		"username":         username,
		"password":         "secret123",
		"confirm_password": "secret123",
	}, "")
	require.Equal(ts.t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/login", map[string]string{
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(ts.t, http.StatusOK, rr.Code)

	var resp response.Login
	require.NoError(ts.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(ts.t, resp.Token)
	return resp.Token
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/register", map[string]string{
		"email":            "alice@example.com",
		"username":         "alice",
		"password":         "secret123",
		"confirm_password": "secret123",
	}, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.ID)
	// The password hash never appears in responses
	assert.NotContains(t, rr.Body.String(), "password_hash")
}

func TestRegisterValidationFailure(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/register", map[string]string{
		"email":            "nope",
		"username":         "ab",
		"password":         "123",
		"confirm_password": "456",
	}, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "VALIDATION_FAILED")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin("alice@example.com", "alice")

	rr := ts.request(http.MethodPost, "/api/v1/register", map[string]string{
		"email":            "alice@example.com",
		"username":         "bob",
		"password":         "secret123",
		"confirm_password": "secret123",
	}, "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret123",
	}, "")

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")
}

func TestMeRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice@example.com", "alice")

	rr := ts.request(http.MethodGet, "/api/v1/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
}

func TestMeRejectsBadToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/me", nil, "sess_bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLeaderboardIsPublicAndOrdered(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin("alice@example.com", "alice")
	ts.registerAndLogin("bob@example.com", "bob")

	require.NoError(t, ts.app.Storage.AddUserAttempts(context.Background(), ts.userID("alice@example.com"), 9))
	require.NoError(t, ts.app.Storage.AddUserAttempts(context.Background(), ts.userID("bob@example.com"), 2))

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "bob", resp[0].Username)
	assert.Equal(t, "alice", resp[1].Username)
}

func TestUsersRequiresAdmin(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice@example.com", "alice")

	rr := ts.request(http.MethodGet, "/api/v1/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/users", nil, token)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "FORBIDDEN")
}

func TestUsersListsAccountsForAdmin(t *testing.T) {
	ts := newTestServer(t)
	ts.registerAndLogin("alice@example.com", "alice")
	require.NoError(t, ts.app.AccountService.EnsureAdmin(context.Background(), "admin@example.com", "hunter22"))

	rr := ts.request(http.MethodPost, "/api/v1/login", map[string]string{
		"email":    "admin@example.com",
		"password": "hunter22",
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var login response.Login
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))

	rr = ts.request(http.MethodGet, "/api/v1/users", nil, login.Token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp []response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}

func TestTeamLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice@example.com", "alice")

	// Create
	rr := ts.request(http.MethodPost, "/api/v1/teams", map[string]string{"name": "Red Team"}, token)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created response.Team
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "Red Team", created.Name)

	// Join
	rr = ts.request(http.MethodPost, "/api/v1/teams/join", map[string]string{"team_id": string(created.ID)}, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// Listing resolves members
	rr = ts.request(http.MethodGet, "/api/v1/teams", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var teams []response.Team
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &teams))
	require.Len(t, teams, 1)
	require.Len(t, teams[0].Members, 1)
	assert.Equal(t, "alice", teams[0].Members[0].Username)

	// Leave
	rr = ts.request(http.MethodPost, "/api/v1/teams/leave", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/teams", nil, "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &teams))
	assert.Empty(t, teams[0].Members)
}

func TestTeamActionsRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/teams", map[string]string{"name": "Red Team"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/teams/join", map[string]string{"team_id": "t1"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJoinUnknownTeam(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice@example.com", "alice")

	rr := ts.request(http.MethodPost, "/api/v1/teams/join", map[string]string{"team_id": "missing"}, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "TEAM_NOT_FOUND")
}

func TestCreateDuplicateTeam(t *testing.T) {
	ts := newTestServer(t)
	token := ts.registerAndLogin("alice@example.com", "alice")

	rr := ts.request(http.MethodPost, "/api/v1/teams", map[string]string{"name": "Red Team"}, token)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/teams", map[string]string{"name": "Red Team"}, token)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "TEAM_NAME_TAKEN")
}

// userID loads a user id by email through storage
func (ts *testServer) userID(email string) model.UserID {
	ts.t.Helper()
	user, err := ts.app.Storage.GetUserByEmail(context.Background(), email)
	require.NoError(ts.t, err)
	return user.ID
}
