package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/client/client"
	"github.com/dmitrijs2005/adminapi/internal/client/config"
	"github.com/dmitrijs2005/adminapi/internal/client/models"
	"github.com/dmitrijs2005/adminapi/internal/client/session"
	"github.com/dmitrijs2005/adminapi/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

// apiServer is a tiny admin API: login hands out "tok", every other route
// requires it.
type apiServer struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	srv    *httptest.Server
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()
	s := &apiServer{routes: map[string]http.HandlerFunc{}}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		h, ok := s.routes[r.Method+" "+r.URL.Path]
		s.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(s.srv.Close)

	s.ok("POST /auth/login", models.LoginResponse{
		Token:        "tok",
		RefreshToken: "ref",
		ExpiresIn:    3600,
		UserInfo:     session.UserInfo{UserID: "1", Username: "admin", Roles: []string{"admin"}},
	})
	return s
}

func (s *apiServer) handle(route string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[route] = h
}

func (s *apiServer) ok(route string, data any) {
	s.handle(route, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200, "data": data, "message": "ok"})
	})
}

func (s *apiServer) status(route string, status int) {
	s.handle(route, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

func stubPrompts(t *testing.T, username, password string) {
	t.Helper()
	origText, origPass := getSimpleText, getPassword
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPass })

	getSimpleText = func(r *bufio.Reader, prompt string, w io.Writer) (string, error) {
		return username, nil
	}
	getPassword = func(r *bufio.Reader, w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

func newTestApp(t *testing.T, s *apiServer, in string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	a := newApp(client.NewHTTPTransport(s.srv.URL, time.Second), session.NewMemoryStore(), strings.NewReader(in), &out, logging.Nop())
	t.Cleanup(a.Close)
	return a, &out
}

func loggedIn(t *testing.T, s *apiServer) (*App, *bytes.Buffer) {
	t.Helper()
	a, out := newTestApp(t, s, "")
	a.store.Set(session.Credential{AccessToken: "tok", RefreshToken: "ref"})
	a.store.SetUser(session.UserInfo{UserID: "1", Username: "admin", Roles: []string{"admin"}})
	return a, out
}

// ------------ tests ------------

func TestLogin_SuccessReturnsToRedirect(t *testing.T) {
	s := newAPIServer(t)
	a, out := newTestApp(t, s, "")
	stubPrompts(t, "admin", "secret")

	a.router.Navigate(client.LoginRedirect("/users/5"))
	require.NoError(t, a.Login(context.Background()))

	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "/users/5", a.router.CurrentPath())
	assert.Contains(t, out.String(), "Welcome, admin!")

	cred, ok := a.store.Get()
	require.True(t, ok)
	assert.Equal(t, "tok", cred.AccessToken)
}

func TestLogin_BusinessErrorReported(t *testing.T) {
	s := newAPIServer(t)
	s.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"code":1002,"message":"wrong password"}`)
	})
	a, out := newTestApp(t, s, "")
	stubPrompts(t, "admin", "bad")

	err := a.Login(context.Background())

	require.ErrorIs(t, err, client.ErrBusiness)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "wrong password")
}

func TestUsers_PrintsTable(t *testing.T) {
	s := newAPIServer(t)
	s.handle("GET /users", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "2", r.URL.Query().Get("pageNum"))
		_ = json.NewEncoder(w).Encode(map[string]any{"code": 200, "data": client.Page[models.User]{
			List:     []models.User{{ID: "9", Username: "zoe", Email: "z@example.com", Status: models.UserEnabled}},
			Total:    21,
			PageNum:  2,
			PageSize: 20,
		}})
	})
	a, out := loggedIn(t, s)

	require.NoError(t, a.Users(context.Background(), "2"))

	assert.Contains(t, out.String(), "zoe")
	assert.Contains(t, out.String(), "enabled")
	assert.Contains(t, out.String(), "page 2, 1 of 21 users")
	assert.Equal(t, "/users?page=2", a.router.CurrentPath())
}

func TestUsers_BadPage(t *testing.T) {
	a, out := loggedIn(t, newAPIServer(t))

	require.Error(t, a.Users(context.Background(), "zero"))
	assert.Contains(t, out.String(), "Usage: users [page]")
}

func TestUser_NotFoundNavigates(t *testing.T) {
	a, out := loggedIn(t, newAPIServer(t))

	err := a.User(context.Background(), "42")

	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Equal(t, "/404", a.router.CurrentPath())
	assert.Contains(t, out.String(), "Not found.")
	assert.True(t, a.isLoggedIn(), "not-found keeps the session")
}

func TestUser_Unauthorized_ClearsSession(t *testing.T) {
	s := newAPIServer(t)
	s.status("GET /users/42", http.StatusUnauthorized)
	a, out := loggedIn(t, s)

	err := a.User(context.Background(), "42")

	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "/login?redirect=/users/42", a.router.CurrentPath())
	assert.Contains(t, out.String(), "Please log in.")
}

func TestRemoveUser_Confirmation(t *testing.T) {
	s := newAPIServer(t)
	var deleted atomic.Int32
	s.handle("DELETE /users/3", func(w http.ResponseWriter, r *http.Request) {
		deleted.Add(1)
		_, _ = io.WriteString(w, `{"code":200}`)
	})
	a, out := loggedIn(t, s)

	a.reader = bufio.NewReader(strings.NewReader("n\ny\n"))
	require.NoError(t, a.RemoveUser(context.Background(), "3"))
	assert.Contains(t, out.String(), "Cancelled.")
	assert.Zero(t, deleted.Load())

	require.NoError(t, a.RemoveUser(context.Background(), "3"))
	assert.Contains(t, out.String(), "Deleted.")
	assert.Equal(t, int32(1), deleted.Load())
}

func TestWhoAmI(t *testing.T) {
	a, out := newTestApp(t, newAPIServer(t), "")
	require.Error(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "Not logged in.")

	a.store.SetUser(session.UserInfo{UserID: "1", Username: "admin", Roles: []string{"admin", "ops"}})
	a.store.Set(session.Credential{AccessToken: "opaque", ExpiresAt: time.Now().Add(-time.Minute)})
	out.Reset()

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "admin (id 1)")
	assert.Contains(t, out.String(), "admin, ops")
	assert.Contains(t, out.String(), "expired")
}

func TestRefreshAndPerms(t *testing.T) {
	s := newAPIServer(t)
	s.ok("POST /auth/refresh-token", models.RefreshTokenResponse{Token: "tok2", ExpiresIn: 60})
	s.ok("GET /auth/permissions", []string{"user:list"})
	a, out := loggedIn(t, s)

	require.NoError(t, a.Refresh(context.Background()))
	cred, _ := a.store.Get()
	assert.Equal(t, "tok2", cred.AccessToken)

	require.NoError(t, a.Perms(context.Background()))
	assert.Contains(t, out.String(), "Token refreshed.")
	assert.Contains(t, out.String(), " - user:list")
}

func TestRefresh_NoRefreshToken(t *testing.T) {
	a, out := newTestApp(t, newAPIServer(t), "")

	err := a.Refresh(context.Background())

	require.Error(t, err)
	assert.True(t, shownByPipeline(err))
	assert.Contains(t, out.String(), "No refresh token")
}

func TestLogout(t *testing.T) {
	s := newAPIServer(t)
	s.ok("POST /auth/logout", nil)
	a, out := loggedIn(t, s)

	require.NoError(t, a.Logout(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "/login", a.router.CurrentPath())
	assert.Contains(t, out.String(), "Logged out.")
}

func TestGetRawWhere(t *testing.T) {
	s := newAPIServer(t)
	s.ok("GET /dashboard", map[string]int{"users": 3})
	s.handle("GET /auth/captcha", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, "raw-body")
	})
	a, out := loggedIn(t, s)
	ctx := context.Background()

	require.NoError(t, a.Get(ctx, "/dashboard"))
	assert.Contains(t, out.String(), `"users": 3`)

	require.NoError(t, a.Raw(ctx, "/auth/captcha"))
	assert.Contains(t, out.String(), "HTTP 418\nraw-body")

	a.router.Navigate("/users")
	require.NoError(t, a.Where(ctx))
	assert.Contains(t, out.String(), "current: /users")

	require.NoError(t, a.Back(ctx))
	assert.NotEqual(t, "/users", a.router.CurrentPath())
}

func TestBack_NoHistory(t *testing.T) {
	a, out := loggedIn(t, newAPIServer(t))
	for a.router.Back() {
	}

	require.NoError(t, a.Back(context.Background()))
	assert.Contains(t, out.String(), "no previous location")
}

func TestGet_ServerErrorNavigates(t *testing.T) {
	s := newAPIServer(t)
	s.status("GET /reports", http.StatusInternalServerError)
	a, out := loggedIn(t, s)

	require.ErrorIs(t, a.Get(context.Background(), "/reports"), client.ErrServer)
	assert.Equal(t, "/500", a.router.CurrentPath())
	assert.Contains(t, out.String(), "Server error")
}

func TestGetStatus(t *testing.T) {
	a, _ := loggedIn(t, newAPIServer(t))
	assert.Equal(t, " (admin /)", a.getStatus())

	a.store.Clear()
	assert.Equal(t, " (/)", a.getStatus())
}

func TestNewApp_PersistsSessionAcrossRuns(t *testing.T) {
	s := newAPIServer(t)
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = s.srv.URL
	cfg.StatePath = filepath.Join(t.TempDir(), "admin", "state.db")
	cfg.Passphrase = "pass"
	ctx := context.Background()

	first, err := NewApp(ctx, cfg, logging.Nop())
	require.NoError(t, err)
	first.out = io.Discard
	stubPrompts(t, "admin", "secret")
	require.NoError(t, first.Login(ctx))
	first.Close()

	second, err := NewApp(ctx, cfg, logging.Nop())
	require.NoError(t, err)
	defer second.Close()

	assert.True(t, second.isLoggedIn())
	u, ok := second.store.User()
	require.True(t, ok)
	assert.Equal(t, "admin", u.Username)
}
