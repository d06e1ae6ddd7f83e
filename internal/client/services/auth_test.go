package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/client/client"
	"github.com/dmitrijs2005/adminapi/internal/client/models"
	"github.com/dmitrijs2005/adminapi/internal/client/session"
	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login_StoresCredentialAndUser(t *testing.T) {
	api := newFakeAPI(t)
	api.ok("POST /auth/login", models.LoginResponse{
		Token:        "access",
		RefreshToken: "refresh",
		ExpiresIn:    3600,
		UserInfo:     session.UserInfo{UserID: "1", Username: "admin", Roles: []string{"admin"}},
	})
	c, store, _ := newTestClient(t, api)
	store.Set(session.Credential{AccessToken: "previous"})

	svc := NewAuthService(c, store).(*authService)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	user, err := svc.Login(context.Background(), models.LoginParams{Username: "admin", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.Empty(t, api.last().Auth, "login is exempt")

	var sent models.LoginParams
	require.NoError(t, json.Unmarshal(api.last().Body, &sent))
	assert.Equal(t, models.LoginParams{Username: "admin", Password: "secret"}, sent)

	cred, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, session.Credential{AccessToken: "access", RefreshToken: "refresh", ExpiresAt: now.Add(time.Hour)}, cred)

	stored, ok := store.User()
	require.True(t, ok)
	assert.True(t, stored.IsAdmin())
	assert.Equal(t, client.Authenticated, c.Session().State())
}

func TestAuthService_Login_UserFromClaims(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, session.Claims{
		UserID:   "42",
		Username: "ops",
		Role:     "editor",
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	api := newFakeAPI(t)
	api.ok("POST /auth/login", map[string]any{"token": token})
	c, store, _ := newTestClient(t, api)

	user, err := NewAuthService(c, store).Login(context.Background(), models.LoginParams{Username: "ops"})

	require.NoError(t, err)
	assert.Equal(t, session.UserInfo{UserID: "42", Username: "ops", Roles: []string{"editor"}}, user)
}

func TestAuthService_Login_BusinessError(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, 1002, nil, "wrong password")
	})
	c, store, _ := newTestClient(t, api)

	_, err := NewAuthService(c, store).Login(context.Background(), models.LoginParams{Username: "a", Password: "b"})

	require.ErrorIs(t, err, client.ErrBusiness)
	assert.Contains(t, err.Error(), "wrong password")
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestAuthService_Login_EmptyToken(t *testing.T) {
	api := newFakeAPI(t)
	api.ok("POST /auth/login", map[string]any{"token": ""})
	c, store, _ := newTestClient(t, api)

	_, err := NewAuthService(c, store).Login(context.Background(), models.LoginParams{})

	require.ErrorIs(t, err, common.ErrInvalidToken)
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestAuthService_RefreshToken(t *testing.T) {
	api := newFakeAPI(t)
	api.ok("POST /auth/refresh-token", models.RefreshTokenResponse{Token: "new-access", ExpiresIn: 60})
	c, store, _ := newTestClient(t, api)
	store.Set(session.Credential{AccessToken: "old-access", RefreshToken: "refresh"})

	err := NewAuthService(c, store).RefreshToken(context.Background())

	require.NoError(t, err)
	assert.Empty(t, api.last().Auth, "refresh must not carry the expired token")
	assert.JSONEq(t, `{"refreshToken":"refresh"}`, string(api.last().Body))

	cred, _ := store.Get()
	assert.Equal(t, "new-access", cred.AccessToken)
	assert.Equal(t, "refresh", cred.RefreshToken)
	assert.False(t, cred.ExpiresAt.IsZero())
}

func TestAuthService_RefreshToken_NoRefreshToken(t *testing.T) {
	api := newFakeAPI(t)
	c, store, _ := newTestClient(t, api)

	svc := NewAuthService(c, store)
	require.ErrorIs(t, svc.RefreshToken(context.Background()), common.ErrNoRefreshToken)

	store.Set(session.Credential{AccessToken: "a"})
	require.ErrorIs(t, svc.RefreshToken(context.Background()), common.ErrNoRefreshToken)
}

func TestAuthService_Captcha(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("GET /auth/captcha", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	})
	c, store, _ := newTestClient(t, api)
	store.Set(session.Credential{AccessToken: "abc"})

	img, err := NewAuthService(c, store).Captcha(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, img)
	assert.Empty(t, api.last().Auth, "raw call is not decorated")
}

func TestAuthService_Captcha_BadStatus(t *testing.T) {
	api := newFakeAPI(t)
	c, store, nav := newTestClient(t, api)

	_, err := NewAuthService(c, store).Captcha(context.Background())

	require.Error(t, err)
	assert.Empty(t, nav.visited, "raw call has no side effects")
}

func TestAuthService_Logout(t *testing.T) {
	api := newFakeAPI(t)
	api.ok("POST /auth/logout", nil)
	c, store, _ := newTestClient(t, api)
	store.Set(session.Credential{AccessToken: "abc"})

	require.NoError(t, NewAuthService(c, store).Logout(context.Background()))

	assert.Equal(t, "Bearer abc", api.last().Auth)
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestAuthService_Logout_ClearsOnServerError(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("POST /auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, 5000, nil, "try later")
	})
	c, store, _ := newTestClient(t, api)
	store.Set(session.Credential{AccessToken: "abc"})

	err := NewAuthService(c, store).Logout(context.Background())

	require.ErrorIs(t, err, client.ErrBusiness)
	_, ok := store.Get()
	assert.False(t, ok)
}

func TestAuthService_Permissions(t *testing.T) {
	api := newFakeAPI(t)
	api.ok("GET /auth/permissions", []string{"user:list", "user:delete"})
	c, store, _ := newTestClient(t, api)
	store.Set(session.Credential{AccessToken: "abc"})

	perms, err := NewAuthService(c, store).Permissions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"user:list", "user:delete"}, perms)
}

func TestAuthService_Permissions_Unauthorized(t *testing.T) {
	api := newFakeAPI(t)
	api.handle("GET /auth/permissions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	c, store, nav := newTestClient(t, api)
	store.Set(session.Credential{AccessToken: "expired"})

	_, err := NewAuthService(c, store).Permissions(context.Background())

	require.ErrorIs(t, err, client.ErrUnauthorized)
	_, ok := store.Get()
	assert.False(t, ok)
	assert.Equal(t, []string{"/login?redirect=/users"}, nav.visited)
}
