// Package services contains the typed feature modules of the admin client.
// This file defines the authentication service: login, explicit token
// refresh, captcha, logout and permission lookup.
package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/client/client"
	"github.com/dmitrijs2005/adminapi/internal/client/models"
	"github.com/dmitrijs2005/adminapi/internal/client/session"
	"github.com/dmitrijs2005/adminapi/internal/common"
)

// AuthService defines authentication operations.
//
// Contract:
//   - Login: authenticate and store the issued credential and profile.
//   - RefreshToken: exchange the stored refresh token for a new access token.
//     Only called explicitly; failed calls are never replayed.
//   - Captcha: fetch the captcha image bytes as served.
//   - Logout: notify the server, then clear the local session regardless.
//   - Permissions: list the permission codes of the signed-in user.
//
// All methods honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, params models.LoginParams) (session.UserInfo, error)
	RefreshToken(ctx context.Context) error
	Captcha(ctx context.Context) ([]byte, error)
	Logout(ctx context.Context) error
	Permissions(ctx context.Context) ([]string, error)
}

// authService is the concrete AuthService backed by the API client and
// the session store the client reads its credential from.
type authService struct {
	api   *client.Client
	store session.Store
	now   func() time.Time
}

// NewAuthService constructs an AuthService. store must be the same store the
// client was built with.
func NewAuthService(api *client.Client, store session.Store) AuthService {
	return &authService{api: api, store: store, now: time.Now}
}

// Login posts the credentials to the exempt login endpoint. On success the
// profile and credential are stored, which moves the session to
// Authenticated. A profile missing from the response is filled from the
// token claims when the token is a JWT.
func (a *authService) Login(ctx context.Context, params models.LoginParams) (session.UserInfo, error) {
	resp, err := client.Do[models.LoginResponse](ctx, a.api, client.Post(common.LoginPath, params))
	if err != nil {
		return session.UserInfo{}, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return session.UserInfo{}, fmt.Errorf("login: %w", common.ErrInvalidToken)
	}

	user := resp.UserInfo
	if user.Username == "" {
		if claims, ok := session.ParseClaims(resp.Token); ok {
			user = session.UserInfo{UserID: claims.UserID, Username: claims.Username, Roles: claims.Roles}
		}
	}

	a.store.SetUser(user)
	a.store.Set(session.NewCredential(resp.Token, resp.RefreshToken, resp.ExpiresIn, a.now()))
	return user, nil
}

// RefreshToken replaces the access token, keeping the refresh token. Errors
// are not handed to the error reporter.
func (a *authService) RefreshToken(ctx context.Context) error {
	cred, ok := a.store.Get()
	if !ok || cred.RefreshToken == "" {
		return common.ErrNoRefreshToken
	}

	req := client.Post(common.RefreshTokenPath,
		models.RefreshTokenRequest{RefreshToken: cred.RefreshToken},
		client.WithoutErrorReport(),
	)
	resp, err := client.Do[models.RefreshTokenResponse](ctx, a.api, req)
	if err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}
	if resp.Token == "" {
		return fmt.Errorf("refresh token: %w", common.ErrInvalidToken)
	}

	a.store.Set(session.NewCredential(resp.Token, cred.RefreshToken, resp.ExpiresIn, a.now()))
	return nil
}

// Captcha bypasses the pipeline: the body is an image, not an envelope.
func (a *authService) Captcha(ctx context.Context) ([]byte, error) {
	resp, err := a.api.Raw(ctx, client.Get(common.CaptchaPath, client.SkipInterceptors()))
	if err != nil {
		return nil, fmt.Errorf("captcha: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("captcha: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// Logout clears the local session even when the server call fails; the
// server error is still returned.
func (a *authService) Logout(ctx context.Context) error {
	defer a.store.Clear()

	_, err := a.api.Request(ctx, client.Post(common.LogoutPath, nil, client.WithoutErrorReport()))
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) Permissions(ctx context.Context) ([]string, error) {
	perms, err := client.Do[[]string](ctx, a.api, client.Get(common.PermissionsPath))
	if err != nil {
		return nil, fmt.Errorf("permissions: %w", err)
	}
	return perms, nil
}
