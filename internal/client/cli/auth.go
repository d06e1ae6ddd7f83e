package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/client/client"
	"github.com/dmitrijs2005/adminapi/internal/client/models"
	"github.com/dmitrijs2005/adminapi/internal/client/router"
	"github.com/dmitrijs2005/adminapi/internal/client/session"
	"github.com/dmitrijs2005/adminapi/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in. On success the user is taken
// back to the page the last redirect came from.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	params := models.LoginParams{Username: userName, Password: string(password)}
	user, err := a.authService.Login(ctx, params)
	if err != nil {
		a.log.Info(ctx, "login failed", "username", userName, "error", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", user.Username)
	if cur := a.router.CurrentPath(); isLoginLocation(cur) {
		a.router.Navigate(router.RedirectTarget(cur))
	}
	return nil
}

// Logout ends the session on the server and locally.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	if err != nil {
		a.log.Warn(ctx, "server logout failed", "error", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	a.router.Navigate(router.RouteLogin)
	return err
}

// WhoAmI prints the stored profile and what the access token says about it.
func (a *App) WhoAmI(ctx context.Context) error {
	cred, ok := a.store.Get()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return common.ErrNoCredential
	}

	if user, ok := a.store.User(); ok {
		fmt.Fprintf(a.out, "user:    %s (id %s)\n", user.Username, user.UserID)
		if len(user.Roles) > 0 {
			fmt.Fprintf(a.out, "roles:   %s\n", strings.Join(user.Roles, ", "))
		}
	}

	if claims, ok := session.ParseClaims(cred.AccessToken); ok && claims.ExpiresAt != nil {
		fmt.Fprintf(a.out, "token:   expires %s\n", claims.ExpiresAt.Time.Format(time.RFC3339))
	} else if !cred.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "token:   expires %s\n", cred.ExpiresAt.Format(time.RFC3339))
	}
	if cred.Expired(time.Now()) {
		fmt.Fprintln(a.out, "token:   expired, run 'refresh' or 'login'")
	}
	return nil
}

// Refresh exchanges the stored refresh token for a new access token.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.authService.RefreshToken(ctx); err != nil {
		if errors.Is(err, common.ErrNoRefreshToken) {
			fmt.Fprintln(a.out, "No refresh token, please log in.")
		} else if !errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(a.out, "Refresh failed:", err)
		}
		return err
	}
	fmt.Fprintln(a.out, "Token refreshed.")
	return nil
}

// Perms lists the permission codes of the signed-in user.
func (a *App) Perms(ctx context.Context) error {
	perms, err := a.authService.Permissions(ctx)
	if err != nil {
		return err
	}
	if len(perms) == 0 {
		fmt.Fprintln(a.out, "No permissions.")
		return nil
	}
	for _, p := range perms {
		fmt.Fprintln(a.out, " -", p)
	}
	return nil
}
