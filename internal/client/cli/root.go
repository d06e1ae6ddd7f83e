package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/adminapi/internal/client/client"
	"github.com/dmitrijs2005/adminapi/internal/common"
)

func (a *App) getStatus() string {
	s := ""
	if u, ok := a.store.User(); ok && a.isLoggedIn() {
		s = u.Username + " "
	}
	s += a.router.CurrentPath()
	return fmt.Sprintf(" (%s)", s)
}

// Root greets the user, offers a login when there is no restored session and
// runs the REPL on the app's input until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Admin CLI (type 'help' for commands)")

	if a.isLoggedIn() {
		if u, ok := a.store.User(); ok {
			fmt.Fprintf(a.out, "Session restored for %s.\n", u.Username)
		}
	} else {
		a.router.Navigate(client.LoginRedirect(a.router.CurrentPath()))
		if err := a.Login(ctx); err != nil && !shownByPipeline(err) {
			fmt.Fprintln(a.out, "error:", err)
		}
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

// shownByPipeline reports whether err was already presented to the user by
// the error reporter or a navigation message.
func shownByPipeline(err error) bool {
	var apiErr *client.Error
	if !errors.As(err, &apiErr) {
		return errors.Is(err, common.ErrNoRefreshToken) || errors.Is(err, common.ErrNoCredential)
	}
	return true
}
