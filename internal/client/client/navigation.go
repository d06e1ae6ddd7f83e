package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/adminapi/internal/common"
	"github.com/dmitrijs2005/adminapi/internal/logging"
)

// Navigator is the route-change capability consumed from the UI shell.
type Navigator interface {
	Navigate(path string)
	CurrentPath() string
}

// LoginRedirect returns the login route carrying from as the return target.
func LoginRedirect(from string) string {
	if from == "" {
		from = common.HomeRoute
	}
	// slashes are legal in a query and keep the target readable
	v := strings.ReplaceAll(url.QueryEscape(from), "%2F", "/")
	return common.LoginRoute + "?" + common.RedirectQueryParam + "=" + v
}

// NavigationSideEffects sends the user to a static error page for
// Forbidden, NotFound and ServerError outcomes. The session is left intact
// and the failed call still returns its error.
type NavigationSideEffects struct {
	nav Navigator
	log logging.Logger
}

func NewNavigationSideEffects(nav Navigator, log logging.Logger) *NavigationSideEffects {
	return &NavigationSideEffects{nav: nav, log: log}
}

// OnOutcome navigates for the three error-page outcomes and ignores the rest.
func (n *NavigationSideEffects) OnOutcome(ctx context.Context, o Outcome) {
	var target string
	switch o.Kind {
	case OutcomeForbidden:
		target = common.ForbiddenRoute
	case OutcomeNotFound:
		target = common.NotFoundRoute
	case OutcomeServerError:
		target = common.ServerErrorRoute
	default:
		return
	}

	n.log.Debug(ctx, "navigating to error page", "outcome", o.Kind.String(), "target", target)
	n.nav.Navigate(target)
}
