package client

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/adminapi/internal/client/session"
	"github.com/dmitrijs2005/adminapi/internal/logging"
)

// AuthState is the two-state session model.
type AuthState int32

const (
	Unauthenticated AuthState = iota
	Authenticated
)

func (s AuthState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// SessionController ends the session when a call comes back Unauthorized.
//
// It follows the TokenStore: a Set with an access token moves it to
// Authenticated, a Clear to Unauthenticated. There is no refresh-and-replay:
// every Unauthorized signs the user out, and other in-flight calls are left
// to fail on their own.
type SessionController struct {
	store       TokenStore
	nav         Navigator
	log         logging.Logger
	state       atomic.Int32
	unsubscribe func()
	closeOnce   sync.Once
}

func NewSessionController(store TokenStore, nav Navigator, log logging.Logger) *SessionController {
	s := &SessionController{store: store, nav: nav, log: log}

	s.unsubscribe = store.Subscribe(func(c session.Credential, ok bool) {
		if ok && c.AccessToken != "" {
			s.transition(Authenticated)
		} else {
			s.transition(Unauthenticated)
		}
	})

	// read after subscribing so a concurrent Set is not lost
	if c, ok := store.Get(); ok && c.AccessToken != "" {
		s.transition(Authenticated)
	}
	return s
}

// State returns the current session state.
func (s *SessionController) State() AuthState {
	return AuthState(s.state.Load())
}

// OnUnauthorized clears the credential and sends the user to the login
// route with the current path as the return target. Concurrent calls are
// harmless: clearing is idempotent.
func (s *SessionController) OnUnauthorized(ctx context.Context) {
	from := s.nav.CurrentPath()
	s.store.Clear()

	s.log.Warn(ctx, "session invalidated", "redirect", from)
	s.nav.Navigate(LoginRedirect(from))
}

// Close stops following the store.
func (s *SessionController) Close() {
	s.closeOnce.Do(s.unsubscribe)
}

func (s *SessionController) transition(to AuthState) {
	from := AuthState(s.state.Swap(int32(to)))
	if from != to {
		s.log.Info(context.Background(), "session state changed", "from", from.String(), "to", to.String())
	}
}
