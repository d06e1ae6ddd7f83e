package client

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/adminapi/internal/client/session"
	"github.com/dmitrijs2005/adminapi/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestSessionController_InitialState(t *testing.T) {
	store := session.NewMemoryStore()
	s := NewSessionController(store, &fakeNavigator{}, logging.Nop())
	defer s.Close()
	assert.Equal(t, Unauthenticated, s.State())

	store.Set(session.Credential{AccessToken: "abc"})
	s2 := NewSessionController(store, &fakeNavigator{}, logging.Nop())
	defer s2.Close()
	assert.Equal(t, Authenticated, s2.State())
}

func TestSessionController_FollowsStore(t *testing.T) {
	store := session.NewMemoryStore()
	s := NewSessionController(store, &fakeNavigator{}, logging.Nop())
	defer s.Close()

	store.Set(session.Credential{AccessToken: "abc"})
	assert.Equal(t, Authenticated, s.State())

	store.Set(session.Credential{})
	assert.Equal(t, Unauthenticated, s.State(), "empty token is not a session")

	store.Set(session.Credential{AccessToken: "def"})
	store.Clear()
	assert.Equal(t, Unauthenticated, s.State())
}

func TestSessionController_OnUnauthorized(t *testing.T) {
	store := session.NewMemoryStore()
	store.Set(session.Credential{AccessToken: "abc"})
	nav := &fakeNavigator{current: "/settings/profile"}
	s := NewSessionController(store, nav, logging.Nop())
	defer s.Close()

	s.OnUnauthorized(context.Background())
	s.OnUnauthorized(context.Background())

	_, ok := store.Get()
	assert.False(t, ok)
	assert.Equal(t, Unauthenticated, s.State())
	assert.Equal(t, "/login?redirect=/settings/profile", nav.history()[0])
}

func TestSessionController_CloseStopsFollowing(t *testing.T) {
	store := session.NewMemoryStore()
	s := NewSessionController(store, &fakeNavigator{}, logging.Nop())

	s.Close()
	s.Close()
	store.Set(session.Credential{AccessToken: "abc"})

	assert.Equal(t, Unauthenticated, s.State())
}

func TestAuthState_String(t *testing.T) {
	assert.Equal(t, "authenticated", Authenticated.String())
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
}
