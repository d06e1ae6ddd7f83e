package session

import (
	"sync"
)

// Listener observes credential changes. ok is false after Clear.
type Listener func(c Credential, ok bool)

// Store holds the current credential and user profile.
type Store interface {
	Get() (Credential, bool)
	Set(c Credential)
	Clear()
	// Subscribe registers fn for every Set and Clear and returns a function
	// that removes it.
	Subscribe(fn Listener) (unsubscribe func())

	SetUser(u UserInfo)
	User() (UserInfo, bool)
}

type subscription struct {
	id uint64
	fn Listener
}

// MemoryStore is a process-local Store.
type MemoryStore struct {
	mu     sync.RWMutex
	cred   *Credential
	user   *UserInfo
	subs   []subscription
	nextID uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cred == nil {
		return Credential{}, false
	}
	return *s.cred, true
}

func (s *MemoryStore) Set(c Credential) {
	s.mu.Lock()
	s.cred = &c
	subs := s.snapshot()
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(c, true)
	}
}

// Clear drops the credential and the user profile. Clearing an empty store
// is a no-op apart from notifying subscribers.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.cred = nil
	s.user = nil
	subs := s.snapshot()
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(Credential{}, false)
	}
}

func (s *MemoryStore) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *MemoryStore) SetUser(u UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &u
}

func (s *MemoryStore) User() (UserInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return UserInfo{}, false
	}
	return *s.user, true
}

// snapshot copies the subscriber list so listeners run without the lock
// held and may call back into the store. Caller must hold s.mu.
func (s *MemoryStore) snapshot() []subscription {
	return append([]subscription(nil), s.subs...)
}
