package users

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/adminapi/internal/common"
)

// MemoryRepository keeps users in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[string]*User
	order  []string
	nextID int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: map[string]*User{}}
}

func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.UserName == user.UserName {
			return nil, common.ErrorAlreadyExists
		}
	}

	r.nextID++
	u := clone(user)
	u.ID = strconv.Itoa(r.nextID)
	r.byID[u.ID] = u
	r.order = append(r.order, u.ID)
	return clone(u), nil
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if u.UserName == login {
			return clone(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(u), nil
}

func (r *MemoryRepository) Update(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return common.ErrorNotFound
	}
	for id, u := range r.byID {
		if id != user.ID && u.UserName == user.UserName {
			return common.ErrorAlreadyExists
		}
	}
	r.byID[user.ID] = clone(user)
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, f Filter, offset, limit int) ([]User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []User
	for _, id := range r.order {
		u := r.byID[id]
		if f.Username != "" && !strings.Contains(u.UserName, f.Username) {
			continue
		}
		if f.Email != "" && !strings.Contains(u.Email, f.Email) {
			continue
		}
		if f.Status != nil && u.Status != *f.Status {
			continue
		}
		matched = append(matched, *clone(u))
	}

	total := len(matched)
	if offset >= total {
		return []User{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func clone(u *User) *User {
	c := *u
	c.Roles = slices.Clone(u.Roles)
	c.Salt = slices.Clone(u.Salt)
	c.Verifier = slices.Clone(u.Verifier)
	return &c
}
