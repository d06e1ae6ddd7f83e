package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/adminapi/internal/common"
)

type record struct {
	userID    string
	expiresAt time.Time
}

type MemoryRepository struct {
	mu     sync.Mutex
	tokens map[string]record
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: map[string]record{}, now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = record{userID: userID, expiresAt: r.now().Add(validity)}
	return nil
}

func (r *MemoryRepository) Find(ctx context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.tokens[token]
	if !ok {
		return "", common.ErrorNotFound
	}
	if !r.now().Before(rec.expiresAt) {
		delete(r.tokens, token)
		return "", common.ErrorNotFound
	}
	return rec.userID, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

func (r *MemoryRepository) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tok, rec := range r.tokens {
		if rec.userID == userID {
			delete(r.tokens, tok)
		}
	}
	return nil
}
