// Package avatars stores uploaded avatar images, in process memory or in an
// S3-compatible bucket.
package avatars

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/adminapi/internal/common"
)

// Store keeps avatar objects by key.
type Store interface {
	Put(ctx context.Context, key string, contentType string, content []byte) error
	Get(ctx context.Context, key string) (content []byte, contentType string, err error)
}

type object struct {
	contentType string
	content     []byte
}

type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]object
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string]object{}}
}

func (s *MemoryStore) Put(ctx context.Context, key string, contentType string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{contentType: contentType, content: content}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.objects[key]
	if !ok {
		return nil, "", common.ErrorNotFound
	}
	return o.content, o.contentType, nil
}
