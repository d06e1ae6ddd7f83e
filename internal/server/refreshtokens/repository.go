package refreshtokens

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	// Find returns the owner of a live token; expired tokens are not found.
	Find(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}
