package users

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	// List returns the users matching f ordered by creation, skipping offset
	// and returning at most limit, plus the total number of matches.
	List(ctx context.Context, f Filter, offset, limit int) ([]User, int, error)
}
