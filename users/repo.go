package users

import "context"

// UserRepo is the credential store. Lookups of unknown principals return
// ErrNotFound and nothing else.
type UserRepo interface {
	Upsert(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}
