package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/foodstore-auth/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when an insert collides with the unique
	// email index. The index is the only concurrency guard for duplicate
	// registration; there is no explicit locking above it.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository is the persistence boundary for user records: simple
// find/insert/update-by-id operations against the backing document/row
// store. The repository never interprets verification state.
type UserRepository interface {
	Insert(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByPhone(ctx context.Context, phoneNumber string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
