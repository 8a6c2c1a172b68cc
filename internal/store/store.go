// Package store defines the persistence handle for user records and its
// GORM and in-memory implementations.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/dcastano/userhub-api/internal/models"
)

var (
	// ErrDuplicateEmail is returned when the unique email index rejects an
	// insert.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
)

// UserStore is injected into services instead of a process-wide DB handle.
// GormUserStore backs production, MemoryUserStore backs tests.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// List returns a page of users ordered by creation time descending,
	// along with the total record count.
	List(ctx context.Context, offset, limit int) ([]models.User, int64, error)
}
