package users

import (
	"context"
	"time"

	"github.com/Euphysics/ziphonix/internal/server/models"
)

// Repository persists and retrieves profile records. The name field is
// encrypted at rest; callers always see plaintext.
type Repository interface {
	// Create persists a new profile and returns it with the id assigned by
	// the store and the name as given.
	Create(ctx context.Context, name string, role models.Role) (*models.User, error)

	// FindByID returns the profile or common.ErrorNotFound. Soft-deleted
	// profiles are treated as absent.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// UpdateName re-encrypts and persists the new name. Returns
	// common.ErrorNotFound when the id does not exist.
	UpdateName(ctx context.Context, id, name string) (*models.User, error)

	// UpdateLastLogin stamps the login time. A concurrently deleted record
	// makes this an idempotent no-op, not an error.
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	// Delete soft-deletes the profile.
	Delete(ctx context.Context, id string) error
}
