package auths

import (
	"context"

	"github.com/Euphysics/ziphonix/internal/server/models"
)

// Repository persists and retrieves credential records. Emails are encrypted
// at rest with a deterministic hash stored alongside for equality lookup;
// passwords are stored only as one-way digests.
type Repository interface {
	// Create persists a credential record for the given user. The password is
	// hashed before storage and only when provided (provider CREDENTIAL).
	// The returned record's PasswordHash is deliberately empty. A second
	// record for the same email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, email string, provider models.Provider, password, userID string) (*models.Authentication, error)

	// FindByEmail looks up by the hash of the normalized email and returns
	// the record with the email decrypted, or common.ErrorNotFound.
	FindByEmail(ctx context.Context, email string) (*models.Authentication, error)

	// DeleteByUserID hard-deletes all credential records of a user.
	DeleteByUserID(ctx context.Context, userID string) error
}
