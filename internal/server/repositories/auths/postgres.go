package auths

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Euphysics/ziphonix/internal/common"
	"github.com/Euphysics/ziphonix/internal/cryptox"
	"github.com/Euphysics/ziphonix/internal/dbx"
	"github.com/Euphysics/ziphonix/internal/server/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaks.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db     dbx.DBTX
	crypto *cryptox.Crypto
}

func NewPostgresRepository(db dbx.DBTX, crypto *cryptox.Crypto) *PostgresRepository {
	return &PostgresRepository{db: db, crypto: crypto}
}

// normalizeEmail makes the lookup hash independent of case and surrounding
// whitespace, whatever normalization the caller applied upstream.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *PostgresRepository) Create(ctx context.Context, email string, provider models.Provider, password, userID string) (*models.Authentication, error) {
	normalized := normalizeEmail(email)

	encryptedEmail, err := r.crypto.Encrypt(normalized)
	if err != nil {
		return nil, fmt.Errorf("email encryption error: %w", err)
	}

	var passwordHash sql.NullString
	if password != "" {
		passwordHash = sql.NullString{String: r.crypto.HashPassword(password), Valid: true}
	}

	query :=
		`INSERT INTO authentications (user_id, email_encrypted, email_hash, provider, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING user_id
		 `

	auth := &models.Authentication{Email: normalized, Provider: provider}
	err = r.db.QueryRowContext(ctx, query,
		userID, encryptedEmail, r.crypto.Hash(normalized), provider, passwordHash).Scan(&auth.UserID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	// the password digest never travels back to callers
	return auth, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Authentication, error) {
	query :=
		`SELECT user_id, email_encrypted, provider, password_hash FROM authentications
		 WHERE email_hash = $1
		 `

	auth := &models.Authentication{}
	var encryptedEmail string
	var passwordHash sql.NullString

	err := r.db.QueryRowContext(ctx, query, r.crypto.Hash(normalizeEmail(email))).
		Scan(&auth.UserID, &encryptedEmail, &auth.Provider, &passwordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	auth.Email, err = r.crypto.Decrypt(encryptedEmail)
	if err != nil {
		return nil, fmt.Errorf("email decryption error: %w", err)
	}
	auth.PasswordHash = passwordHash.String

	return auth, nil
}

func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query :=
		`DELETE FROM authentications
		 WHERE user_id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
