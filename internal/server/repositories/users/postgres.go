package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Euphysics/ziphonix/internal/common"
	"github.com/Euphysics/ziphonix/internal/cryptox"
	"github.com/Euphysics/ziphonix/internal/dbx"
	"github.com/Euphysics/ziphonix/internal/server/models"
)

type PostgresRepository struct {
	db     dbx.DBTX
	crypto *cryptox.Crypto
}

func NewPostgresRepository(db dbx.DBTX, crypto *cryptox.Crypto) *PostgresRepository {
	return &PostgresRepository{db: db, crypto: crypto}
}

func (r *PostgresRepository) Create(ctx context.Context, name string, role models.Role) (*models.User, error) {
	if role == "" {
		role = models.RoleUser
	}

	encryptedName, err := r.crypto.Encrypt(name)
	if err != nil {
		return nil, fmt.Errorf("name encryption error: %w", err)
	}

	query :=
		`INSERT INTO users (name, role)
		 VALUES ($1, $2)
		 RETURNING id, created_at
		 `

	user := &models.User{Name: name, Role: role}
	err = r.db.QueryRowContext(ctx, query, encryptedName, role).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, role, last_login, created_at FROM users
		 WHERE id = $1 AND deleted_at IS NULL
		 `

	user := &models.User{}
	var encryptedName string
	var lastLogin sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &encryptedName, &user.Role, &lastLogin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Name, err = r.crypto.Decrypt(encryptedName)
	if err != nil {
		return nil, fmt.Errorf("name decryption error: %w", err)
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return user, nil
}

func (r *PostgresRepository) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	encryptedName, err := r.crypto.Encrypt(name)
	if err != nil {
		return nil, fmt.Errorf("name encryption error: %w", err)
	}

	query :=
		`UPDATE users SET name = $2
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING id, role, last_login, created_at
		 `

	user := &models.User{Name: name}
	var lastLogin sql.NullTime

	err = r.db.QueryRowContext(ctx, query, id, encryptedName).Scan(&user.ID, &user.Role, &lastLogin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}

	return user, nil
}

func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	query :=
		`UPDATE users SET last_login = $2
		 WHERE id = $1 AND deleted_at IS NULL
		 `

	// zero rows affected means the record is gone; stamping stays a no-op
	if _, err := r.db.ExecContext(ctx, query, id, at); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query :=
		`UPDATE users SET deleted_at = now()
		 WHERE id = $1 AND deleted_at IS NULL
		 `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
