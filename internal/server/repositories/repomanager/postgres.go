package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Euphysics/ziphonix/internal/cryptox"
	"github.com/Euphysics/ziphonix/internal/dbx"
	"github.com/Euphysics/ziphonix/internal/server/migrations"
	"github.com/Euphysics/ziphonix/internal/server/repositories/auths"
	"github.com/Euphysics/ziphonix/internal/server/repositories/users"
)

// PostgresRepositoryManager wires the postgres repositories to the crypto
// primitives used at the storage boundary.
type PostgresRepositoryManager struct {
	crypto *cryptox.Crypto
}

func NewPostgresRepositoryManager(crypto *cryptox.Crypto) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{crypto: crypto}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db, m.crypto)
}

func (m *PostgresRepositoryManager) Auths(db dbx.DBTX) auths.Repository {
	return auths.NewPostgresRepository(db, m.crypto)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
