// Package repomanager builds repositories bound to a concrete database
// handle. Services pass their pool for standalone calls or a transaction
// handle from dbx.WithTx when calls must be atomic.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Euphysics/ziphonix/internal/dbx"
	"github.com/Euphysics/ziphonix/internal/server/repositories/auths"
	"github.com/Euphysics/ziphonix/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Auths(db dbx.DBTX) auths.Repository
}
