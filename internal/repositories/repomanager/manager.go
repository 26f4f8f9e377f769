// Package repomanager vends dialect-specific repositories and runs the
// matching embedded goose migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/safespace/internal/config"
	"github.com/dmitrijs2005/safespace/internal/dbx"
	"github.com/dmitrijs2005/safespace/internal/repositories/moods"
	"github.com/dmitrijs2005/safespace/internal/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	// DriverName is the database/sql driver to open connections with.
	DriverName() string
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Moods(db dbx.DBTX) moods.Repository
}

// migrateUp is a seam for testing; it applies every pending migration in
// fsys through a goose.Provider, which keeps no package-level state.
var migrateUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

// New returns the manager for a config driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case config.DriverSQLite, "":
		return NewSQLiteRepositoryManager(), nil
	case config.DriverPostgres:
		return NewPostgresRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
