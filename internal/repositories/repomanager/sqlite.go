package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/safespace/internal/dbx"
	migrations "github.com/dmitrijs2005/safespace/internal/migrations/sqlite"
	"github.com/dmitrijs2005/safespace/internal/repositories/moods"
	"github.com/dmitrijs2005/safespace/internal/repositories/users"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager serves the local file database.
type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) DriverName() string { return "sqlite" }

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Moods(db dbx.DBTX) moods.Repository {
	return moods.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, goose.DialectSQLite3, db, migrations.Migrations)
}
