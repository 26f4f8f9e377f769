package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/safespace/internal/dbx"
	migrations "github.com/dmitrijs2005/safespace/internal/migrations/postgres"
	"github.com/dmitrijs2005/safespace/internal/repositories/moods"
	"github.com/dmitrijs2005/safespace/internal/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager serves a PostgreSQL database through pgx.
type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) DriverName() string { return "pgx" }

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Moods(db dbx.DBTX) moods.Repository {
	return moods.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, goose.DialectPostgres, db, migrations.Migrations)
}
