// Package storage opens the SafeSpace database, brings its schema up to date
// and makes sure the default administrator exists. Every failure is wrapped
// with common.ErrStorageUnavailable.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/config"
	"github.com/dmitrijs2005/safespace/internal/cryptox"
	"github.com/dmitrijs2005/safespace/internal/filex"
	"github.com/dmitrijs2005/safespace/internal/logging"
	"github.com/dmitrijs2005/safespace/internal/models"
	"github.com/dmitrijs2005/safespace/internal/repositories/repomanager"
	"github.com/dmitrijs2005/safespace/internal/repositories/users"
)

const sqliteBusyTimeoutMs = 5000

// Storage is an initialized database together with the repository factory
// for its dialect.
type Storage struct {
	DB      *sql.DB
	Manager repomanager.RepositoryManager
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func unavailable(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrStorageUnavailable, step, err)
}

// sqliteDSN adds the pragmas every connection needs: enforced foreign keys
// and a busy timeout instead of immediate SQLITE_BUSY.
func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", dsn, sep, sqliteBusyTimeoutMs)
}

func isFileDSN(dsn string) bool {
	return dsn != "" && !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:")
}

// Open connects to the configured database and verifies it answers.
func Open(ctx context.Context, cfg *config.Config, m repomanager.RepositoryManager) (*sql.DB, error) {
	dsn := cfg.DatabaseDSN

	if m.DriverName() == "sqlite" {
		if isFileDSN(dsn) {
			if _, err := filex.EnsureParentDir(dsn); err != nil {
				return nil, unavailable("create database directory", err)
			}
		}
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(m.DriverName(), dsn)
	if err != nil {
		return nil, unavailable("open", err)
	}
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, unavailable("ping", err)
	}
	return db, nil
}

// InitDatabase opens the database, applies migrations and seeds the default
// administrator. Running it against an initialized database changes nothing.
func InitDatabase(ctx context.Context, cfg *config.Config, log logging.Logger) (*Storage, error) {
	m, err := repomanager.New(cfg.DatabaseDriver)
	if err != nil {
		return nil, unavailable("select driver", err)
	}

	db, err := Open(ctx, cfg, m)
	if err != nil {
		return nil, err
	}

	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, unavailable("migrate", err)
	}
	log.Debug(ctx, "schema up to date", "driver", cfg.DatabaseDriver)

	if err := EnsureDefaultAdmin(ctx, m.Users(db), cfg.DefaultAdminSecret, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{DB: db, Manager: m}, nil
}

// EnsureDefaultAdmin inserts the built-in administrator when no account with
// its email exists. The secret is stored hashed. An account holding that
// email with any other role is reported as an error.
func EnsureDefaultAdmin(ctx context.Context, repo users.Repository, secret string, log logging.Logger) error {
	existing, err := repo.FindByEmail(ctx, common.DefaultAdminEmail)
	if err == nil {
		if existing.Role != models.RoleAdministrator {
			return unavailable("check default admin",
				fmt.Errorf("account %q (id %d) has role %s", common.DefaultAdminEmail, existing.ID, existing.Role))
		}
		return nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return unavailable("look up default admin", err)
	}

	admin := &models.User{
		Name:   common.DefaultAdminName,
		Email:  common.DefaultAdminEmail,
		Secret: cryptox.HashSecret(secret),
		Role:   models.RoleAdministrator,
	}
	id, err := repo.Insert(ctx, admin)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil
		}
		return unavailable("create default admin", err)
	}

	log.Info(ctx, "default administrator created", "user_id", id)
	return nil
}
