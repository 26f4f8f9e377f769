// Package users persists SafeSpace accounts.
//
// Two implementations share one code path and differ only in SQL text:
// SQLiteRepository (modernc.org/sqlite, "?" placeholders) and
// PostgresRepository (pgx stdlib, "$n" placeholders). Both are bound to a
// dbx.DBTX, so they can run on a *sql.DB or inside a caller's *sql.Tx.
package users

import (
	"context"

	"github.com/dmitrijs2005/safespace/internal/models"
)

// SecretCheck decides whether a stored credential matches what the user
// typed. Stored values are hashes, so the comparison cannot happen in SQL.
type SecretCheck func(stored string) bool

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByCredentials(ctx context.Context, email string, role models.Role, check SecretCheck) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (int64, error)
	ListAll(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.RoleMember, error)
	ListStaffContacts(ctx context.Context) ([]models.StaffContact, error)
	FindProfileForCounselor(ctx context.Context, id int64) (*models.CounselorProfile, error)
	Update(ctx context.Context, id int64, name, email, secret string, age *int) error
	UpdateSecret(ctx context.Context, id int64, secret string) error
	UpdateWellbeingAnswers(ctx context.Context, id int64, answers models.RawAnswers) error
	UpdateCompanion(ctx context.Context, id int64, label string, answers models.RawAnswers) error
	DeleteByID(ctx context.Context, id int64) error
}
