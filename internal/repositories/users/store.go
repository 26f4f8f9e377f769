package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/dbx"
	"github.com/dmitrijs2005/safespace/internal/models"
)

// queries is the dialect-specific SQL used by store.
type queries struct {
	findByEmail        string
	findByEmailAndRole string
	findByID           string
	insert             string
	listAll            string
	listByRole         string
	listStaffContacts  string
	counselorProfile   string
	update             string
	updateSecret       string
	updateWellbeing    string
	updateCompanion    string
	deleteMoods        string
	deleteUser         string
}

type store struct {
	db dbx.DBTX
	q  queries
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (*models.User, error) {
	var (
		u         models.User
		age       sql.NullInt64
		companion sql.NullString
	)
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Secret, &age, &u.Role,
		&u.WellbeingAnswers, &companion, &u.CompanionAnswers)
	if err != nil {
		return nil, err
	}
	u.Age = intPtr(age)
	u.Companion = stringPtr(companion)
	return &u, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableAge(age *int) any {
	if age == nil {
		return nil
	}
	return int64(*age)
}

func (r *store) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, r.q.findByEmail, email)
}

func (r *store) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, r.q.findByID, id)
}

// FindByCredentials returns the user whose email and role match exactly and
// whose stored secret is accepted by check. Any mismatch is ErrorNotFound.
func (r *store) FindByCredentials(ctx context.Context, email string, role models.Role, check SecretCheck) (*models.User, error) {
	u, err := r.findOne(ctx, r.q.findByEmailAndRole, email, int64(role))
	if err != nil {
		return nil, err
	}
	if check == nil || !check(u.Secret) {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *store) Insert(ctx context.Context, u *models.User) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, r.q.insert,
		u.Name, u.Email, u.Secret, nullableAge(u.Age), int64(u.Role),
		u.WellbeingAnswers, u.Companion, u.CompanionAnswers,
	).Scan(&id)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return 0, common.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

func (r *store) ListAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, r.q.listAll)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *store) ListByRole(ctx context.Context, role models.Role) ([]models.RoleMember, error) {
	rows, err := r.db.QueryContext(ctx, r.q.listByRole, int64(role))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.RoleMember
	for rows.Next() {
		var (
			m   models.RoleMember
			age sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.Name, &age); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		m.Age = intPtr(age)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *store) ListStaffContacts(ctx context.Context) ([]models.StaffContact, error) {
	rows, err := r.db.QueryContext(ctx, r.q.listStaffContacts, int64(models.RoleStaff))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.StaffContact
	for rows.Next() {
		var c models.StaffContact
		if err := rows.Scan(&c.Name, &c.Email); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// FindProfileForCounselor reads only regular users; other roles are
// reported as ErrorNotFound.
func (r *store) FindProfileForCounselor(ctx context.Context, id int64) (*models.CounselorProfile, error) {
	var (
		p         models.CounselorProfile
		companion sql.NullString
	)
	err := r.db.QueryRowContext(ctx, r.q.counselorProfile, id, int64(models.RoleRegularUser)).
		Scan(&p.Name, &p.WellbeingAnswers, &companion, &p.CompanionAnswers)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.Companion = stringPtr(companion)
	return &p, nil
}

// execOne runs a single-row write and maps "no row touched" to ErrorNotFound.
func (r *store) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *store) Update(ctx context.Context, id int64, name, email, secret string, age *int) error {
	return r.execOne(ctx, r.q.update, name, email, secret, nullableAge(age), id)
}

func (r *store) UpdateSecret(ctx context.Context, id int64, secret string) error {
	return r.execOne(ctx, r.q.updateSecret, secret, id)
}

func (r *store) UpdateWellbeingAnswers(ctx context.Context, id int64, answers models.RawAnswers) error {
	return r.execOne(ctx, r.q.updateWellbeing, answers, id)
}

func (r *store) UpdateCompanion(ctx context.Context, id int64, label string, answers models.RawAnswers) error {
	return r.execOne(ctx, r.q.updateCompanion, label, answers, id)
}

// DeleteByID removes the user's mood entries and then the user, atomically.
// When bound to a *sql.Tx the statements join that transaction.
func (r *store) DeleteByID(ctx context.Context, id int64) error {
	return dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, r.q.deleteMoods, id); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		inner := &store{db: tx, q: r.q}
		return inner.execOne(ctx, r.q.deleteUser, id)
	})
}
