package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock, db
}

var userCols = []string{"id", "name", "email", "secret", "age", "role", "wellbeing_answers", "companion", "companion_answers"}

func TestPostgres_Insert_Success(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^INSERT\s+INTO\s+users\s*\(name,\s*email,\s*secret,\s*age,\s*role,\s*wellbeing_answers,\s*companion,\s*companion_answers\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8\)\s*RETURNING\s+id\s*$`

	mock.ExpectQuery(q).
		WithArgs("Ana Perez", "ana@x.io", "hash", int64(31), int64(1), nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	age := 31
	id, err := repo.Insert(context.Background(), &models.User{Name: "Ana Perez", Email: "ana@x.io", Secret: "hash", Age: &age, Role: models.RoleRegularUser})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Insert_UniqueViolation(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Insert(context.Background(), &models.User{Name: "A B", Email: "a@x.io", Secret: "h", Role: models.RoleStaff})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestPostgres_Insert_DBError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Insert(context.Background(), &models.User{Name: "A B", Email: "a@x.io", Secret: "h", Role: models.RoleStaff})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPostgres_FindByEmail(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^SELECT\s+id,\s*name,\s*email,\s*secret,\s*age,\s*role,\s*wellbeing_answers,\s*companion,\s*companion_answers\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).WithArgs("ana@x.io").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(7), "Ana Perez", "ana@x.io", "hash", nil, int64(1), `[{"question":"q","answer":"a"}]`, "Cat", nil))

	u, err := repo.FindByEmail(context.Background(), "ana@x.io")
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Nil(t, u.Age)
	assert.Equal(t, models.RoleRegularUser, u.Role)
	assert.Equal(t, models.RawAnswers(`[{"question":"q","answer":"a"}]`), u.WellbeingAnswers)
	require.NotNil(t, u.Companion)
	assert.Equal(t, "Cat", *u.Companion)
	assert.Nil(t, u.CompanionAnswers)
}

func TestPostgres_FindByEmail_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`).
		WithArgs("ghost@x.io").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@x.io")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_FindByCredentials_RoleInQuery(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s+AND\s+role\s*=\s*\$2\s*$`).
		WithArgs("s@x.io", int64(2)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(3), "S T", "s@x.io", "hash", int64(50), int64(2), nil, nil, nil))

	u, err := repo.FindByCredentials(context.Background(), "s@x.io", models.RoleStaff, func(stored string) bool { return stored == "hash" })
	require.NoError(t, err)
	require.NotNil(t, u.Age)
	assert.Equal(t, 50, *u.Age)
}

func TestPostgres_Update_NotFound(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^UPDATE\s+users\s+SET\s+name\s*=\s*\$1,\s*email\s*=\s*\$2,\s*secret\s*=\s*\$3,\s*age\s*=\s*\$4\s+WHERE\s+id\s*=\s*\$5\s*$`
	mock.ExpectExec(q).
		WithArgs("A B", "a@x.io", "h", nil, int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 9, "A B", "a@x.io", "h", nil)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_Update_Duplicate(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectExec(`(?s)^UPDATE\s+users\s+SET\s+name`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Update(context.Background(), 9, "A B", "a@x.io", "h", nil)
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestPostgres_UpdateCompanion(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	q := `(?s)^UPDATE\s+users\s+SET\s+companion\s*=\s*\$1,\s*companion_answers\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3\s*$`
	mock.ExpectExec(q).
		WithArgs("Fish", `[{"question":"q","answer":"yes"}]`, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateCompanion(context.Background(), 4, "Fish", models.RawAnswers(`[{"question":"q","answer":"yes"}]`))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteByID_Transaction(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+mood_entries\s+WHERE\s+user_id\s*=\s*\$1\s*$`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteByID(context.Background(), 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteByID_MissingUserRollsBack(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+mood_entries`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+users`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteByID(context.Background(), 5)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteByID_MoodDeleteFails(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)^DELETE\s+FROM\s+mood_entries`).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.DeleteByID(context.Background(), 5)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListByRole(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+id,\s*name,\s*age\s+FROM\s+users\s+WHERE\s+role\s*=\s*\$1\s+ORDER\s+BY\s+id\s*$`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "age"}).
			AddRow(int64(1), "A B", int64(22)).
			AddRow(int64(2), "C D", nil))

	got, err := repo.ListByRole(context.Background(), models.RoleRegularUser)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 22, *got[0].Age)
	assert.Nil(t, got[1].Age)
}

func TestPostgres_ListStaffContacts_ScanError(t *testing.T) {
	repo, mock, _ := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT\s+name,\s*email\s+FROM\s+users`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("only one column"))

	_, err := repo.ListStaffContacts(context.Background())
	require.Error(t, err)
}
