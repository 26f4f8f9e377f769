package users

import "github.com/dmitrijs2005/safespace/internal/dbx"

const sqliteUserColumns = `id, name, email, secret, age, role, wellbeing_answers, companion, companion_answers`

var sqliteQueries = queries{
	findByEmail:        `SELECT ` + sqliteUserColumns + ` FROM users WHERE email = ?`,
	findByEmailAndRole: `SELECT ` + sqliteUserColumns + ` FROM users WHERE email = ? AND role = ?`,
	findByID:           `SELECT ` + sqliteUserColumns + ` FROM users WHERE id = ?`,
	insert: `INSERT INTO users (name, email, secret, age, role, wellbeing_answers, companion, companion_answers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
	listAll:           `SELECT ` + sqliteUserColumns + ` FROM users ORDER BY id`,
	listByRole:        `SELECT id, name, age FROM users WHERE role = ? ORDER BY id`,
	listStaffContacts: `SELECT name, email FROM users WHERE role = ? ORDER BY id`,
	counselorProfile:  `SELECT name, wellbeing_answers, companion, companion_answers FROM users WHERE id = ? AND role = ?`,
	update:            `UPDATE users SET name = ?, email = ?, secret = ?, age = ? WHERE id = ?`,
	updateSecret:      `UPDATE users SET secret = ? WHERE id = ?`,
	updateWellbeing:   `UPDATE users SET wellbeing_answers = ? WHERE id = ?`,
	updateCompanion:   `UPDATE users SET companion = ?, companion_answers = ? WHERE id = ?`,
	deleteMoods:       `DELETE FROM mood_entries WHERE user_id = ?`,
	deleteUser:        `DELETE FROM users WHERE id = ?`,
}

// SQLiteRepository is the users.Repository for the local SQLite store.
type SQLiteRepository struct {
	store
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{store{db: db, q: sqliteQueries}}
}
