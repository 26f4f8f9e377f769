package users

import "github.com/dmitrijs2005/safespace/internal/dbx"

const postgresUserColumns = `id, name, email, secret, age, role, wellbeing_answers, companion, companion_answers`

var postgresQueries = queries{
	findByEmail:        `SELECT ` + postgresUserColumns + ` FROM users WHERE email = $1`,
	findByEmailAndRole: `SELECT ` + postgresUserColumns + ` FROM users WHERE email = $1 AND role = $2`,
	findByID:           `SELECT ` + postgresUserColumns + ` FROM users WHERE id = $1`,
	insert: `INSERT INTO users (name, email, secret, age, role, wellbeing_answers, companion, companion_answers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
	listAll:           `SELECT ` + postgresUserColumns + ` FROM users ORDER BY id`,
	listByRole:        `SELECT id, name, age FROM users WHERE role = $1 ORDER BY id`,
	listStaffContacts: `SELECT name, email FROM users WHERE role = $1 ORDER BY id`,
	counselorProfile:  `SELECT name, wellbeing_answers, companion, companion_answers FROM users WHERE id = $1 AND role = $2`,
	update:            `UPDATE users SET name = $1, email = $2, secret = $3, age = $4 WHERE id = $5`,
	updateSecret:      `UPDATE users SET secret = $1 WHERE id = $2`,
	updateWellbeing:   `UPDATE users SET wellbeing_answers = $1 WHERE id = $2`,
	updateCompanion:   `UPDATE users SET companion = $1, companion_answers = $2 WHERE id = $3`,
	deleteMoods:       `DELETE FROM mood_entries WHERE user_id = $1`,
	deleteUser:        `DELETE FROM users WHERE id = $1`,
}

// PostgresRepository is the users.Repository for PostgreSQL (pgx stdlib).
type PostgresRepository struct {
	store
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{store{db: db, q: postgresQueries}}
}
