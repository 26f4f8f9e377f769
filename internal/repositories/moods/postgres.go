package moods

import "github.com/dmitrijs2005/safespace/internal/dbx"

var postgresQueries = queries{
	insert:            `INSERT INTO mood_entries (user_id, date, feeling) VALUES ($1, $2, $3)`,
	findByUserAndDate: `SELECT id, user_id, date, feeling FROM mood_entries WHERE user_id = $1 AND date = $2 ORDER BY id DESC LIMIT 1`,
	recent:            `SELECT date, feeling FROM mood_entries WHERE user_id = $1 ORDER BY date DESC, id DESC LIMIT $2`,
	month:             `SELECT date, feeling FROM mood_entries WHERE user_id = $1 AND date LIKE $2 ORDER BY id`,
	deleteByUser:      `DELETE FROM mood_entries WHERE user_id = $1`,
}

type PostgresRepository struct {
	store
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{store{db: db, q: postgresQueries}}
}
