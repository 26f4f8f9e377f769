package moods

import "github.com/dmitrijs2005/safespace/internal/dbx"

var sqliteQueries = queries{
	insert:            `INSERT INTO mood_entries (user_id, date, feeling) VALUES (?, ?, ?)`,
	findByUserAndDate: `SELECT id, user_id, date, feeling FROM mood_entries WHERE user_id = ? AND date = ? ORDER BY id DESC LIMIT 1`,
	recent:            `SELECT date, feeling FROM mood_entries WHERE user_id = ? ORDER BY date DESC, id DESC LIMIT ?`,
	month:             `SELECT date, feeling FROM mood_entries WHERE user_id = ? AND date LIKE ? ORDER BY id`,
	deleteByUser:      `DELETE FROM mood_entries WHERE user_id = ?`,
}

type SQLiteRepository struct {
	store
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{store{db: db, q: sqliteQueries}}
}
