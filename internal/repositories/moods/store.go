package moods

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/safespace/internal/common"
	"github.com/dmitrijs2005/safespace/internal/dbx"
	"github.com/dmitrijs2005/safespace/internal/models"
)

type queries struct {
	insert            string
	findByUserAndDate string
	recent            string
	month             string
	deleteByUser      string
}

type store struct {
	db dbx.DBTX
	q  queries
}

func (r *store) Insert(ctx context.Context, userID int64, date, feeling string) error {
	if _, err := r.db.ExecContext(ctx, r.q.insert, userID, date, feeling); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrDuplicateEntry
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *store) FindByUserAndDate(ctx context.Context, userID int64, date string) (*models.MoodEntry, error) {
	var e models.MoodEntry
	err := r.db.QueryRowContext(ctx, r.q.findByUserAndDate, userID, date).
		Scan(&e.ID, &e.UserID, &e.Date, &e.Feeling)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &e, nil
}

// RecentHistory returns at most limit records, newest date first.
// A non-positive limit means common.RecentHistoryLimit.
func (r *store) RecentHistory(ctx context.Context, userID int64, limit int) ([]models.MoodRecord, error) {
	if limit <= 0 {
		limit = common.RecentHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx, r.q.recent, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.MoodRecord
	for rows.Next() {
		var m models.MoodRecord
		if err := rows.Scan(&m.Date, &m.Feeling); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// MonthlyAggregate maps day of month to feeling for entries dated in the
// given month. Rows are read in insertion order, so a later entry for the
// same day wins. Dates that do not parse are skipped.
func (r *store) MonthlyAggregate(ctx context.Context, userID int64, year, month int) (models.MoodCalendar, error) {
	pattern := fmt.Sprintf("%04d-%02d-%%", year, month)

	rows, err := r.db.QueryContext(ctx, r.q.month, userID, pattern)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	cal := make(models.MoodCalendar)
	for rows.Next() {
		var date, feeling string
		if err := rows.Scan(&date, &feeling); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		d, err := time.Parse(common.DateLayout, date)
		if err != nil {
			continue
		}
		cal[d.Day()] = feeling
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return cal, nil
}

func (r *store) DeleteByUser(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, r.q.deleteByUser, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
