// Package moods persists the daily mood log. Dates are YYYY-MM-DD strings;
// the store itself does not enforce one entry per day, the facade checks
// first and a unique (user_id, date) index backs it up.
package moods

import (
	"context"

	"github.com/dmitrijs2005/safespace/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, userID int64, date, feeling string) error
	FindByUserAndDate(ctx context.Context, userID int64, date string) (*models.MoodEntry, error)
	RecentHistory(ctx context.Context, userID int64, limit int) ([]models.MoodRecord, error)
	MonthlyAggregate(ctx context.Context, userID int64, year, month int) (models.MoodCalendar, error)
	DeleteByUser(ctx context.Context, userID int64) error
}
