package models

// MoodEntry is one feeling recorded by a user for a calendar day.
// Date is stored as YYYY-MM-DD text.
type MoodEntry struct {
	ID      int64
	UserID  int64
	Date    string
	Feeling string
}

// MoodRecord is a history row.
type MoodRecord struct {
	Date    string
	Feeling string
}

// MoodCalendar maps day of month (1..31) to the feeling recorded that day.
type MoodCalendar map[int]string
