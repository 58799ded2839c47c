package models

import "time"

// DayFormat is the canonical civil-day key used for completion records
// and filters. Days are compared as strings, so lexicographic order is
// chronological order.
const DayFormat = "2006-01-02"

// Habit represents a recurring practice tracked on specific weekdays
type Habit struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Color      CardColor `json:"color"`
	Emoji      string    `json:"emoji"`
	Schedule   Schedule  `json:"schedule"`
	CategoryID string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Category groups habits into named board sections
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CompletionRecord is evidence that a habit was performed on a day.
// Identity is the (HabitID, Day) pair; at most one record exists per pair.
type CompletionRecord struct {
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	CreatedAt time.Time `json:"created_at"`
}

// Day truncates t to its civil day key.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay validates and parses a civil day key.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(DayFormat, day)
}
