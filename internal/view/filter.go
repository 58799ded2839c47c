// Package view maintains the live filtered, sectioned projection of
// habits and computes minimal change-sets between recomputations.
package view

import (
	"strings"
	"time"

	"github.com/vsukhanov/tracker/internal/models"
)

// Filter describes the active board view: a civil day, the weekday
// derived from it, an optional case-insensitive name query, and an
// optional required completion state.
type Filter struct {
	Date      string
	Weekday   time.Weekday
	Query     string
	Completed *bool
}

// NewFilter builds a filter for the given civil day. The weekday is
// always derived from the date here so the two can never diverge.
func NewFilter(date, query string, completed *bool) (Filter, error) {
	t, err := models.ParseDay(date)
	if err != nil {
		return Filter{}, err
	}
	return Filter{
		Date:      date,
		Weekday:   t.Weekday(),
		Query:     query,
		Completed: completed,
	}, nil
}

// TodayFilter returns an unrestricted filter for the current day.
func TodayFilter() Filter {
	now := time.Now()
	return Filter{Date: models.Day(now), Weekday: now.Weekday()}
}

// Matches applies the composite predicate: the habit is scheduled on the
// filter's weekday, its name contains the query (empty query passes
// everything), and its completion state matches the tri-state flag.
func (f Filter) Matches(h models.Habit, completed bool) bool {
	if !h.Schedule.Contains(f.Weekday) {
		return false
	}
	if f.Query != "" && !strings.Contains(strings.ToLower(h.Name), strings.ToLower(f.Query)) {
		return false
	}
	if f.Completed != nil && completed != *f.Completed {
		return false
	}
	return true
}

// Equal reports whether two filters describe the same view.
func (f Filter) Equal(o Filter) bool {
	if f.Date != o.Date || f.Query != o.Query {
		return false
	}
	if (f.Completed == nil) != (o.Completed == nil) {
		return false
	}
	return f.Completed == nil || *f.Completed == *o.Completed
}
