// Package ledger answers completion queries and owns the toggle
// read-modify-write, keeping the at-most-one-record-per-(habit, day)
// invariant.
package ledger

import (
	"time"

	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/storage"
)

type Ledger struct {
	store storage.Provider
}

func New(store storage.Provider) *Ledger {
	return &Ledger{store: store}
}

// IsCompleted reports whether habitID has a completion record for day.
func (l *Ledger) IsCompleted(habitID, day string) (bool, error) {
	return l.store.RecordExists(habitID, day)
}

// Count returns the habit's total completion count across all days.
func (l *Ledger) Count(habitID string) (int, error) {
	return l.store.CountRecords(habitID)
}

// CompletedOn returns the set of habit IDs completed on day.
func (l *Ledger) CompletedOn(day string) (map[string]bool, error) {
	return l.store.CompletedHabitIDs(day)
}

// CountsByHabit returns per-habit completion totals in one query.
func (l *Ledger) CountsByHabit() (map[string]int, error) {
	return l.store.CountRecordsByHabit()
}

// Toggle flips the completion state of habitID for day. It deletes an
// existing record, or verifies the habit and inserts one. The returned
// state and count are read back from the store so no local counters can
// drift.
func (l *Ledger) Toggle(habitID, day string) (completed bool, count int, err error) {
	exists, err := l.store.RecordExists(habitID, day)
	if err != nil {
		return false, 0, err
	}

	if exists {
		if err := l.store.DeleteRecord(habitID, day); err != nil {
			return false, 0, err
		}
	} else {
		// Reject toggles for habits that no longer exist before
		// writing anything.
		if _, err := l.store.GetHabit(habitID); err != nil {
			return false, 0, err
		}
		record := models.CompletionRecord{
			HabitID:   habitID,
			Day:       day,
			CreatedAt: time.Now(),
		}
		if err := l.store.InsertRecord(record); err != nil {
			return false, 0, err
		}
	}

	completed, err = l.store.RecordExists(habitID, day)
	if err != nil {
		return false, 0, err
	}
	count, err = l.store.CountRecords(habitID)
	if err != nil {
		return false, 0, err
	}
	return completed, count, nil
}
