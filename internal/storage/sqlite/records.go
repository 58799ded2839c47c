package sqlite

import (
	"fmt"
	"time"

	apperrors "github.com/vsukhanov/tracker/internal/errors"
	"github.com/vsukhanov/tracker/internal/models"
)

func (s *Store) RecordExists(habitID, day string) (bool, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM completion_records WHERE habit_id = ? AND day = ?`,
		habitID, day).Scan(&count)
	return count > 0, err
}

func (s *Store) InsertRecord(record models.CompletionRecord) error {
	// The primary key on (habit_id, day) backs up the ledger's
	// existence check.
	result, err := s.db.Exec(`
		INSERT OR IGNORE INTO completion_records (habit_id, day, created_at)
		VALUES (?, ?, ?)`,
		record.HabitID, record.Day, record.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrDuplicateCompletion
	}
	s.hub.Notify()
	return nil
}

func (s *Store) DeleteRecord(habitID, day string) error {
	_, err := s.db.Exec(`
		DELETE FROM completion_records WHERE habit_id = ? AND day = ?`,
		habitID, day)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	s.hub.Notify()
	return nil
}

func (s *Store) CountRecords(habitID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM completion_records WHERE habit_id = ?`,
		habitID).Scan(&count)
	return count, err
}

func (s *Store) CountAllRecords() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM completion_records`).Scan(&count)
	return count, err
}

func (s *Store) CompletedHabitIDs(day string) (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT habit_id FROM completion_records WHERE day = ?`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		completed[id] = true
	}
	return completed, rows.Err()
}

func (s *Store) CountRecordsByHabit() (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT habit_id, COUNT(*) FROM completion_records GROUP BY habit_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

func (s *Store) RecordedDayCounts() (map[string]int, error) {
	rows, err := s.db.Query(`
		SELECT day, COUNT(*) FROM completion_records GROUP BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		counts[day] = count
	}
	return counts, rows.Err()
}
