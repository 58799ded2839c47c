package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/storage"
)

// Snapshot reads habits, categories, the day's completed set, and the
// per-habit totals in one repeatable-read transaction, so a mutation
// committing mid-scan cannot tear the result.
func (s *Store) Snapshot(day string) (storage.BoardSnapshot, error) {
	tx, err := s.db.BeginTx(context.Background(), &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return storage.BoardSnapshot{}, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	var snap storage.BoardSnapshot
	if snap.Habits, err = snapshotHabits(tx); err != nil {
		return storage.BoardSnapshot{}, err
	}
	if snap.Categories, err = snapshotCategories(tx); err != nil {
		return storage.BoardSnapshot{}, err
	}
	if snap.Completed, err = snapshotCompleted(tx, day); err != nil {
		return storage.BoardSnapshot{}, err
	}
	if snap.Counts, err = snapshotCounts(tx); err != nil {
		return storage.BoardSnapshot{}, err
	}

	if err := tx.Commit(); err != nil {
		return storage.BoardSnapshot{}, fmt.Errorf("commit snapshot: %w", err)
	}
	return snap, nil
}

func snapshotHabits(tx *sql.Tx) ([]models.Habit, error) {
	rows, err := tx.Query(`
		SELECT id, name, color, emoji, schedule, category_id, created_at
		FROM habits ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func snapshotCategories(tx *sql.Tx) ([]models.Category, error) {
	rows, err := tx.Query(`SELECT id, name, created_at FROM categories ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func snapshotCompleted(tx *sql.Tx, day string) (map[string]bool, error) {
	rows, err := tx.Query(`SELECT habit_id FROM completion_records WHERE day = $1`, day)
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

func snapshotCounts(tx *sql.Tx) (map[string]int, error) {
	rows, err := tx.Query(`
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
