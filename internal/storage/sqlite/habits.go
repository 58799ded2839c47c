package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/vsukhanov/tracker/internal/errors"
	"github.com/vsukhanov/tracker/internal/models"
)

func (s *Store) AddHabit(habit models.Habit) error {
	_, err := s.db.Exec(`
		INSERT INTO habits (id, name, color, emoji, schedule, category_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.Name, string(habit.Color), habit.Emoji,
		habit.Schedule.String(), habit.CategoryID,
		habit.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert habit: %w", err)
	}
	s.hub.Notify()
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT id, name, color, emoji, schedule, category_id, created_at
		FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, apperrors.ErrUnknownHabit
	}
	return h, err
}

func (s *Store) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
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

func (s *Store) UpdateHabit(habit models.Habit) error {
	result, err := s.db.Exec(`
		UPDATE habits SET name = ?, color = ?, emoji = ?, schedule = ?, category_id = ?
		WHERE id = ?`,
		habit.Name, string(habit.Color), habit.Emoji,
		habit.Schedule.String(), habit.CategoryID, habit.ID)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrUnknownHabit
	}
	s.hub.Notify()
	return nil
}

func (s *Store) DeleteHabit(id string) error {
	// ON DELETE CASCADE removes the habit's completion records.
	result, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrUnknownHabit
	}
	s.hub.Notify()
	return nil
}

func (s *Store) CountHabits() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM habits`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var color, schedule, createdAt string

	if err := row.Scan(&h.ID, &h.Name, &color, &h.Emoji, &schedule, &h.CategoryID, &createdAt); err != nil {
		return models.Habit{}, err
	}

	h.Color = models.CardColor(color)

	sched, err := models.ParseSchedule(schedule)
	if err != nil {
		return models.Habit{}, fmt.Errorf("parse schedule for habit %s: %w", h.ID, err)
	}
	h.Schedule = sched

	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("parse created_at for habit %s: %w", h.ID, err)
	}
	return h, nil
}
