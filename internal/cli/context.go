package cli

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/vsukhanov/tracker/internal/errors"
	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/storage"
)

// Context carries the shared dependencies into every command.
type Context struct {
	Store storage.Provider
	Debug bool
}

// ResolveDay validates a --date flag, defaulting to today.
func ResolveDay(date string) (string, error) {
	if date == "" {
		return models.Day(time.Now()), nil
	}
	if _, err := models.ParseDay(date); err != nil {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// CompletionFlag folds the --completed/--uncompleted pair into the
// tri-state filter value.
func CompletionFlag(completed, uncompleted bool) (*bool, error) {
	if completed && uncompleted {
		return nil, fmt.Errorf("--completed and --uncompleted are mutually exclusive")
	}
	if completed {
		v := true
		return &v, nil
	}
	if uncompleted {
		v := false
		return &v, nil
	}
	return nil, nil
}

// FindHabitByName resolves a habit by exact name (case-insensitive).
func FindHabitByName(store storage.Provider, name string) (models.Habit, error) {
	habits, err := store.GetAllHabits()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, name) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q: %w", name, apperrors.ErrUnknownHabit)
}

// FindCategoryByName resolves a category by exact name (case-insensitive).
func FindCategoryByName(store storage.Provider, name string) (models.Category, error) {
	categories, err := store.GetAllCategories()
	if err != nil {
		return models.Category{}, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return models.Category{}, fmt.Errorf("category %q: %w", name, apperrors.ErrUnknownCategory)
}

// ParseColor validates a --color flag ("c1".."c18").
func ParseColor(s string) (models.CardColor, error) {
	color := models.CardColor(strings.ToLower(strings.TrimSpace(s)))
	if !color.Valid() {
		return "", fmt.Errorf("unknown color %q (expected c1..c18)", s)
	}
	return color, nil
}
