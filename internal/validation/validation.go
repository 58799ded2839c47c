package validation

import (
	"strings"

	"github.com/vsukhanov/tracker/internal/errors"
	"github.com/vsukhanov/tracker/internal/models"
)

// MaxNameLength is the character limit for habit and category names.
const MaxNameLength = 38

// HabitDraft carries the user-supplied fields of a habit create or
// update, before identifiers are assigned.
type HabitDraft struct {
	Name       string
	Emoji      string
	Color      models.CardColor
	Schedule   models.Schedule
	CategoryID string
}

// ValidateHabitDraft checks a draft against the fixed palette, emoji set
// and naming rules. It returns the first violation found so callers can
// surface one actionable message; nothing is written to storage on error.
func ValidateHabitDraft(d HabitDraft) error {
	if err := validateName("name", d.Name); err != nil {
		return err
	}
	if d.Emoji == "" {
		return errors.Validation("emoji", "required")
	}
	if !models.ValidEmoji(d.Emoji) {
		return errors.Validation("emoji", "not in the emoji set")
	}
	if !d.Color.Valid() {
		return errors.Validation("color", "not in the palette")
	}
	if len(d.Schedule) == 0 {
		return errors.Validation("schedule", "at least one weekday required")
	}
	if d.CategoryID == "" {
		return errors.Validation("category", "required")
	}
	return nil
}

// ValidateCategoryName checks a category name against the naming rules.
func ValidateCategoryName(name string) error {
	return validateName("category name", name)
}

func validateName(field, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.Validation(field, "required")
	}
	if len([]rune(trimmed)) > MaxNameLength {
		return errors.Validation(field, "limited to 38 characters")
	}
	return nil
}
