package validation

import (
	"strings"
	"testing"

	"github.com/vsukhanov/tracker/internal/models"
)

func validDraft() HabitDraft {
	return HabitDraft{
		Name:       "Morning run",
		Emoji:      models.Emojis[0],
		Color:      models.CardColor1,
		Schedule:   models.EveryDay(),
		CategoryID: "cat-1",
	}
}

func TestValidateHabitDraft(t *testing.T) {
	if err := ValidateHabitDraft(validDraft()); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*HabitDraft)
	}{
		{"empty name", func(d *HabitDraft) { d.Name = "" }},
		{"whitespace name", func(d *HabitDraft) { d.Name = "   " }},
		{"name over limit", func(d *HabitDraft) { d.Name = strings.Repeat("a", MaxNameLength+1) }},
		{"missing emoji", func(d *HabitDraft) { d.Emoji = "" }},
		{"emoji outside set", func(d *HabitDraft) { d.Emoji = "🚀" }},
		{"unknown color", func(d *HabitDraft) { d.Color = "c99" }},
		{"empty schedule", func(d *HabitDraft) { d.Schedule = nil }},
		{"missing category", func(d *HabitDraft) { d.CategoryID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			if err := ValidateHabitDraft(d); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateHabitDraftNameLimitIsRunes(t *testing.T) {
	d := validDraft()
	// The limit counts characters, not bytes.
	d.Name = strings.Repeat("ё", MaxNameLength)
	if err := ValidateHabitDraft(d); err != nil {
		t.Errorf("38-rune name rejected: %v", err)
	}
	d.Name = strings.Repeat("ё", MaxNameLength+1)
	if err := ValidateHabitDraft(d); err == nil {
		t.Error("39-rune name accepted")
	}
}

func TestValidateCategoryName(t *testing.T) {
	if err := ValidateCategoryName("Health"); err != nil {
		t.Errorf("valid name rejected: %v", err)
	}
	if err := ValidateCategoryName(""); err == nil {
		t.Error("empty name accepted")
	}
	if err := ValidateCategoryName(strings.Repeat("x", MaxNameLength+1)); err == nil {
		t.Error("over-limit name accepted")
	}
}
