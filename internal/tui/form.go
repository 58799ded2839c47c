package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/validation"
)

// openHabitForm prepares the habit form, pre-filled from the habit with
// the given ID when editing, blank when adding.
func (m Model) openHabitForm(habitID string) (tea.Model, tea.Cmd) {
	fm := habitFormModel{Days: scheduleDays(models.EveryDay())}
	if habitID != "" {
		habit, err := m.store.GetHabit(habitID)
		if err != nil {
			m.status = fmt.Sprintf("load habit: %v", err)
			return m, nil
		}
		fm = habitFormModel{
			Name:       habit.Name,
			Emoji:      habit.Emoji,
			Color:      string(habit.Color),
			Days:       scheduleDays(habit.Schedule),
			CategoryID: habit.CategoryID,
		}
	}
	m.editingID = habitID
	return m.openHabitFormWith(fm)
}

func scheduleDays(s models.Schedule) []string {
	days := make([]string, len(s))
	for i, wd := range s {
		days[i] = strings.ToLower(wd.String()[:3])
	}
	return days
}

func (m Model) openHabitFormWith(fm habitFormModel) (tea.Model, tea.Cmd) {
	categories, err := m.store.GetAllCategories()
	if err != nil {
		m.status = fmt.Sprintf("load categories: %v", err)
		return m, nil
	}
	if len(categories) == 0 {
		m.status = "create a category first (tracker category add)"
		return m, nil
	}

	categoryOptions := make([]huh.Option[string], len(categories))
	for i, c := range categories {
		categoryOptions[i] = huh.NewOption(c.Name, c.ID)
	}
	emojiOptions := make([]huh.Option[string], len(models.Emojis))
	for i, e := range models.Emojis {
		emojiOptions[i] = huh.NewOption(e, e)
	}
	colorOptions := make([]huh.Option[string], len(models.AllCardColors))
	for i, c := range models.AllCardColors {
		colorOptions[i] = huh.NewOption(string(c), string(c))
	}
	weekdayOptions := make([]huh.Option[string], 7)
	for i := 0; i < 7; i++ {
		d := time.Weekday(i)
		weekdayOptions[i] = huh.NewOption(d.String(), strings.ToLower(d.String()[:3]))
	}

	fm.Days = append([]string(nil), fm.Days...)
	m.habitForm = &fm

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				CharLimit(validation.MaxNameLength).
				Value(&m.habitForm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Emoji").
				Options(emojiOptions...).
				Value(&m.habitForm.Emoji),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions...).
				Value(&m.habitForm.Color),
			huh.NewMultiSelect[string]().
				Title("Schedule").
				Options(weekdayOptions...).
				Value(&m.habitForm.Days).
				Validate(func(days []string) error {
					if len(days) == 0 {
						return fmt.Errorf("pick at least one day")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions...).
				Value(&m.habitForm.CategoryID),
		),
	).WithTheme(huh.ThemeDracula())

	m.state = stateHabitForm
	return m, m.form.Init()
}

// submitHabitForm validates the form model and persists the habit. The
// store notification re-renders the board.
func (m *Model) submitHabitForm() error {
	schedule, err := models.ParseSchedule(strings.Join(m.habitForm.Days, ","))
	if err != nil {
		return err
	}

	draft := validation.HabitDraft{
		Name:       m.habitForm.Name,
		Color:      models.CardColor(m.habitForm.Color),
		Emoji:      m.habitForm.Emoji,
		Schedule:   schedule,
		CategoryID: m.habitForm.CategoryID,
	}
	if err := validation.ValidateHabitDraft(draft); err != nil {
		return err
	}
	if _, err := m.store.GetCategory(draft.CategoryID); err != nil {
		return err
	}

	if m.editingID != "" {
		habit, err := m.store.GetHabit(m.editingID)
		if err != nil {
			return err
		}
		habit.Name = draft.Name
		habit.Color = draft.Color
		habit.Emoji = draft.Emoji
		habit.Schedule = schedule
		habit.CategoryID = draft.CategoryID
		return m.store.UpdateHabit(habit)
	}

	return m.store.AddHabit(models.Habit{
		ID:         uuid.NewString(),
		Name:       draft.Name,
		Color:      draft.Color,
		Emoji:      draft.Emoji,
		Schedule:   schedule,
		CategoryID: draft.CategoryID,
		CreatedAt:  time.Now().UTC(),
	})
}
