package habits

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vsukhanov/tracker/internal/cli"
	"github.com/vsukhanov/tracker/internal/ledger"
	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion history."`
	Toggle HabitToggleCmd `cmd:"" help:"Toggle a habit's completion for a day."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Schedule string `required:"" help:"Weekdays, e.g. 'mon,wed,fri' or 'daily'."`
	Emoji    string `required:"" help:"Card emoji."`
	Color    string `required:"" help:"Card color (c1..c18)."`
	Category string `required:"" help:"Category name (must exist)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	schedule, err := models.ParseSchedule(c.Schedule)
	if err != nil {
		return err
	}
	color, err := cli.ParseColor(c.Color)
	if err != nil {
		return err
	}
	category, err := cli.FindCategoryByName(ctx.Store, c.Category)
	if err != nil {
		return err
	}

	draft := validation.HabitDraft{
		Name:       c.Name,
		Emoji:      c.Emoji,
		Color:      color,
		Schedule:   schedule,
		CategoryID: category.ID,
	}
	if err := validation.ValidateHabitDraft(draft); err != nil {
		return err
	}

	habit := models.Habit{
		ID:         uuid.New().String(),
		Name:       c.Name,
		Color:      color,
		Emoji:      c.Emoji,
		Schedule:   schedule,
		CategoryID: category.ID,
		CreatedAt:  time.Now(),
	}
	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s %s (%s)\n", habit.Emoji, habit.Name, habit.Schedule)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	categories, err := ctx.Store.GetAllCategories()
	if err != nil {
		return err
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	for _, h := range habits {
		fmt.Printf("%s %s  [%s]  %s\n", h.Emoji, h.Name, h.Schedule, names[h.CategoryID])
	}
	return nil
}

type HabitEditCmd struct {
	Name     string `arg:"" help:"Current habit name."`
	Rename   string `help:"New name." default:""`
	Schedule string `help:"New weekday schedule." default:""`
	Emoji    string `help:"New card emoji." default:""`
	Color    string `help:"New card color (c1..c18)." default:""`
	Category string `help:"New category name." default:""`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	habit, err := cli.FindHabitByName(ctx.Store, c.Name)
	if err != nil {
		return err
	}

	if c.Rename != "" {
		habit.Name = c.Rename
	}
	if c.Schedule != "" {
		schedule, err := models.ParseSchedule(c.Schedule)
		if err != nil {
			return err
		}
		habit.Schedule = schedule
	}
	if c.Emoji != "" {
		habit.Emoji = c.Emoji
	}
	if c.Color != "" {
		color, err := cli.ParseColor(c.Color)
		if err != nil {
			return err
		}
		habit.Color = color
	}
	if c.Category != "" {
		category, err := cli.FindCategoryByName(ctx.Store, c.Category)
		if err != nil {
			return err
		}
		habit.CategoryID = category.ID
	}

	draft := validation.HabitDraft{
		Name:       habit.Name,
		Emoji:      habit.Emoji,
		Color:      habit.Color,
		Schedule:   habit.Schedule,
		CategoryID: habit.CategoryID,
	}
	if err := validation.ValidateHabitDraft(draft); err != nil {
		return err
	}

	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := cli.FindHabitByName(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	habit, err := cli.FindHabitByName(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	day, err := cli.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	completed, count, err := ledger.New(ctx.Store).Toggle(habit.ID, day)
	if err != nil {
		return err
	}

	if completed {
		fmt.Printf("Marked %q for %s (%d total)\n", habit.Name, day, count)
	} else {
		fmt.Printf("Unmarked %q for %s (%d total)\n", habit.Name, day, count)
	}
	return nil
}
