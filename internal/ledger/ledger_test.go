package ledger

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/vsukhanov/tracker/internal/errors"
	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/storage/sqlite"
)

func setupLedger(t *testing.T) (*Ledger, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.NewMemory()
	if err != nil {
		t.Fatalf("failed to create in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.AddCategory(models.Category{ID: "cat-1", Name: "Health", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("failed to add category: %v", err)
	}
	if err := store.AddHabit(models.Habit{
		ID:         "habit-1",
		Name:       "Run",
		Color:      models.CardColor1,
		Emoji:      models.Emojis[0],
		Schedule:   models.EveryDay(),
		CategoryID: "cat-1",
		CreatedAt:  time.Now(),
	}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	return New(store), store
}

func TestToggleFlipsState(t *testing.T) {
	lg, _ := setupLedger(t)
	const day = "2026-03-09"

	completed, count, err := lg.Toggle("habit-1", day)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !completed || count != 1 {
		t.Errorf("after first toggle: completed=%v count=%d, want true 1", completed, count)
	}

	completed, count, err = lg.Toggle("habit-1", day)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if completed || count != 0 {
		t.Errorf("after second toggle: completed=%v count=%d, want false 0", completed, count)
	}

	// A full cycle leaves no trace.
	is, err := lg.IsCompleted("habit-1", day)
	if err != nil {
		t.Fatalf("IsCompleted: %v", err)
	}
	if is {
		t.Error("habit still completed after toggle pair")
	}
}

func TestToggleIsPerDay(t *testing.T) {
	lg, _ := setupLedger(t)

	if _, _, err := lg.Toggle("habit-1", "2026-03-09"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, count, err := lg.Toggle("habit-1", "2026-03-10"); err != nil || count != 2 {
		t.Fatalf("toggle on second day: count=%d err=%v, want 2 nil", count, err)
	}

	is, err := lg.IsCompleted("habit-1", "2026-03-09")
	if err != nil || !is {
		t.Errorf("first day should stay completed (is=%v err=%v)", is, err)
	}
}

func TestToggleUnknownHabit(t *testing.T) {
	lg, _ := setupLedger(t)
	if _, _, err := lg.Toggle("ghost", "2026-03-09"); !errors.Is(err, apperrors.ErrUnknownHabit) {
		t.Errorf("expected ErrUnknownHabit, got %v", err)
	}
}

func TestCompletedOnAndCounts(t *testing.T) {
	lg, store := setupLedger(t)
	if err := store.AddHabit(models.Habit{
		ID:         "habit-2",
		Name:       "Read",
		Color:      models.CardColor2,
		Emoji:      models.Emojis[1],
		Schedule:   models.EveryDay(),
		CategoryID: "cat-1",
		CreatedAt:  time.Now(),
	}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	for _, day := range []string{"2026-03-09", "2026-03-10"} {
		if _, _, err := lg.Toggle("habit-1", day); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	if _, _, err := lg.Toggle("habit-2", "2026-03-10"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	completed, err := lg.CompletedOn("2026-03-10")
	if err != nil {
		t.Fatalf("CompletedOn: %v", err)
	}
	if len(completed) != 2 {
		t.Errorf("completed = %v, want both habits", completed)
	}

	counts, err := lg.CountsByHabit()
	if err != nil {
		t.Fatalf("CountsByHabit: %v", err)
	}
	if counts["habit-1"] != 2 || counts["habit-2"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
