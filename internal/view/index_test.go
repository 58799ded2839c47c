package view

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vsukhanov/tracker/internal/ledger"
	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/storage"
	"github.com/vsukhanov/tracker/internal/storage/sqlite"
)

func seedStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.NewMemory()
	if err != nil {
		t.Fatalf("failed to create in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	categories := []models.Category{
		{ID: "cat-health", Name: "Health"},
		{ID: "cat-work", Name: "Work"},
	}
	for _, c := range categories {
		c.CreatedAt = time.Now()
		if err := store.AddCategory(c); err != nil {
			t.Fatalf("failed to add category: %v", err)
		}
	}

	habits := []struct {
		id, name, schedule, category string
	}{
		{"h-run", "Run", "daily", "cat-health"},
		{"h-sleep", "Sleep early", "mon,tue,wed,thu,fri", "cat-health"},
		{"h-plan", "Plan day", "mon", "cat-work"},
	}
	for _, h := range habits {
		sched, err := models.ParseSchedule(h.schedule)
		if err != nil {
			t.Fatalf("bad schedule %q: %v", h.schedule, err)
		}
		if err := store.AddHabit(models.Habit{
			ID:         h.id,
			Name:       h.name,
			Color:      models.CardColor1,
			Emoji:      models.Emojis[0],
			Schedule:   sched,
			CategoryID: h.category,
			CreatedAt:  time.Now(),
		}); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
	}
	return store
}

// testIndex builds an Index without the background worker so tests can
// drive recompute synchronously.
func testIndex(store storage.Provider, f Filter) *Index {
	return &Index{
		store:   store,
		ledger:  ledger.New(store),
		filter:  f,
		trigger: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func mondayFilter(t *testing.T, query string, completed *bool) Filter {
	t.Helper()
	f, err := NewFilter("2026-03-09", query, completed)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	return f
}

func TestFirstLoadIsReset(t *testing.T) {
	store := seedStore(t)
	ix := testIndex(store, mondayFilter(t, "", nil))

	var got []ChangeSet
	ix.OnChange(func(cs ChangeSet) { got = append(got, cs) })
	ix.recompute()

	if len(got) != 1 || !got[0].Reset {
		t.Fatalf("first load should announce a Reset change-set, got %+v", got)
	}
	if ix.NumberOfSections() != 2 {
		t.Errorf("sections = %d, want 2", ix.NumberOfSections())
	}
	if n := ix.NumberOfItems(0); n != 2 {
		t.Errorf("Health rows = %d, want 2", n)
	}
	if name := ix.SectionName(1); name != "Work" {
		t.Errorf("second section = %q, want Work", name)
	}
}

func TestRecomputeWithoutChangesStaysSilent(t *testing.T) {
	store := seedStore(t)
	ix := testIndex(store, mondayFilter(t, "", nil))
	ix.recompute()

	calls := 0
	ix.OnChange(func(ChangeSet) { calls++ })
	ix.recompute()
	ix.recompute()

	if calls != 0 {
		t.Errorf("unchanged recomputations fired %d callbacks", calls)
	}
}

func TestFilterChangeNarrowsBoard(t *testing.T) {
	store := seedStore(t)
	ix := testIndex(store, mondayFilter(t, "", nil))
	ix.recompute()

	ix.SetFilter(mondayFilter(t, "sleep", nil))
	ix.recompute()

	snap := ix.Snapshot()
	if len(snap) != 1 || snap[0].Name != "Health" {
		t.Fatalf("snapshot = %+v, want only Health", snap)
	}
	if len(snap[0].Rows) != 1 || snap[0].Rows[0].HabitID != "h-sleep" {
		t.Errorf("rows = %+v, want only h-sleep", snap[0].Rows)
	}
}

func TestScheduleClauseFollowsDate(t *testing.T) {
	store := seedStore(t)
	// 2026-03-14 is a Saturday; only the daily habit is scheduled.
	f, err := NewFilter("2026-03-14", "", nil)
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	ix := testIndex(store, f)
	ix.recompute()

	snap := ix.Snapshot()
	if snap.NumberOfItems() != 1 || snap[0].Rows[0].HabitID != "h-run" {
		t.Errorf("Saturday board = %+v, want only h-run", snap)
	}
}

func TestToggleUnderUncompletedFilterRemovesRow(t *testing.T) {
	store := seedStore(t)
	notDone := false
	ix := testIndex(store, mondayFilter(t, "", &notDone))
	ix.recompute()

	if ix.Snapshot().NumberOfItems() != 3 {
		t.Fatalf("expected all three habits uncompleted initially")
	}

	var got []ChangeSet
	ix.OnChange(func(cs ChangeSet) { got = append(got, cs) })

	if _, _, err := ix.ToggleCompletion("h-plan"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	ix.recompute()

	if len(got) != 1 {
		t.Fatalf("expected one change-set, got %d", len(got))
	}
	cs := got[0]
	// h-plan was the only Work row, so its whole section goes.
	if len(cs.DeletedSections) != 1 {
		t.Errorf("expected the Work section to be deleted, got %+v", cs)
	}
	snap := ix.Snapshot()
	if snap.NumberOfItems() != 2 {
		t.Errorf("board items = %d, want 2", snap.NumberOfItems())
	}
	for _, s := range snap {
		for _, r := range s.Rows {
			if r.HabitID == "h-plan" {
				t.Error("completed habit still on the uncompleted board")
			}
		}
	}
}

func TestCompletionChangesSurfaceAsUpdates(t *testing.T) {
	store := seedStore(t)
	ix := testIndex(store, mondayFilter(t, "", nil))
	ix.recompute()

	var got []ChangeSet
	ix.OnChange(func(cs ChangeSet) { got = append(got, cs) })

	if _, _, err := ix.ToggleCompletion("h-run"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	ix.recompute()

	if len(got) != 1 {
		t.Fatalf("expected one change-set, got %d", len(got))
	}
	cs := got[0]
	if len(cs.UpdatedItems) != 1 || len(cs.InsertedItems) != 0 || len(cs.DeletedItems) != 0 {
		t.Errorf("toggle under an unrestricted filter should be a pure update, got %+v", cs)
	}

	row, ok := ix.ItemAt(cs.UpdatedItems[0].Section, cs.UpdatedItems[0].Row)
	if !ok || row.HabitID != "h-run" || !row.Completed || row.CompletionCount != 1 {
		t.Errorf("updated row = %+v", row)
	}
}

func TestLatestFilterWins(t *testing.T) {
	store := seedStore(t)
	ix := testIndex(store, mondayFilter(t, "", nil))
	ix.recompute()

	// Two filter changes back to back; only the final one may shape the
	// projection once the dust settles.
	ix.SetFilter(mondayFilter(t, "plan", nil))
	ix.SetFilter(mondayFilter(t, "run", nil))
	ix.recompute()

	snap := ix.Snapshot()
	if snap.NumberOfItems() != 1 || snap[0].Rows[0].HabitID != "h-run" {
		t.Errorf("snapshot = %+v, want only h-run", snap)
	}
	if !ix.Filter().Equal(mondayFilter(t, "run", nil)) {
		t.Errorf("active filter = %+v", ix.Filter())
	}
}

// flakyStore wraps a real store and fails Snapshot on demand.
type flakyStore struct {
	storage.Provider
	mu   sync.Mutex
	down bool
}

func (f *flakyStore) setDown(down bool) {
	f.mu.Lock()
	f.down = down
	f.mu.Unlock()
}

func (f *flakyStore) Snapshot(day string) (storage.BoardSnapshot, error) {
	f.mu.Lock()
	down := f.down
	f.mu.Unlock()
	if down {
		return storage.BoardSnapshot{}, errors.New("database is locked")
	}
	return f.Provider.Snapshot(day)
}

func TestScanFailureDegradesToEmptyBoard(t *testing.T) {
	flaky := &flakyStore{Provider: seedStore(t)}
	ix := testIndex(flaky, mondayFilter(t, "", nil))
	ix.recompute()

	if ix.Snapshot().NumberOfItems() != 3 {
		t.Fatalf("expected a populated board before the failure")
	}

	var got []ChangeSet
	ix.OnChange(func(cs ChangeSet) { got = append(got, cs) })

	flaky.setDown(true)
	ix.recompute()

	if n := ix.NumberOfSections(); n != 0 {
		t.Fatalf("board has %d sections after a failed scan, want 0", n)
	}
	if len(got) != 1 || len(got[0].DeletedSections) != 2 || got[0].Reset {
		t.Errorf("expected a change-set deleting both sections, got %+v", got)
	}

	// The next trigger retries against the recovered store.
	flaky.setDown(false)
	ix.recompute()

	if ix.Snapshot().NumberOfItems() != 3 {
		t.Errorf("board items = %d after recovery, want 3", ix.Snapshot().NumberOfItems())
	}
	if len(got) != 2 || len(got[1].InsertedSections) != 2 {
		t.Errorf("expected a change-set restoring both sections, got %+v", got)
	}
}

func TestWorkerDeliversChangesEndToEnd(t *testing.T) {
	store := seedStore(t)
	changes := make(chan ChangeSet, 8)

	ix := New(store, ledger.New(store), mondayFilter(t, "", nil))
	defer ix.Close()
	ix.OnChange(func(cs ChangeSet) { changes <- cs })

	ix.SetFilter(mondayFilter(t, "sleep", nil))
	waitForItems(t, ix, 1)

	if err := store.AddHabit(models.Habit{
		ID:         "h-nap",
		Name:       "Afternoon sleep",
		Color:      models.CardColor2,
		Emoji:      models.Emojis[1],
		Schedule:   models.EveryDay(),
		CategoryID: "cat-health",
		CreatedAt:  time.Now(),
	}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	waitForItems(t, ix, 2)

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Error("no change-set delivered for the store mutation")
	}
}

// waitForItems polls until the index settles on the expected row count.
func waitForItems(t *testing.T, ix *Index, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ix.Snapshot().NumberOfItems() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("index never reached %d items (have %d)", want, ix.Snapshot().NumberOfItems())
}
