package view

import (
	"sync"

	"github.com/vsukhanov/tracker/internal/ledger"
	"github.com/vsukhanov/tracker/internal/logger"
	"github.com/vsukhanov/tracker/internal/storage"
)

// Index owns the current projection. All recomputation triggers (filter
// changes and store change notifications) funnel through one worker
// goroutine, so recomputations never interleave; triggers that arrive
// mid-recomputation coalesce into a single follow-up run, and the final
// filter always wins.
type Index struct {
	store  storage.Provider
	ledger *ledger.Ledger

	mu         sync.Mutex
	filter     Filter
	generation uint64
	projection Projection
	loaded     bool
	callbacks  []func(ChangeSet)

	trigger     chan struct{}
	done        chan struct{}
	stopped     sync.WaitGroup
	unsubscribe func()
	closeOnce   sync.Once
}

// New creates an Index over the store with the given initial filter and
// starts its recomputation worker. The first completed recomputation is
// announced with a Reset change-set. Callers must Close the index.
func New(store storage.Provider, lg *ledger.Ledger, initial Filter) *Index {
	ix := &Index{
		store:   store,
		ledger:  lg,
		filter:  initial,
		trigger: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	ix.unsubscribe = store.Subscribe(ix.Refresh)

	ix.stopped.Add(1)
	go ix.run()
	ix.kick()
	return ix
}

// Close stops the worker and detaches from store notifications.
func (ix *Index) Close() {
	ix.closeOnce.Do(func() {
		ix.unsubscribe()
		close(ix.done)
		ix.stopped.Wait()
	})
}

// SetFilter replaces the active filter and triggers a recomputation.
func (ix *Index) SetFilter(f Filter) {
	ix.mu.Lock()
	ix.filter = f
	ix.generation++
	ix.mu.Unlock()
	ix.kick()
}

// Filter returns the active filter.
func (ix *Index) Filter() Filter {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.filter
}

// Refresh cues a recomputation after an external data change. It never
// blocks; a pending cue absorbs further ones.
func (ix *Index) Refresh() {
	ix.kick()
}

// OnChange registers a callback invoked once per completed recomputation
// that produced a non-trivial change-set. The first load arrives as a
// Reset change-set.
func (ix *Index) OnChange(fn func(ChangeSet)) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.callbacks = append(ix.callbacks, fn)
}

// ToggleCompletion flips the habit's completion state for the active
// filter's date. The resulting recomputation is driven by the store's
// own change notification.
func (ix *Index) ToggleCompletion(habitID string) (completed bool, count int, err error) {
	return ix.ledger.Toggle(habitID, ix.Filter().Date)
}

// NumberOfSections returns the current section count.
func (ix *Index) NumberOfSections() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return len(ix.projection)
}

// NumberOfItems returns the row count of a section, or 0 when the
// section index is out of range.
func (ix *Index) NumberOfItems(section int) int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if section < 0 || section >= len(ix.projection) {
		return 0
	}
	return len(ix.projection[section].Rows)
}

// ItemAt returns the row at the given position.
func (ix *Index) ItemAt(section, row int) (Row, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if section < 0 || section >= len(ix.projection) {
		return Row{}, false
	}
	rows := ix.projection[section].Rows
	if row < 0 || row >= len(rows) {
		return Row{}, false
	}
	return rows[row], true
}

// SectionName returns the display name of a section.
func (ix *Index) SectionName(section int) string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if section < 0 || section >= len(ix.projection) {
		return ""
	}
	return ix.projection[section].Name
}

// Snapshot returns a copy of the current projection.
func (ix *Index) Snapshot() Projection {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	snap := make(Projection, len(ix.projection))
	copy(snap, ix.projection)
	return snap
}

func (ix *Index) kick() {
	select {
	case ix.trigger <- struct{}{}:
	default:
	}
}

func (ix *Index) run() {
	defer ix.stopped.Done()
	for {
		select {
		case <-ix.done:
			return
		case <-ix.trigger:
			ix.recompute()
		}
	}
}

func (ix *Index) recompute() {
	ix.mu.Lock()
	filter := ix.filter
	generation := ix.generation
	ix.mu.Unlock()

	proj, err := BuildProjection(ix.store, filter)
	if err != nil {
		// A failed scan degrades to an empty board for this cycle; the
		// next trigger retries.
		logger.Warn("Projection scan failed", "error", err)
		proj = Projection{}
	}

	ix.mu.Lock()
	if generation != ix.generation {
		// The filter changed while scanning. Discard this stale result;
		// the coalesced trigger for the new filter is already pending.
		ix.mu.Unlock()
		return
	}
	old := ix.projection
	ix.projection = proj

	var cs ChangeSet
	if !ix.loaded {
		ix.loaded = true
		cs = ChangeSet{Reset: true}
	} else {
		cs = Diff(old, proj)
	}
	callbacks := make([]func(ChangeSet), len(ix.callbacks))
	copy(callbacks, ix.callbacks)
	ix.mu.Unlock()

	if cs.Empty() {
		return
	}
	for _, fn := range callbacks {
		fn(cs)
	}
}
