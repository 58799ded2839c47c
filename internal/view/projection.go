package view

import (
	"sort"

	"github.com/mitchellh/hashstructure/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/storage"
)

// Row is the rendering-ready view of one habit under the active filter.
type Row struct {
	HabitID         string           `json:"habit_id"`
	Name            string           `json:"name"`
	Color           models.CardColor `json:"color"`
	Emoji           string           `json:"emoji"`
	Completed       bool             `json:"completed"`
	CompletionCount int              `json:"completion_count"`

	// fingerprint covers every rendering-relevant attribute; the diff
	// uses it to decide whether a surviving row was updated.
	fingerprint uint64
}

// Section is one board section: a category and its passing habits.
type Section struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Rows       []Row  `json:"rows"`
}

// Projection is the ordered, sectioned, filtered view of all habits.
type Projection []Section

// NumberOfItems returns the total row count across sections.
func (p Projection) NumberOfItems() int {
	n := 0
	for _, s := range p {
		n += len(s.Rows)
	}
	return n
}

// BuildProjection reads the board state in one atomic snapshot, applies
// the filter predicate, groups survivors by category, and sorts sections
// and rows deterministically (collated case-insensitive name, identifier
// tie-break). Categories with no passing habits do not appear.
func BuildProjection(store storage.Provider, f Filter) (Projection, error) {
	snap, err := store.Snapshot(f.Date)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(snap.Categories))
	for _, c := range snap.Categories {
		names[c.ID] = c.Name
	}

	grouped := make(map[string][]Row)
	for _, h := range snap.Habits {
		if !f.Matches(h, snap.Completed[h.ID]) {
			continue
		}
		if _, ok := names[h.CategoryID]; !ok {
			// Orphaned habit; leave it off the board rather than
			// invent a section for it.
			continue
		}
		grouped[h.CategoryID] = append(grouped[h.CategoryID], newRow(h, snap.Completed[h.ID], snap.Counts[h.ID]))
	}

	// A Collator buffers comparison state, so each scan gets its own.
	coll := collate.New(language.Und, collate.IgnoreCase)

	proj := make(Projection, 0, len(grouped))
	for categoryID, rows := range grouped {
		sort.Slice(rows, func(i, j int) bool {
			return lessByName(coll, rows[i].Name, rows[j].Name, rows[i].HabitID, rows[j].HabitID)
		})
		proj = append(proj, Section{
			CategoryID: categoryID,
			Name:       names[categoryID],
			Rows:       rows,
		})
	}
	sort.Slice(proj, func(i, j int) bool {
		return lessByName(coll, proj[i].Name, proj[j].Name, proj[i].CategoryID, proj[j].CategoryID)
	})
	return proj, nil
}

func newRow(h models.Habit, completed bool, count int) Row {
	row := Row{
		HabitID:         h.ID,
		Name:            h.Name,
		Color:           h.Color,
		Emoji:           h.Emoji,
		Completed:       completed,
		CompletionCount: count,
	}
	// Hash failures are not possible for a plain struct of scalars; a
	// zero fingerprint would only cause a spurious row update.
	row.fingerprint, _ = hashstructure.Hash(struct {
		Name, Color, Emoji string
		Completed          bool
		Count              int
	}{h.Name, string(h.Color), h.Emoji, completed, count}, hashstructure.FormatV2, nil)
	return row
}

// lessByName orders by collated name comparison with an identifier
// tie-break, so equal names keep a stable, reproducible order across
// recomputations.
func lessByName(coll *collate.Collator, nameA, nameB, idA, idB string) bool {
	if c := coll.CompareString(nameA, nameB); c != 0 {
		return c < 0
	}
	return idA < idB
}
