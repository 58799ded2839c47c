package view

import (
	"reflect"
	"sort"
	"testing"
)

func row(id, name string, completed bool, count int) Row {
	r := Row{HabitID: id, Name: name, Completed: completed, CompletionCount: count}
	// Mirror newRow's fingerprint over the rendering-relevant fields.
	r.fingerprint = testFingerprint(name, completed, count)
	return r
}

func testFingerprint(name string, completed bool, count int) uint64 {
	h := uint64(14695981039346656037)
	for _, b := range []byte(name) {
		h = (h ^ uint64(b)) * 1099511628211
	}
	if completed {
		h = (h ^ 1) * 1099511628211
	}
	return (h ^ uint64(count)) * 1099511628211
}

func section(catID, name string, rows ...Row) Section {
	return Section{CategoryID: catID, Name: name, Rows: rows}
}

// apply replays a change-set against the old projection: row deletions
// (old positions), section deletions, section insertions, row insertions
// (new positions), then in-place updates. The result must equal the new
// projection.
func apply(t *testing.T, old, new Projection, cs ChangeSet) Projection {
	t.Helper()
	if cs.Reset {
		return new
	}

	work := make(Projection, len(old))
	for i, s := range old {
		rows := make([]Row, len(s.Rows))
		copy(rows, s.Rows)
		work[i] = Section{CategoryID: s.CategoryID, Name: s.Name, Rows: rows}
	}

	deletions := append([]ItemRef(nil), cs.DeletedItems...)
	sort.Slice(deletions, func(i, j int) bool {
		if deletions[i].Section != deletions[j].Section {
			return deletions[i].Section > deletions[j].Section
		}
		return deletions[i].Row > deletions[j].Row
	})
	for _, ref := range deletions {
		rows := work[ref.Section].Rows
		work[ref.Section].Rows = append(rows[:ref.Row], rows[ref.Row+1:]...)
	}

	deletedSections := append([]int(nil), cs.DeletedSections...)
	sort.Sort(sort.Reverse(sort.IntSlice(deletedSections)))
	for _, i := range deletedSections {
		work = append(work[:i], work[i+1:]...)
	}

	insertedSections := append([]int(nil), cs.InsertedSections...)
	sort.Ints(insertedSections)
	for _, i := range insertedSections {
		inserted := new[i]
		rows := make([]Row, len(inserted.Rows))
		copy(rows, inserted.Rows)
		inserted.Rows = rows
		work = append(work[:i], append(Projection{inserted}, work[i:]...)...)
	}

	insertions := append([]ItemRef(nil), cs.InsertedItems...)
	sort.Slice(insertions, func(i, j int) bool {
		if insertions[i].Section != insertions[j].Section {
			return insertions[i].Section < insertions[j].Section
		}
		return insertions[i].Row < insertions[j].Row
	})
	for _, ref := range insertions {
		rows := work[ref.Section].Rows
		work[ref.Section].Rows = append(rows[:ref.Row],
			append([]Row{new[ref.Section].Rows[ref.Row]}, rows[ref.Row:]...)...)
	}

	for _, i := range cs.UpdatedSections {
		work[i].Name = new[i].Name
	}
	for _, ref := range cs.UpdatedItems {
		work[ref.Section].Rows[ref.Row] = new[ref.Section].Rows[ref.Row]
	}
	return work
}

func assertApplies(t *testing.T, old, new Projection) ChangeSet {
	t.Helper()
	cs := Diff(old, new)
	got := apply(t, old, new, cs)
	if !reflect.DeepEqual(got, new) {
		t.Fatalf("applying change-set does not reproduce the new projection\nchange-set: %+v\ngot:  %+v\nwant: %+v", cs, got, new)
	}
	return cs
}

func TestDiffIdenticalProjectionsIsEmpty(t *testing.T) {
	p := Projection{
		section("c1", "Health", row("h1", "Run", false, 3), row("h2", "Sleep", true, 10)),
		section("c2", "Work", row("h3", "Plan day", false, 0)),
	}
	cs := Diff(p, p)
	if !cs.Empty() {
		t.Errorf("diff of identical projections should be empty, got %+v", cs)
	}
}

func TestDiffRowInsertAndDelete(t *testing.T) {
	old := Projection{section("c1", "Health", row("h1", "Run", false, 3))}
	new := Projection{section("c1", "Health", row("h1", "Run", false, 3), row("h2", "Sleep", false, 0))}

	cs := assertApplies(t, old, new)
	if len(cs.InsertedItems) != 1 || cs.InsertedItems[0] != (ItemRef{Section: 0, Row: 1}) {
		t.Errorf("inserted items = %+v", cs.InsertedItems)
	}
	if len(cs.DeletedItems) != 0 || len(cs.UpdatedItems) != 0 {
		t.Errorf("unexpected deletions or updates: %+v", cs)
	}

	cs = assertApplies(t, new, old)
	if len(cs.DeletedItems) != 1 || cs.DeletedItems[0] != (ItemRef{Section: 0, Row: 1}) {
		t.Errorf("deleted items = %+v", cs.DeletedItems)
	}
}

func TestDiffRowAttributeChangeIsUpdate(t *testing.T) {
	old := Projection{section("c1", "Health", row("h1", "Run", false, 3))}
	new := Projection{section("c1", "Health", row("h1", "Run", true, 4))}

	cs := assertApplies(t, old, new)
	if len(cs.UpdatedItems) != 1 || cs.UpdatedItems[0] != (ItemRef{Section: 0, Row: 0}) {
		t.Errorf("updated items = %+v", cs.UpdatedItems)
	}
	if len(cs.InsertedItems) != 0 || len(cs.DeletedItems) != 0 {
		t.Errorf("attribute change must not produce moves: %+v", cs)
	}
}

func TestDiffRowRenameKeepingOrderIsUpdate(t *testing.T) {
	old := Projection{section("c1", "Health", row("h1", "Run", false, 3), row("h2", "Sleep", false, 1))}
	new := Projection{section("c1", "Health", row("h1", "Runs", false, 3), row("h2", "Sleep", false, 1))}

	cs := assertApplies(t, old, new)
	if len(cs.UpdatedItems) != 1 || cs.UpdatedItems[0] != (ItemRef{Section: 0, Row: 0}) {
		t.Errorf("updated items = %+v", cs.UpdatedItems)
	}
	if len(cs.InsertedItems) != 0 || len(cs.DeletedItems) != 0 {
		t.Errorf("order-preserving rename must not produce moves: %+v", cs)
	}
}

func TestDiffRowRenameThatReordersIsMove(t *testing.T) {
	old := Projection{section("c1", "Health", row("h1", "Apple", false, 0), row("h2", "Banana", false, 0))}
	// Renaming h1 re-sorts it behind h2.
	new := Projection{section("c1", "Health", row("h2", "Banana", false, 0), row("h1", "Zebra", false, 0))}

	cs := assertApplies(t, old, new)
	if len(cs.DeletedItems) != 1 || len(cs.InsertedItems) != 1 {
		t.Fatalf("reordering rename should be a delete+insert pair, got %+v", cs)
	}
	if cs.DeletedItems[0] != (ItemRef{Section: 0, Row: 0}) {
		t.Errorf("deletion should address the old position, got %+v", cs.DeletedItems[0])
	}
	if cs.InsertedItems[0] != (ItemRef{Section: 0, Row: 1}) {
		t.Errorf("insertion should address the new position, got %+v", cs.InsertedItems[0])
	}
}

func TestDiffSectionRenameKeepingOrderIsUpdate(t *testing.T) {
	old := Projection{
		section("c1", "Health", row("h1", "Run", false, 0)),
		section("c2", "Work", row("h2", "Plan day", false, 0)),
	}
	new := Projection{
		section("c1", "Hobby", row("h1", "Run", false, 0)),
		section("c2", "Work", row("h2", "Plan day", false, 0)),
	}

	cs := assertApplies(t, old, new)
	if len(cs.UpdatedSections) != 1 || cs.UpdatedSections[0] != 0 {
		t.Errorf("updated sections = %v", cs.UpdatedSections)
	}
	if len(cs.InsertedSections) != 0 || len(cs.DeletedSections) != 0 {
		t.Errorf("order-preserving section rename must not move sections: %+v", cs)
	}
}

func TestDiffSectionRenameThatReordersIsMove(t *testing.T) {
	old := Projection{
		section("c1", "Art", row("h1", "Sketch", false, 0)),
		section("c2", "Work", row("h2", "Plan day", false, 0)),
	}
	new := Projection{
		section("c2", "Work", row("h2", "Plan day", false, 0)),
		section("c1", "Zoology", row("h1", "Sketch", false, 0)),
	}

	cs := assertApplies(t, old, new)
	if len(cs.DeletedSections) != 1 || len(cs.InsertedSections) != 1 {
		t.Fatalf("reordering section rename should be a delete+insert pair, got %+v", cs)
	}
}

func TestDiffSectionAppearsAndDisappears(t *testing.T) {
	old := Projection{section("c1", "Health", row("h1", "Run", false, 0))}
	new := Projection{
		section("c1", "Health", row("h1", "Run", false, 0)),
		section("c2", "Work", row("h2", "Plan day", false, 0)),
	}

	cs := assertApplies(t, old, new)
	if len(cs.InsertedSections) != 1 || cs.InsertedSections[0] != 1 {
		t.Errorf("inserted sections = %v", cs.InsertedSections)
	}

	cs = assertApplies(t, new, old)
	if len(cs.DeletedSections) != 1 || cs.DeletedSections[0] != 1 {
		t.Errorf("deleted sections = %v", cs.DeletedSections)
	}
}

func TestDiffMixedChangesApplyCleanly(t *testing.T) {
	old := Projection{
		section("c1", "Health", row("h1", "Run", false, 3), row("h2", "Sleep", true, 9)),
		section("c2", "Work", row("h3", "Plan day", false, 1)),
		section("c3", "Misc", row("h4", "Tidy up", false, 0)),
	}
	new := Projection{
		section("c1", "Health", row("h2", "Sleep", true, 9), row("h5", "Stretch", false, 0)),
		section("c4", "Reading", row("h6", "Novel", false, 2)),
		section("c2", "Work", row("h3", "Plan day", true, 2)),
	}
	assertApplies(t, old, new)
}
