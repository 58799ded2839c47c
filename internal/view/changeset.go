package view

// ItemRef addresses one row on the board. Deletions refer to positions
// in the previous projection; insertions and updates refer to positions
// in the new one.
type ItemRef struct {
	Section int `json:"section"`
	Row     int `json:"row"`
}

// ChangeSet is the minimal difference between two consecutive
// projections. A consumer applies section and item deletions against its
// old state, then insertions, then in-place updates, and ends up exactly
// at the new projection. Reset signals that the diff is not expressible
// incrementally (first load) and the consumer should reload.
type ChangeSet struct {
	Reset bool `json:"reset"`

	InsertedItems []ItemRef `json:"inserted_items,omitempty"`
	DeletedItems  []ItemRef `json:"deleted_items,omitempty"`
	UpdatedItems  []ItemRef `json:"updated_items,omitempty"`

	InsertedSections []int `json:"inserted_sections,omitempty"`
	DeletedSections  []int `json:"deleted_sections,omitempty"`
	UpdatedSections  []int `json:"updated_sections,omitempty"`
}

// Empty reports whether the change-set carries no changes at all.
func (c ChangeSet) Empty() bool {
	return !c.Reset &&
		len(c.InsertedItems) == 0 && len(c.DeletedItems) == 0 && len(c.UpdatedItems) == 0 &&
		len(c.InsertedSections) == 0 && len(c.DeletedSections) == 0 && len(c.UpdatedSections) == 0
}

// Diff compares two projections by stable identity keys (category IDs
// for sections, habit IDs for rows) and produces a minimal change-set.
//
// Sections and rows that survive but change their relative order (a
// rename that re-sorts them) are reported as delete+insert pairs, the
// same way a moved row is; surviving entries that keep their order but
// change a rendering-relevant attribute are reported as updates. Running
// Diff over two identical projections yields an empty change-set.
func Diff(old, new Projection) ChangeSet {
	var cs ChangeSet

	oldIDs := make([]string, len(old))
	oldIndex := make(map[string]int, len(old))
	for i, s := range old {
		oldIDs[i] = s.CategoryID
		oldIndex[s.CategoryID] = i
	}
	newIDs := make([]string, len(new))
	newIndex := make(map[string]int, len(new))
	for i, s := range new {
		newIDs[i] = s.CategoryID
		newIndex[s.CategoryID] = i
	}

	// Sections that keep their relative order among survivors stay in
	// place once pure deletions and insertions are applied; everything
	// else has to move.
	stable := stableKeys(oldIDs, newIDs)

	for i, s := range old {
		if _, survives := newIndex[s.CategoryID]; !survives {
			cs.DeletedSections = append(cs.DeletedSections, i)
		} else if !stable[s.CategoryID] {
			cs.DeletedSections = append(cs.DeletedSections, i)
		}
	}
	for i, s := range new {
		if _, survived := oldIndex[s.CategoryID]; !survived {
			cs.InsertedSections = append(cs.InsertedSections, i)
		} else if !stable[s.CategoryID] {
			cs.InsertedSections = append(cs.InsertedSections, i)
		}
	}

	for newSec, s := range new {
		if !stable[s.CategoryID] {
			continue
		}
		oldSec := oldIndex[s.CategoryID]
		if old[oldSec].Name != s.Name {
			cs.UpdatedSections = append(cs.UpdatedSections, newSec)
		}
		diffRows(&cs, old[oldSec].Rows, s.Rows, oldSec, newSec)
	}

	return cs
}

func diffRows(cs *ChangeSet, oldRows, newRows []Row, oldSec, newSec int) {
	oldIDs := make([]string, len(oldRows))
	oldIndex := make(map[string]int, len(oldRows))
	for i, r := range oldRows {
		oldIDs[i] = r.HabitID
		oldIndex[r.HabitID] = i
	}
	newIDs := make([]string, len(newRows))
	newIndex := make(map[string]int, len(newRows))
	for i, r := range newRows {
		newIDs[i] = r.HabitID
		newIndex[r.HabitID] = i
	}

	stable := stableKeys(oldIDs, newIDs)

	for i, r := range oldRows {
		if _, survives := newIndex[r.HabitID]; !survives || !stable[r.HabitID] {
			cs.DeletedItems = append(cs.DeletedItems, ItemRef{Section: oldSec, Row: i})
		}
	}
	for i, r := range newRows {
		if _, survived := oldIndex[r.HabitID]; !survived || !stable[r.HabitID] {
			cs.InsertedItems = append(cs.InsertedItems, ItemRef{Section: newSec, Row: i})
			continue
		}
		if oldRows[oldIndex[r.HabitID]].fingerprint != r.fingerprint {
			cs.UpdatedItems = append(cs.UpdatedItems, ItemRef{Section: newSec, Row: i})
		}
	}
}

// stableKeys returns the keys whose relative order is unchanged between
// the two sequences: the longest common subsequence of the survivors.
func stableKeys(oldIDs, newIDs []string) map[string]bool {
	oldSet := make(map[string]bool, len(oldIDs))
	for _, id := range oldIDs {
		oldSet[id] = true
	}
	newSet := make(map[string]bool, len(newIDs))
	for _, id := range newIDs {
		newSet[id] = true
	}

	var a, b []string
	for _, id := range oldIDs {
		if newSet[id] {
			a = append(a, id)
		}
	}
	for _, id := range newIDs {
		if oldSet[id] {
			b = append(b, id)
		}
	}

	// Classic LCS table; survivor counts are small (board-sized).
	m, n := len(a), len(b)
	table := make([][]int, m+1)
	for i := range table {
		table[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else if table[i+1][j] >= table[i][j+1] {
				table[i][j] = table[i+1][j]
			} else {
				table[i][j] = table[i][j+1]
			}
		}
	}

	stable := make(map[string]bool)
	for i, j := 0, 0; i < m && j < n; {
		switch {
		case a[i] == b[j]:
			stable[a[i]] = true
			i++
			j++
		case table[i+1][j] >= table[i][j+1]:
			i++
		default:
			j++
		}
	}
	return stable
}
