package view

import (
	"testing"
	"time"

	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/storage/sqlite"
)

func TestProjectionOrdersAccentedNamesByCollation(t *testing.T) {
	store, err := sqlite.NewMemory()
	if err != nil {
		t.Fatalf("failed to create in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	categories := []models.Category{
		{ID: "cat-write", Name: "Écriture"},
		{ID: "cat-health", Name: "Health"},
	}
	for _, c := range categories {
		c.CreatedAt = time.Now()
		if err := store.AddCategory(c); err != nil {
			t.Fatalf("failed to add category: %v", err)
		}
	}

	habits := []struct {
		id, name, category string
	}{
		{"h-journal", "Journal", "cat-health"},
		{"h-stretch", "Étirements", "cat-health"},
		{"h-poem", "Poème", "cat-write"},
	}
	for _, h := range habits {
		if err := store.AddHabit(models.Habit{
			ID:         h.id,
			Name:       h.name,
			Color:      models.CardColor1,
			Emoji:      models.Emojis[0],
			Schedule:   models.EveryDay(),
			CategoryID: h.category,
			CreatedAt:  time.Now(),
		}); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
	}

	proj, err := BuildProjection(store, mondayFilter(t, "", nil))
	if err != nil {
		t.Fatalf("BuildProjection: %v", err)
	}

	// Byte order would sort the accented names last; collation slots
	// É before H and J.
	if len(proj) != 2 || proj[0].Name != "Écriture" || proj[1].Name != "Health" {
		t.Fatalf("section order = %+v, want Écriture then Health", proj)
	}
	rows := proj[1].Rows
	if len(rows) != 2 || rows[0].Name != "Étirements" || rows[1].Name != "Journal" {
		t.Errorf("row order = %+v, want Étirements then Journal", rows)
	}
}
