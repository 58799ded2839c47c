package storage

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/vsukhanov/tracker/internal/models"
)

// Provider is the entity store contract the rest of the application is
// written against. Implementations must make every mutation atomic with
// respect to concurrent scans and fire change notifications only after a
// mutation has committed.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	// DeleteHabit removes the habit and cascades deletion of its
	// completion records.
	DeleteHabit(id string) error
	CountHabits() (int, error)

	// Categories
	AddCategory(models.Category) error
	GetCategory(id string) (models.Category, error)
	GetAllCategories() ([]models.Category, error)
	RenameCategory(id, name string) error
	// DeleteCategory fails with errors.ErrCategoryNotEmpty while the
	// category still owns habits.
	DeleteCategory(id string) error

	// Completion records
	RecordExists(habitID, day string) (bool, error)
	InsertRecord(models.CompletionRecord) error
	DeleteRecord(habitID, day string) error
	CountRecords(habitID string) (int, error)
	CountAllRecords() (int, error)
	// CompletedHabitIDs returns the set of habit IDs with a record on day.
	CompletedHabitIDs(day string) (map[string]bool, error)
	// CountRecordsByHabit returns per-habit completion totals.
	CountRecordsByHabit() (map[string]int, error)
	// RecordedDayCounts returns completions grouped by day.
	RecordedDayCounts() (map[string]int, error)

	// Snapshot reads the full board state in one atomic read, so a
	// mutation committing mid-scan can never tear the result.
	Snapshot(day string) (BoardSnapshot, error)

	// Subscribe registers a callback fired asynchronously after each
	// committed mutation. The returned function cancels the subscription.
	Subscribe(fn func()) (cancel func())

	GetConfigPath() string
}

// BoardSnapshot is everything a projection scan needs, read as of a
// single point in time.
type BoardSnapshot struct {
	Habits     []models.Habit
	Categories []models.Category
	// Completed is the set of habit IDs with a record on the requested day.
	Completed map[string]bool
	// Counts holds per-habit completion totals across all days.
	Counts map[string]int
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Credentials belong in the environment,
// .pgpass, or the OS keyring.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}

	// DSN format: space-separated key=value pairs.
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}

// DefaultDBPath returns the default SQLite database location under the
// user config directory.
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "tracker", "tracker.db"), nil
}
