// Package stats derives aggregate completion figures from the store.
package stats

import "github.com/vsukhanov/tracker/internal/storage"

// Summary holds the tracked-habit statistics shown by the stats command
// and the HTTP API.
type Summary struct {
	TrackedHabits    int `json:"tracked_habits"`
	TotalCompletions int `json:"total_completions"`
	// AverageDaily is completions divided by distinct recorded days,
	// rounded down. Days with no completions at all do not count.
	AverageDaily int `json:"average_daily"`
}

type Provider struct {
	store storage.Provider
}

func New(store storage.Provider) *Provider {
	return &Provider{store: store}
}

// Summarize computes the current statistics in three store queries.
func (p *Provider) Summarize() (Summary, error) {
	habits, err := p.store.CountHabits()
	if err != nil {
		return Summary{}, err
	}
	completions, err := p.store.CountAllRecords()
	if err != nil {
		return Summary{}, err
	}
	dayCounts, err := p.store.RecordedDayCounts()
	if err != nil {
		return Summary{}, err
	}

	avg := 0
	if len(dayCounts) > 0 {
		total := 0
		for _, n := range dayCounts {
			total += n
		}
		avg = total / len(dayCounts)
	}

	return Summary{
		TrackedHabits:    habits,
		TotalCompletions: completions,
		AverageDaily:     avg,
	}, nil
}
