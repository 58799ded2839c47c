package cli

import (
	"fmt"

	"github.com/vsukhanov/tracker/internal/stats"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	summary, err := stats.New(ctx.Store).Summarize()
	if err != nil {
		return err
	}

	fmt.Printf("Tracked habits:    %d\n", summary.TrackedHabits)
	fmt.Printf("Total completions: %d\n", summary.TotalCompletions)
	fmt.Printf("Average per day:   %d\n", summary.AverageDaily)
	return nil
}
