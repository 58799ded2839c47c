package cli

import (
	"fmt"

	"github.com/vsukhanov/tracker/internal/view"
)

type BoardCmd struct {
	Date        string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Search      string `help:"Filter habits by name substring." default:""`
	Completed   bool   `help:"Only habits completed on the date."`
	Uncompleted bool   `help:"Only habits not completed on the date."`
}

// Run prints a one-shot projection of the board for the requested view.
func (c *BoardCmd) Run(ctx *Context) error {
	day, err := ResolveDay(c.Date)
	if err != nil {
		return err
	}
	completed, err := CompletionFlag(c.Completed, c.Uncompleted)
	if err != nil {
		return err
	}
	filter, err := view.NewFilter(day, c.Search, completed)
	if err != nil {
		return err
	}

	proj, err := view.BuildProjection(ctx.Store, filter)
	if err != nil {
		return err
	}

	if len(proj) == 0 {
		fmt.Printf("Nothing scheduled for %s.\n", day)
		return nil
	}

	fmt.Printf("Board for %s (%s):\n", day, filter.Weekday)
	for _, section := range proj {
		fmt.Printf("\n%s\n", section.Name)
		for _, row := range section.Rows {
			status := "[ ]"
			if row.Completed {
				status = "[x]"
			}
			fmt.Printf("  %s %s %s (%d)\n", status, row.Emoji, row.Name, row.CompletionCount)
		}
	}
	return nil
}
