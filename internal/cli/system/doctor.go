package system

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/vsukhanov/tracker/internal/cli"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	if others, err := otherTrackerProcesses(); err != nil {
		fmt.Printf("⚠ Process check: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else if others > 0 {
		fmt.Printf("⚠ Process check: %d other tracker instance(s) running\n", others)
		fmt.Printf("   Concurrent writers to the same SQLite file can contend for the lock.\n")
	} else {
		fmt.Printf("✓ Process check: OK\n")
	}

	if hasError {
		return fmt.Errorf("diagnostics reported failures")
	}
	fmt.Println()
	fmt.Println("All checks passed.")
	return nil
}

func otherTrackerProcesses() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, fmt.Errorf("could not list processes: %w", err)
	}

	self := os.Getpid()
	count := 0
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.EqualFold(strings.TrimSuffix(p.Executable(), ".exe"), "tracker") {
			count++
		}
	}
	return count, nil
}
