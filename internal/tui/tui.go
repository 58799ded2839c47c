// Package tui is the interactive board: a bubbletea consumer of the
// view.Index that re-renders from change-set notifications.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vsukhanov/tracker/internal/ledger"
	"github.com/vsukhanov/tracker/internal/storage"
	"github.com/vsukhanov/tracker/internal/view"
)

// Run launches the board TUI over the given store and blocks until the
// user quits.
func Run(store storage.Provider) error {
	index := view.New(store, ledger.New(store), view.TodayFilter())
	defer index.Close()

	m := NewModel(store, index)
	index.OnChange(func(cs view.ChangeSet) {
		// Non-blocking: if the UI is behind, the pending change message
		// already forces a snapshot re-read.
		select {
		case m.changes <- cs:
		default:
		}
	})
	// The initial load may have completed before the callback was
	// registered; a seeded reset makes the first frame read the snapshot
	// either way.
	select {
	case m.changes <- view.ChangeSet{Reset: true}:
	default:
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
