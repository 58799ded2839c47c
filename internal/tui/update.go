package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vsukhanov/tracker/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case changeMsg:
		m.projection = m.index.Snapshot()
		m.clampSelection()
		return m, m.waitForChange()
	}

	switch m.state {
	case stateHabitForm:
		return m.updateHabitForm(msg)
	case stateSearch:
		return m.updateSearch(msg)
	default:
		return m.updateBoard(msg)
	}
}

func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status = ""

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		m.selected--
		m.clampSelection()

	case key.Matches(keyMsg, m.keys.Down):
		m.selected++
		m.clampSelection()

	case key.Matches(keyMsg, m.keys.PrevDay):
		m.shiftDay(-1)

	case key.Matches(keyMsg, m.keys.NextDay):
		m.shiftDay(1)

	case key.Matches(keyMsg, m.keys.Today):
		m.date = models.Day(time.Now())
		m.applyFilter()

	case key.Matches(keyMsg, m.keys.Search):
		m.state = stateSearch
		m.searchInput.SetValue(m.query)
		m.searchInput.Focus()
		return m, nil

	case key.Matches(keyMsg, m.keys.Filter):
		m.cycleCompletionFilter()
		m.applyFilter()

	case key.Matches(keyMsg, m.keys.Toggle):
		row, ok := m.selectedRow()
		if !ok {
			break
		}
		completed, count, err := m.index.ToggleCompletion(row.HabitID)
		if err != nil {
			m.status = fmt.Sprintf("toggle failed: %v", err)
			break
		}
		if completed {
			m.status = fmt.Sprintf("marked %q (%d total)", row.Name, count)
		} else {
			m.status = fmt.Sprintf("unmarked %q (%d total)", row.Name, count)
		}

	case key.Matches(keyMsg, m.keys.NewHabit):
		return m.openHabitForm("")

	case key.Matches(keyMsg, m.keys.Edit):
		row, ok := m.selectedRow()
		if !ok {
			break
		}
		return m.openHabitForm(row.HabitID)

	case key.Matches(keyMsg, m.keys.Delete):
		row, ok := m.selectedRow()
		if !ok {
			break
		}
		if err := m.store.DeleteHabit(row.HabitID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.status = fmt.Sprintf("deleted %q", row.Name)
		}
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = stateBoard
			m.searchInput.Blur()
			m.query = ""
			m.searchInput.SetValue("")
			m.applyFilter()
			return m, nil
		case tea.KeyEnter:
			m.state = stateBoard
			m.searchInput.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != m.query {
		m.query = value
		m.applyFilter()
	}
	return m, cmd
}

func (m Model) updateHabitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = stateBoard
		m.form = nil
		m.formError = ""
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitHabitForm(); err != nil {
			m.formError = err.Error()
			return m.openHabitFormWith(*m.habitForm)
		}
		m.state = stateBoard
		m.form = nil
		m.formError = ""
	case huh.StateAborted:
		m.state = stateBoard
		m.form = nil
		m.formError = ""
	}
	return m, cmd
}

func (m *Model) shiftDay(days int) {
	t, err := models.ParseDay(m.date)
	if err != nil {
		return
	}
	m.date = models.Day(t.AddDate(0, 0, days))
	m.applyFilter()
}

// cycleCompletionFilter steps the tri-state: all -> completed ->
// uncompleted -> all.
func (m *Model) cycleCompletionFilter() {
	switch {
	case m.completed == nil:
		v := true
		m.completed = &v
	case *m.completed:
		v := false
		m.completed = &v
	default:
		m.completed = nil
	}
}
