package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/storage"
	"github.com/vsukhanov/tracker/internal/view"
)

type sessionState int

const (
	stateBoard sessionState = iota
	stateSearch
	stateHabitForm
)

// changeMsg carries a change-set from the view.Index into the tea loop.
type changeMsg view.ChangeSet

// habitFormModel backs the huh form fields. It lives behind a pointer so
// the form's value bindings stay valid across model copies.
type habitFormModel struct {
	Name       string
	Emoji      string
	Color      string
	Days       []string
	CategoryID string
}

type Model struct {
	store storage.Provider
	index *view.Index

	changes    chan view.ChangeSet
	projection view.Projection

	date      string
	query     string
	completed *bool

	state       sessionState
	selected    int
	searchInput textinput.Model
	form        *huh.Form
	habitForm   *habitFormModel
	editingID   string

	keys      KeyMap
	help      help.Model
	status    string
	formError string
	width     int
	height    int
	quitting  bool
}

func NewModel(store storage.Provider, index *view.Index) Model {
	input := textinput.New()
	input.Placeholder = "search habits"
	input.CharLimit = 38

	return Model{
		store:       store,
		index:       index,
		changes:     make(chan view.ChangeSet, 1),
		date:        models.Day(time.Now()),
		searchInput: input,
		keys:        DefaultKeyMap(),
		help:        help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the next change-set from the index.
func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		return changeMsg(<-m.changes)
	}
}

// applyFilter pushes the current date/query/completion tuple to the
// index; the resulting change-set comes back through the changes channel.
func (m *Model) applyFilter() {
	filter, err := view.NewFilter(m.date, m.query, m.completed)
	if err != nil {
		m.status = "invalid date"
		return
	}
	m.index.SetFilter(filter)
}

// rowCount is the number of rows across all sections.
func (m Model) rowCount() int {
	return m.projection.NumberOfItems()
}

// selectedRow maps the flat selection cursor back to a row.
func (m Model) selectedRow() (view.Row, bool) {
	i := m.selected
	for _, section := range m.projection {
		if i < len(section.Rows) {
			return section.Rows[i], true
		}
		i -= len(section.Rows)
	}
	return view.Row{}, false
}

func (m *Model) clampSelection() {
	if max := m.rowCount() - 1; m.selected > max {
		m.selected = max
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
