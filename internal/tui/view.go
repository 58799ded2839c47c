package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/view"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.state == stateHabitForm && m.form != nil {
		parts := []string{m.form.View()}
		if m.formError != "" {
			parts = append(parts, statusStyle.Render(m.formError))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	sections := []string{
		m.viewHeader(),
		m.viewFilterLine(),
		m.viewBoard(),
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	title := m.date
	if t, err := models.ParseDay(m.date); err == nil {
		title = t.Format("Monday, Jan 2 2006")
		if m.date == models.Day(time.Now()) {
			title += " (today)"
		}
	}
	return headerStyle.Render(title)
}

func (m Model) viewFilterLine() string {
	var parts []string
	if m.state == stateSearch {
		parts = append(parts, m.searchInput.View())
	} else if m.query != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.query))
	}
	switch {
	case m.completed == nil:
	case *m.completed:
		parts = append(parts, "showing: completed")
	default:
		parts = append(parts, "showing: uncompleted")
	}
	if len(parts) == 0 {
		return ""
	}
	return filterStyle.Render(strings.Join(parts, "  "))
}

func (m Model) viewBoard() string {
	if m.rowCount() == 0 {
		return emptyStyle.Render("Nothing to track. Press n to add a habit.")
	}

	var b strings.Builder
	flat := 0
	for _, section := range m.projection {
		b.WriteString(sectionStyle.Render(section.Name))
		b.WriteString("\n")
		for _, row := range section.Rows {
			b.WriteString(m.renderRow(row, flat == m.selected))
			b.WriteString("\n")
			flat++
		}
	}
	return b.String()
}

func (m Model) renderRow(row view.Row, selected bool) string {
	check := "[ ]"
	if row.Completed {
		check = completedStyle.Render("[x]")
	}
	emoji := lipgloss.NewStyle().
		Foreground(lipgloss.Color(row.Color.Hex())).
		Render(row.Emoji)

	line := fmt.Sprintf("  %s %s %s %s", check, emoji, row.Name,
		countStyle.Render(fmt.Sprintf("(%d)", row.CompletionCount)))
	if selected {
		return selectedRowStyle.Render("> " + line[2:])
	}
	return line
}
