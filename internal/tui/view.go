package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kanban-board/internal/board"
)

const defaultColumnWidth = 24

func (m Model) columnWidth() int {
	if m.width <= 0 {
		return defaultColumnWidth
	}
	// two border cells and two padding cells per column
	return max(m.width/len(m.columns)-4, 10)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Kanban Board"))
	if m.searching || m.search.Value() != "" {
		b.WriteString("  " + m.search.View())
	}
	if m.loading {
		b.WriteString("  " + mutedStyle.Render("loading..."))
	}
	b.WriteString("\n")

	cols := make([]string, len(m.columns))
	for i := range m.columns {
		cols[i] = m.renderColumn(i)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")

	modal := m.board.Modal()
	if modal.IsOpen() {
		b.WriteString(m.renderForm(modal))
		b.WriteString("\n")
	}

	if m.status != nil {
		b.WriteString(renderNotice(*m.status))
		b.WriteString("\n")
	}

	bindings := m.keys.boardHelp()
	switch {
	case modal.IsOpen():
		bindings = m.keys.formHelp()
	case m.grab != nil:
		bindings = m.keys.grabHelp()
	}
	b.WriteString(m.help.ShortHelpView(bindings))

	return b.String()
}

func (m Model) renderColumn(i int) string {
	column := m.columns[i]
	tasks := m.visible(i)
	width := m.columnWidth()

	lines := []string{
		headerStyle.Render(column.Title()) + " " + countStyle.Render(fmt.Sprintf("(%d)", len(tasks))),
	}
	for j, task := range tasks {
		line := truncate(task.Title, width-2)
		switch {
		case m.grab != nil && m.grab.taskID == task.ID:
			line = grabbedStyle.Render("≡ " + line)
		case i == m.focus && j == m.cursor[i] && m.grab == nil:
			line = cursorStyle.Render("> " + line)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if m.grab != nil && m.grab.target == i && m.grab.source != i {
		if task, ok := m.board.Task(m.grab.taskID); ok {
			lines = append(lines, grabbedStyle.Render("→ "+truncate(task.Title, width-2)))
		}
	}
	if len(tasks) == 0 {
		lines = append(lines, mutedStyle.Render("  empty"))
	}

	style := columnStyle
	switch {
	case m.grab != nil && m.grab.target == i:
		style = targetColumnStyle
	case m.grab == nil && m.focus == i:
		style = focusedColumnStyle
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderForm(modal board.Modal) string {
	heading := "New task in " + modal.Column.Title()
	if modal.Mode == board.ModalEdit {
		heading = "Edit task"
	}
	return formStyle.Render(headerStyle.Render(heading) + "\n" + m.title.View() + "\n" + m.desc.View())
}

func renderNotice(n board.Notice) string {
	if n.Level == board.LevelError {
		return errorStyle.Render("✗ " + n.Message)
	}
	return successStyle.Render("✓ " + n.Message)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
