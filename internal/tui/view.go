package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JamesPrial/todo-notes/internal/task"
)

var (
	colorPrimary   = lipgloss.Color("205")
	colorSecondary = lipgloss.Color("241")
	colorSuccess   = lipgloss.Color("42")
	colorError     = lipgloss.Color("160")

	styleTitle     = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleSubtle    = lipgloss.NewStyle().Foreground(colorSecondary)
	styleDone      = lipgloss.NewStyle().Foreground(colorSecondary).Strikethrough(true)
	styleCursor    = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleTabActive = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Underline(true)
	styleTab       = lipgloss.NewStyle().Foreground(colorSecondary)
	styleError     = lipgloss.NewStyle().Foreground(colorError)
	styleCheck     = lipgloss.NewStyle().Foreground(colorSuccess)

	stylePopup = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Notes"))
	b.WriteString("  ")
	b.WriteString(m.filterTabs())
	b.WriteString("\n")

	if m.mode == modeSearch || m.state.Search != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.proj.Empty.Message(m.locale) != "" {
		b.WriteString(styleSubtle.Render(m.proj.Empty.Message(m.locale)))
		b.WriteString("\n")
	}
	for i, t := range m.proj.Tasks {
		b.WriteString(m.renderRow(i, t))
		b.WriteString("\n")
	}

	if m.mode == modeCompose {
		b.WriteString("\n")
		b.WriteString(stylePopup.Render("New task\n" + m.compose.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		if m.statusErr {
			b.WriteString(styleError.Render(m.status))
		} else {
			b.WriteString(m.status)
		}
		b.WriteString("\n")
	}
	b.WriteString(styleSubtle.Render(m.helpLine()))
	b.WriteString("\n")

	return b.String()
}

func (m *Model) filterTabs() string {
	tabs := make([]string, 0, len(task.Filters))
	for i, f := range task.Filters {
		label := string(rune('1'+i)) + " " + f.Label()
		if f == m.state.Filter {
			tabs = append(tabs, styleTabActive.Render(label))
		} else {
			tabs = append(tabs, styleTab.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

func (m *Model) renderRow(i int, t task.Task) string {
	prefix := "  "
	if i == m.cursor && m.mode != modeSearch {
		prefix = styleCursor.Render("> ")
	}

	check := "[ ]"
	if t.Completed {
		check = styleCheck.Render("[x]")
	}

	if m.mode == modeEdit && m.session != nil && m.session.ID == t.ID {
		return prefix + check + " " + m.editor.View()
	}

	text := t.Text
	if t.Completed {
		text = styleDone.Render(text)
	}
	return prefix + check + " " + text
}

func (m *Model) helpLine() string {
	switch m.mode {
	case modeCompose:
		return "enter add • esc cancel"
	case modeEdit:
		return "enter save • esc cancel • tab/↑/↓ save and move"
	case modeSearch:
		return "type to filter • enter done • esc clear"
	}

	parts := make([]string, 0, len(keys.helpBindings()))
	for _, kb := range keys.helpBindings() {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
