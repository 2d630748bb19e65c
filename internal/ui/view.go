package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/touch-widgets/internal/format/table"
	"github.com/atomicstack/touch-widgets/internal/scene"
	"github.com/atomicstack/touch-widgets/internal/wire"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	lines := []string{m.canvas.String(), m.statusLine()}
	lines = append(lines, m.historyLines()...)
	return strings.Join(lines, "\n")
}

func (m *Model) statusLine() string {
	page := "no page"
	if p := m.scene.Page(); p != wire.None {
		page = fmt.Sprintf("page %d/%d", p+1, m.scene.Pages())
	}
	segments := []string{render(styles.StatusPage, page)}

	help := m.keys.pageHelp()
	if open := m.scene.OpenMenu(); open != nil {
		segments = append(segments, render(styles.StatusMenu, fmt.Sprintf(" menu %d ", open.Priority())))
		if m.query != "" {
			segments = append(segments, render(styles.Query, "/"+m.query))
		}
		help = m.keys.menuHelp()
	}
	segments = append(segments, render(styles.Hint, helpText(help)))
	return table.Clip([]string{strings.Join(segments, "  ")}, m.width)[0]
}

func helpText(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// historyLines lists the most recent activities, newest last.
func (m *Model) historyLines() []string {
	history := m.scene.History()
	if len(history) > historyRows {
		history = history[len(history)-historyRows:]
	}
	if len(history) == 0 {
		return nil
	}
	rows := make([][]string, len(history))
	for i, a := range history {
		rows[i] = activityRow(a)
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight, table.AlignRight})
	for i := range lines {
		style := styles.History
		if i == len(lines)-1 {
			style = styles.HistoryLatest
		}
		lines[i] = render(style, lines[i])
	}
	return table.Clip(lines, m.width)
}

func activityRow(a scene.Activity) []string {
	switch a.Kind {
	case scene.KindButton:
		return []string{a.Kind, "", strconv.Itoa(a.Slot), a.Label}
	case scene.KindMenu:
		return []string{a.Kind, a.Code.String(), strconv.Itoa(a.Slot), a.Label}
	default:
		return []string{a.Kind, a.Code.String()}
	}
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}
