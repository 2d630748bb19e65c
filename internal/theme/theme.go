package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes the Lip Gloss styles used for the chrome around the
// widget screen.
type Styles struct {
	Status        *lipgloss.Style
	StatusPage    *lipgloss.Style
	StatusMenu    *lipgloss.Style
	Query         *lipgloss.Style
	Hint          *lipgloss.Style
	History       *lipgloss.Style
	HistoryLatest *lipgloss.Style
	Error         *lipgloss.Style
}

var defaultStyles = Styles{
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	StatusPage: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	StatusMenu: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Query: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	History: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	HistoryLatest: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
