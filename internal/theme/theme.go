package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes the Lip Gloss styles used by the titlebar strip.
type Styles struct {
	Button        *lipgloss.Style
	FocusedButton *lipgloss.Style
	HoveredButton *lipgloss.Style
	Tooltip       *lipgloss.Style
	Empty         *lipgloss.Style
}

var defaultStyles = Styles{
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Padding(0, 1),
	),
	FocusedButton: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true).Padding(0, 1),
	),
	HoveredButton: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Underline(true).Padding(0, 1),
	),
	Tooltip: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
}

// Default exposes the standard style set.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
