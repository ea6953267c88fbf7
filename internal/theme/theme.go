package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles for the terminal host.
type Styles struct {
	Header      *lipgloss.Style
	Footer      *lipgloss.Style
	Label       *lipgloss.Style
	Value       *lipgloss.Style
	FlagOn      *lipgloss.Style
	FlagOff     *lipgloss.Style
	Error       *lipgloss.Style
	Screen      *lipgloss.Style
	PanelBorder *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Value: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	FlagOn: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FlagOff: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Screen: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("255")),
	),
	PanelBorder: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
