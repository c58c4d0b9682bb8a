package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used to draw fields and forms.
type Styles struct {
	Title        lipgloss.Style
	Label        lipgloss.Style
	FocusedLabel lipgloss.Style
	Input        lipgloss.Style
	ErrorInput   lipgloss.Style
	Error        lipgloss.Style
	Hint         lipgloss.Style
	Success      lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	red := lipgloss.Color("#E06C75")
	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("#9DA5B4")),
		FocusedLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")).Bold(true),
		Input:        lipgloss.NewStyle(),
		ErrorInput:   lipgloss.NewStyle().Foreground(red),
		Error:        lipgloss.NewStyle().Foreground(red).Italic(true),
		Hint:         lipgloss.NewStyle().Foreground(lipgloss.Color("#5C6370")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379")),
	}
}
