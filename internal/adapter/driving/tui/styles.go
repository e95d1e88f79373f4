package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("71"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	armedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("160"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	centerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
)

// colorStyle returns a foreground style for a hex colour.
func colorStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
