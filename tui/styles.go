package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("245"))

	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2)
)
