package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette (Dracula-inspired)
var (
	colorPurple = lipgloss.Color("#BD93F9")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorRed    = lipgloss.Color("#FF5555")
	colorGray   = lipgloss.Color("#6272A4")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorWhite  = lipgloss.Color("#F8F8F2")
)

// Shared Styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	activeFilterStyle = lipgloss.NewStyle().
				Foreground(colorYellow)

	dirStyle = lipgloss.NewStyle().
			Foreground(colorCyan)

	fileStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	dotfileStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#5A4E8C")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	previewBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray).
				Padding(0, 1)

	jumpPromptStyle = lipgloss.NewStyle().
			Foreground(colorGreen)
)
