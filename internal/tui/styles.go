package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("12")
	muted  = lipgloss.Color("8")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	countStyle   = lipgloss.NewStyle().Foreground(muted)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	cursorStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	grabbedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
	focusedColumnStyle = columnStyle.BorderForeground(accent)
	targetColumnStyle  = columnStyle.BorderForeground(lipgloss.Color("11"))

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
)
