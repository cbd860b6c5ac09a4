package main

import "github.com/charmbracelet/lipgloss"

// styles groups the lipgloss styles used by the interactive session.
type styles struct {
	Banner  lipgloss.Style
	Heading lipgloss.Style
	Menu    lipgloss.Style
	Prompt  lipgloss.Style
	Info    lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Faint   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Banner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 4).
			Bold(true),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Menu:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Faint:   lipgloss.NewStyle().Faint(true),
	}
}
