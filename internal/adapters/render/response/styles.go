package response

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	pending lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	value   lipgloss.Style
	entity  lipgloss.Style
	empty   lipgloss.Style
	raw     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		pending: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221")),
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section: lipgloss.NewStyle().MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		entity:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		empty:   lipgloss.NewStyle().Faint(true),
		raw:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
