package status

import (
	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	account    lipgloss.Style
	detail     lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	label      lipgloss.Style
	meta       lipgloss.Style
	card       lipgloss.Style
	cardValue  lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	badges     map[domain.ExpirationStatus]lipgloss.Style
}

func newStyles() styles {
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		account:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		meta:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		card:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		cardValue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		badges: map[domain.ExpirationStatus]lipgloss.Style{
			domain.StatusActive:  badge.Foreground(lipgloss.Color("42")),
			domain.StatusWarning: badge.Foreground(lipgloss.Color("214")),
			domain.StatusExpired: badge.Foreground(lipgloss.Color("203")),
			domain.StatusUnknown: badge.Faint(true),
		},
	}
}

func (s styles) badge(status domain.ExpirationStatus) lipgloss.Style {
	if style, ok := s.badges[status]; ok {
		return style
	}

	return s.badges[domain.StatusUnknown]
}
