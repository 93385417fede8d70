package status

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/pabx-entitlements/internal/application"
	"github.com/bnema/pabx-entitlements/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const progressBarWidth = 24

type RenderOptions struct {
	// Title overrides the heading of the entitlement view.
	Title string
}

func renderView(statuses []application.Status, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "PABX Plan Entitlements"
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("accounts: %d", len(statuses))),
	}

	if len(statuses) == 0 {
		lines = append(lines, s.empty.Render("No accounts to show."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, status := range statuses {
		lines = append(lines, s.section.Render(renderAccount(status, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAccount(status application.Status, s styles) string {
	info := status.Expiration

	heading := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.account.Render(accountTitle(status.Account)),
		" ",
		s.badge(info.Status).Render(badgeLabel(info)),
	)

	parts := []string{
		heading,
		s.detail.Render("plan: " + planLabel(status)),
	}

	if !info.Known() {
		parts = append(parts, s.detail.Render("expiration: "+info.StatusText))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	parts = append(parts, expirationLine(info, s))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func expirationLine(info domain.ExpirationInfo, s styles) string {
	remaining := clampPercent(100 - info.ProgressPercentage)
	textStyle := lipgloss.NewStyle().Foreground(interpolateColor(remaining, 0, 100))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render("validity:"),
		" ",
		renderProgressBar(info.ProgressPercentage, progressBarWidth, s),
		" ",
		textStyle.Render(fmt.Sprintf("%3.0f%% used", clampPercent(info.ProgressPercentage))),
		" ",
		s.badge(info.Status).UnsetPadding().Render(info.StatusText),
		" ",
		s.meta.Render(fmt.Sprintf("(until %s)", info.FormattedDateTime)),
	)
}

// badgeLabel shows the status name, or the locale placeholder when the expiration is unknown.
func badgeLabel(info domain.ExpirationInfo) string {
	if !info.Known() {
		return info.StatusText
	}

	return string(info.Status)
}

func renderStatsView(stats application.Stats, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "PABX Account Summary"
	}

	accounts := lipgloss.JoinHorizontal(
		lipgloss.Top,
		statCard("accounts", stats.Total, s),
		statCard("active", stats.Active, s),
		statCard("inactive", stats.Inactive, s),
		statCard("new (30d)", stats.NewLast30Days, s),
	)

	buckets := lipgloss.JoinHorizontal(
		lipgloss.Top,
		statusCard(domain.StatusActive, stats.Buckets.Active, s),
		statusCard(domain.StatusWarning, stats.Buckets.Warning, s),
		statusCard(domain.StatusExpired, stats.Buckets.Expired, s),
		statusCard(domain.StatusUnknown, stats.Buckets.Unknown, s),
	)

	lines := []string{
		s.title.Render(title),
		accounts,
		s.header.Render("entitlements"),
		buckets,
		s.section.Render(s.header.Render("plans")),
	}

	if len(stats.ByPlan) == 0 {
		lines = append(lines, s.empty.Render("No accounts on any plan."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	width := 0
	for _, entry := range stats.ByPlan {
		width = max(width, lipgloss.Width(entry.Plan))
	}
	for _, entry := range stats.ByPlan {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.label.Render(fmt.Sprintf("  %-*s", width, entry.Plan)),
			"  ",
			s.cardValue.Render(fmt.Sprintf("%d", entry.Count)),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statCard(label string, value int, s styles) string {
	return s.card.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		s.meta.Render(label),
		s.cardValue.Render(fmt.Sprintf("%d", value)),
	))
}

func statusCard(status domain.ExpirationStatus, value int, s styles) string {
	return s.card.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		s.badge(status).UnsetPadding().Render(string(status)),
		s.cardValue.Render(fmt.Sprintf("%d", value)),
	))
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	used := clampPercent(usedPercent)
	filled := int(math.Round(float64(width) * used / 100.0))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func accountTitle(account domain.Account) string {
	name := strings.TrimSpace(account.Name)
	if name == "" {
		return string(account.ID)
	}

	return fmt.Sprintf("%s (%s)", name, account.ID)
}

func planLabel(status application.Status) string {
	if status.Plan != nil {
		return fmt.Sprintf("%s, %d days", status.Plan.Name, status.Plan.ValidityDays)
	}
	if name := strings.TrimSpace(status.Account.PlanName); name != "" {
		return fmt.Sprintf("%s, %d days", name, status.Expiration.ValidityDays)
	}
	if status.Account.HasPlan() {
		return string(status.Account.PlanID)
	}

	return "none"
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp: 240 at min, 255 at max.
	baseColor := 240.0
	targetColor := 255.0
	colorCode := int(baseColor + (targetColor-baseColor)*normalized)

	return lipgloss.Color(fmt.Sprintf("%d", colorCode))
}
