package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	aggregateBarWidth = 40
	coreBarWidth      = 20
)

// View renders the dashboard
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{m.renderTitleBar()}

	if m.lastUpdated.IsZero() {
		sections = append(sections, helpStyle.Render("  waiting for the first sample..."))
	} else {
		sections = append(sections, m.renderAggregate(), m.renderCores())
	}

	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := titleStyle.Render("CPUWATCH")
	help := helpStyle.Render("q:quit")

	spacing := m.width - lipgloss.Width(title) - lipgloss.Width(help) - 2
	if spacing < 1 {
		spacing = 1
	}

	return fmt.Sprintf("%s%s%s", title, strings.Repeat(" ", spacing), help)
}

func (m Model) renderAggregate() string {
	return "  " + renderProgressBar("Overall", m.usage.Aggregate(), aggregateBarWidth)
}

func (m Model) renderCores() string {
	lines := []string{sectionHeaderStyle.Render("  Cores")}
	for i := 0; i < m.usage.Cores(); i++ {
		label := fmt.Sprintf("Core %-3d", i)
		lines = append(lines, "  "+renderProgressBar(label, m.usage.Core(i), coreBarWidth))
	}
	return strings.Join(lines, "\n")
}

func renderProgressBar(label string, percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	color := getProgressColor(percent)
	filledBar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyBar := progressBarEmptyStyle.Render(strings.Repeat("░", width-filled))

	return fmt.Sprintf("%s [%s%s] %6.2f%%", labelStyle.Render(label), filledBar, emptyBar, percent)
}

func (m Model) renderFooter() string {
	updated := "-"
	if !m.lastUpdated.IsZero() {
		updated = m.lastUpdated.Format("15:04:05")
	}

	return helpStyle.Render(fmt.Sprintf("  v%s │ Updated: %s", m.version, updated))
}
