package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattjh/bidwatch/internal/cli"
	"github.com/mattjh/bidwatch/internal/filter"
	"github.com/mattjh/bidwatch/internal/model"
)

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	overdueStyle  = lipgloss.NewStyle().Foreground(cli.ErrorColor)
)

// View renders the browser.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(cli.TitleStyle.Render("bidwatch — contract opportunities"))
	b.WriteString("\n")
	b.WriteString(m.renderCriteria())
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString("Keywords: " + m.input.View())
		b.WriteString("\n\n")
	}

	if m.applying {
		b.WriteString(m.spinner.View() + " Applying filters...")
	} else {
		b.WriteString(m.renderResults())
	}

	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(cli.InfoStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(cli.SubtleStyle.Render(
		"↑/↓ move · / keywords · a apply · r reset · o sort · s/l preset · m submit · q quit"))

	return b.String()
}

func (m Model) renderCriteria() string {
	criteria := m.cfg.Store.Committed()
	if criteria.IsZero() {
		return cli.SubtleStyle.Render("No filters active")
	}

	var parts []string
	if criteria.NAICS != "" {
		parts = append(parts, "NAICS "+criteria.NAICS)
	}
	if len(criteria.SetAsides) > 0 {
		parts = append(parts, "set-aside "+strings.Join(criteria.SetAsides, "|"))
	}
	if criteria.Vehicle != "" {
		parts = append(parts, "vehicle "+criteria.Vehicle)
	}
	if len(criteria.Agencies) > 0 {
		parts = append(parts, "agency "+strings.Join(criteria.Agencies, "|"))
	}
	switch criteria.Due.Mode {
	case model.DueRelative:
		parts = append(parts, fmt.Sprintf("due ≤%dd", criteria.Due.Days))
	case model.DueAbsolute:
		parts = append(parts, "due "+renderRange(criteria.Due))
	case model.DueAny:
	}
	if criteria.CeilingMin != nil {
		parts = append(parts, "≥"+cli.FormatCurrency(*criteria.CeilingMin))
	}
	if criteria.CeilingMax != nil {
		parts = append(parts, "≤"+cli.FormatCurrency(*criteria.CeilingMax))
	}
	if len(criteria.Keywords) > 0 {
		parts = append(parts, "kw: "+strings.Join(criteria.Keywords, ", "))
	}

	return cli.InfoStyle.Render(strings.Join(parts, " · "))
}

func renderRange(due model.DueDate) string {
	start, end := "…", "…"
	if due.Start != nil {
		start = due.Start.Format("2006-01-02")
	}
	if due.End != nil {
		end = due.End.Format("2006-01-02")
	}
	return start + "→" + end
}

func (m Model) renderResults() string {
	if len(m.visible) == 0 {
		return cli.SubtleStyle.Render("No opportunities match the active filters.")
	}

	now := time.Now()
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d opportunities · sorted by %s\n",
		len(m.visible), len(m.records), sortLabel(m.sortBy))
	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")

	for i, opp := range m.visible {
		line := fmt.Sprintf("%-40.40s  %-6s  %-10s  %8s  fit %3d  %3d%%  %s",
			opp.Title, opp.NAICS, opp.Agency, cli.FormatCurrency(opp.Ceiling),
			opp.FitScore, opp.PercentComplete,
			renderDue(now, opp.DueDate))

		switch {
		case i == m.cursor:
			line = selectedStyle.Render("> " + line)
		case filter.DaysUntil(now, opp.DueDate) < 0:
			line = overdueStyle.Render("  " + line)
		default:
			line = "  " + line
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderSummary shows the pipeline breakdown of the visible set.
func (m Model) renderSummary() string {
	summary := filter.Summarize(m.visible)

	parts := make([]string, 0, len(filter.StatusOrder)+1)
	for _, status := range filter.StatusOrder {
		parts = append(parts, fmt.Sprintf("%s %d", string(status), summary.StatusCounts[status]))
	}
	parts = append(parts, fmt.Sprintf("avg %d%% complete", summary.AvgComplete))

	return cli.SubtleStyle.Render(strings.Join(parts, " · "))
}

func renderDue(now, due time.Time) string {
	days := filter.DaysUntil(now, due)
	switch {
	case days < 0:
		return fmt.Sprintf("overdue %dd", -days)
	case days == 0:
		return "due today"
	default:
		return fmt.Sprintf("due in %dd", days)
	}
}
