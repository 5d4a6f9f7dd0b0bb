package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/prepiz/internal/dashboard"
	"github.com/abhisek/prepiz/internal/questionbank"
	"github.com/abhisek/prepiz/internal/store"
	"github.com/abhisek/prepiz/internal/ui/components"
	"github.com/abhisek/prepiz/internal/ui/theme"
	"github.com/abhisek/prepiz/internal/usage"
)

const titleText = "P · R · E · P · I · Z"

// panelRows caps the list panels so the dashboard fits one screen.
const panelRows = 3

// renderTitle returns the title line, with the tagline in full mode.
func renderTitle(cw int, compact bool) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(titleText)
	if !compact {
		title += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Your UPSC preparation, one test at a time")
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(title)
}

// renderStatsBar renders the headline numbers in a double-bordered box.
func renderStatsBar(s *dashboard.Summary, cw int, compact bool) string {
	syllabus := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	tests := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	streak := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			syllabus.Render(fmt.Sprintf("▤%.0f%%", s.OverallProgress)),
			tests.Render(fmt.Sprintf("✎%d", s.Tests.Total)),
			streak.Render(fmt.Sprintf("★%d", s.Streak)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			syllabus.Render(fmt.Sprintf("▤ %.0f%% SYLLABUS", s.OverallProgress)),
			tests.Render(fmt.Sprintf("✎ %d TESTS", s.Tests.Total)),
			streak.Render(fmt.Sprintf("★ %d DAY STREAK", s.Streak)),
			dim.Render("today "+usage.FormatDuration(s.TodayStudy)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.Bg).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normalBtn := base.Foreground(theme.Text).BorderForeground(theme.Border)
	disabledBtn := base.Foreground(theme.TextDim).BorderForeground(theme.Border)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		switch {
		case disabled[i]:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + label)
		case i == selected:
			line = lipgloss.NewStyle().
				Foreground(theme.Bg).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ " + label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderSubjects(subjects []dashboard.SubjectProgress, cw int) string {
	if len(subjects) == 0 {
		return components.Card("Syllabus", dimLine("No syllabus loaded."), cw)
	}
	labelWidth := 0
	for _, sp := range subjects {
		labelWidth = max(labelWidth, lipgloss.Width(sp.Subject))
	}
	var lines []string
	for _, sp := range subjects {
		bar := components.NewProgressBar(sp.Subject, sp.Percentage, true, cw-4)
		bar.LabelWidth = labelWidth
		lines = append(lines, bar.View())
	}
	return components.Card("Syllabus", strings.Join(lines, "\n"), cw)
}

func renderTests(s *dashboard.Summary, cw int) string {
	if s.Tests.Total == 0 {
		return components.Card("Tests", dimLine("No tests yet. Start one from the menu."), cw)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Average %s   Best %s   Avg time %.1f min",
		percentStyle(s.Tests.AvgPercentage).Render(fmt.Sprintf("%.1f%%", s.Tests.AvgPercentage)),
		percentStyle(s.Tests.BestPercentage).Render(fmt.Sprintf("%.1f%%", s.Tests.BestPercentage)),
		s.Tests.AvgTimeMinutes,
	))
	for i, rec := range s.Recent {
		if i == panelRows {
			break
		}
		b.WriteString("\n")
		b.WriteString(recentLine(rec, cw-4))
	}
	if len(s.WeakAreas) > 0 {
		names := make([]string, 0, len(s.WeakAreas))
		for _, w := range s.WeakAreas {
			names = append(names, fmt.Sprintf("%s %.0f%%", questionbank.DisplayName(w.Subject), w.AvgPercentage))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render("Needs work: " + strings.Join(names, ", ")))
	}
	return components.Card("Tests", b.String(), cw)
}

func recentLine(rec store.AttemptRecord, width int) string {
	pct := percentStyle(rec.Percentage).Render(fmt.Sprintf("%5.1f%%", rec.Percentage))
	date := lipgloss.NewStyle().Foreground(theme.TextDim).Render(rec.CreatedAt.Local().Format("02 Jan"))
	label := attemptLabel(rec)
	room := max(width-lipgloss.Width(pct)-lipgloss.Width(date)-4, 8)
	if lipgloss.Width(label) > room {
		label = string([]rune(label)[:room-1]) + "…"
	}
	return fmt.Sprintf("%s  %-*s  %s", date, room, label, pct)
}

func attemptLabel(rec store.AttemptRecord) string {
	scope := questionbank.Scope{
		Mode:    questionbank.Mode(rec.Mode),
		Subject: rec.Subject,
		Unit:    rec.Unit,
		Paper:   rec.Paper,
	}
	return scope.Label()
}

func renderUpcoming(items []store.TrackingRecord, cw int) string {
	if len(items) == 0 {
		return components.Card("Up next", dimLine("Everything in the syllabus is done."), cw)
	}
	var lines []string
	for i, it := range items {
		if i == panelRows {
			break
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("○ "+it.Name)+
			"  "+lipgloss.NewStyle().Foreground(theme.TextDim).Render(it.Subject))
	}
	return components.Card("Up next", strings.Join(lines, "\n"), cw)
}

func renderActivity(items []store.ActivityRecord, cw int) string {
	if len(items) == 0 {
		return components.Card("Activity", dimLine("Nothing yet."), cw)
	}
	var lines []string
	for i, a := range items {
		if i == panelRows {
			break
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render(ago(a.CreatedAt, time.Now()))+
			"  "+lipgloss.NewStyle().Foreground(theme.Text).Render(a.Description))
	}
	return components.Card("Activity", strings.Join(lines, "\n"), cw)
}

// ago renders the age of t as "just now", "5m ago", "3h ago" or "2d ago".
func ago(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}

func percentStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 60:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	case pct >= 40:
		return lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
}

func dimLine(s string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s)
}

func renderDim(s string, cw int) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Align(lipgloss.Center).Render(s)
}

func renderWarning(s string, cw int) string {
	return lipgloss.NewStyle().Foreground(theme.Warning).Width(cw).Align(lipgloss.Center).Render("⚠ " + s)
}

// renderMascotBox renders the owl centered at the menu width.
func renderMascotBox(m Mood, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(m))
}

func joinColumns(left, right string, gap int) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
}

// renderFrame wraps content in a double border, centered vertically and
// horizontally within the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
