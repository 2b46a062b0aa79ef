// Package render turns weekly reports into human-readable text.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yanqian/wellbeing/internal/domain/wellbeing"
)

// Options controls text rendering.
type Options struct {
	Color bool
}

// IndicatorGlyph maps a symbolic indicator to its display glyph.
func IndicatorGlyph(indicator wellbeing.Indicator) string {
	switch indicator {
	case wellbeing.IndicatorGreen:
		return "🟢"
	case wellbeing.IndicatorYellow:
		return "🟡"
	case wellbeing.IndicatorRed:
		return "🔴"
	default:
		return "⚪"
	}
}

// ArrowGlyph maps a symbolic trend arrow to its display glyph.
func ArrowGlyph(arrow wellbeing.TrendArrow) string {
	switch arrow {
	case wellbeing.ArrowUp:
		return "↑"
	case wellbeing.ArrowDown:
		return "↓"
	default:
		return "→"
	}
}

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	risk    lipgloss.Style
}

func newStyles(opts Options, indicator wellbeing.Indicator) styles {
	if !opts.Color {
		plain := lipgloss.NewStyle()
		return styles{title: plain, heading: plain, muted: plain, risk: plain}
	}
	risk := lipgloss.NewStyle().Bold(true)
	switch indicator {
	case wellbeing.IndicatorGreen:
		risk = risk.Foreground(lipgloss.Color("10"))
	case wellbeing.IndicatorYellow:
		risk = risk.Foreground(lipgloss.Color("3"))
	case wellbeing.IndicatorRed:
		risk = risk.Foreground(lipgloss.Color("9"))
	default:
		risk = risk.Foreground(lipgloss.Color("7"))
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Underline(true),
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		risk:    risk,
	}
}

// Text writes the report as plain text. A report without data renders as its message alone.
func Text(w io.Writer, report wellbeing.WeeklyReport, opts Options) error {
	if !report.Available {
		message := report.Message
		if message == "" {
			message = wellbeing.NoDataMessage
		}
		_, err := fmt.Fprintln(w, message)
		return err
	}

	st := newStyles(opts, report.RiskLevel.Indicator)
	var b strings.Builder

	b.WriteString(st.title.Render("Wellbeing report") + "\n")
	fmt.Fprintf(&b, "User:   %s\n", report.UserID)
	fmt.Fprintf(&b, "Period: %s to %s (%d of %d days)\n",
		report.ReportPeriod.From, report.ReportPeriod.To,
		report.ReportPeriod.DaysAvailable, report.ReportPeriod.DaysRequested)
	b.WriteString("\n")

	b.WriteString(st.heading.Render("Risk") + "\n")
	fmt.Fprintf(&b, "  %s %s   trend %s %s\n",
		IndicatorGlyph(report.RiskLevel.Indicator), st.risk.Render(string(report.RiskLevel.Level)),
		ArrowGlyph(report.Trends.Arrow), report.Trends.Overall)
	b.WriteString("\n")

	avg := report.WeeklyAverages
	b.WriteString(st.heading.Render("Weekly averages") + "\n")
	fmt.Fprintf(&b, "  Mood       %s\n", formatFloat(avg.Mood))
	fmt.Fprintf(&b, "  Stress     %s\n", formatFloat(avg.Stress))
	fmt.Fprintf(&b, "  Sleep      %s\n", formatFloat(avg.Sleep))
	fmt.Fprintf(&b, "  Sentiment  %s\n", formatFloat(avg.Sentiment))
	fmt.Fprintf(&b, "  Composite  %s\n", formatFloat(avg.Composite))
	b.WriteString("\n")

	clinical := report.Clinical
	b.WriteString(st.heading.Render("Clinical estimates") + "\n")
	fmt.Fprintf(&b, "  PHQ-9  %s (%s)\n", formatInt(clinical.PHQ9), clinical.PHQ9Severity)
	fmt.Fprintf(&b, "  GAD-7  %s (%s)\n", formatInt(clinical.GAD7), clinical.GAD7Severity)
	b.WriteString("\n")

	b.WriteString(st.heading.Render("Recommendations") + "\n")
	for _, rec := range report.Recommendations {
		fmt.Fprintf(&b, "  - %s\n", rec)
	}
	b.WriteString("\n")

	b.WriteString(st.heading.Render("Daily breakdown") + "\n")
	fmt.Fprintf(&b, "  %-10s  %5s  %6s  %5s  %9s  %s\n", "Date", "Mood", "Stress", "Sleep", "Composite", "Risk")
	for _, day := range report.DailyScores {
		fmt.Fprintf(&b, "  %-10s  %5s  %6s  %5s  %9d  %s\n",
			day.Date, formatFloat(day.Mood), formatFloat(day.Stress), formatFloat(day.Sleep),
			day.Composite, day.RiskLevel)
	}
	fmt.Fprintf(&b, "\n%s\n", st.muted.Render(fmt.Sprintf("%d days with data", report.DataQuality.DaysWithData)))

	_, err := io.WriteString(w, b.String())
	return err
}

func formatFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
