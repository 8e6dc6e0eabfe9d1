package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/wisespend/internal/model"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	badStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows.
// Cell widths are measured in terminal cells so the rupee sign and
// pre-styled cells line up.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			if w := lipgloss.Width(h); w > widths[i] {
				widths[i] = w
			}
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols && lipgloss.Width(cell) > widths[i] {
					widths[i] = lipgloss.Width(cell)
				}
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + padRight(h, widths[i]) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			// Right-align numeric columns (all except first)
			var padded string
			if i == 0 {
				padded = " " + padRight(cell, widths[i]) + " "
			} else {
				padded = " " + padLeft(cell, widths[i]) + " "
			}
			b.WriteString(valueStyle.Render(padded))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╰", "┴", "╯")

	return b.String()
}

func padRight(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, w int) string {
	if n := w - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// ColorForRatio returns green/yellow/orange/red based on utilization level.
func ColorForRatio(ratio float64) lipgloss.Color {
	switch {
	case ratio >= 1:
		return ColorRed
	case ratio >= 0.8:
		return ColorOrange
	case ratio >= 0.5:
		return ColorYellow
	default:
		return ColorGreen
	}
}

// RenderBudgetBar renders a category's utilization against its cap.
// Categories without a cap render as a muted "no budget" line.
func RenderBudgetBar(st model.BudgetStatus, labelW, barWidth int) string {
	label := mutedStyle.Render(padRight(string(st.Category), labelW))
	if !st.HasBudget {
		return label + " " + dimStyle.Render(strings.Repeat("·", barWidth)) + " " +
			dimStyle.Render(FormatMoney(st.Spent)+" spent, no budget")
	}

	fill := st.Ratio
	if fill > 1 {
		fill = 1
	}
	if fill < 0 {
		fill = 0
	}

	color := ColorForRatio(st.Ratio)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(ColorTextDim)

	detail := fmt.Sprintf("%s / %s", FormatMoney(st.Spent), FormatMoney(st.Cap))
	status := lipgloss.NewStyle().Foreground(color).Bold(st.Over).Render(st.Label())

	return label + " " + bar.ViewAs(fill) + " " + valueStyle.Render(detail) + "  " + status
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / max * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderLast7 renders the trailing seven days as a sparkline with the
// day labels underneath.
func RenderLast7(days []model.DaySpend) string {
	values := make([]float64, len(days))
	labels := make([]string, len(days))
	for i, d := range days {
		values[i] = float64(d.Total)
		labels[i] = FormatDayOfWeek(int(d.Date.Weekday()))[:1]
	}
	return "  " + goodStyle.Render(RenderSparkline(values)) + "\n  " + dimStyle.Render(strings.Join(labels, ""))
}

// StatusStyle colors a what-if verdict.
func StatusStyle(s model.WhatIfStatus) lipgloss.Style {
	switch s {
	case model.StatusSafe:
		return goodStyle
	case model.StatusRisky:
		return warnStyle
	default:
		return badStyle
	}
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// Warn renders a warning line.
func Warn(s string) string {
	return warnStyle.Render(s)
}

// RenderGoalBar renders saved against target for one goal.
func RenderGoalBar(p model.GoalProgress, labelW, barWidth int) string {
	label := mutedStyle.Render(padRight(p.Goal.Name, labelW))

	color := ColorAccent
	switch {
	case p.Complete:
		color = ColorGreen
	case p.Overdue:
		color = ColorRed
	}
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(ColorTextDim)

	detail := fmt.Sprintf("%s / %s  %d%%", FormatMoney(p.Goal.CurrentSaved), FormatMoney(p.Goal.TargetAmount), p.Percent)
	line := label + " " + bar.ViewAs(p.Ratio) + " " + valueStyle.Render(detail)

	switch {
	case p.Complete:
		line += "  " + goodStyle.Render("reached")
	case p.Overdue:
		line += "  " + badStyle.Render(fmt.Sprintf("overdue by %d days", -*p.DaysLeft))
	case p.MonthlyNeeded != nil:
		line += "  " + dimStyle.Render(FormatMoney(*p.MonthlyNeeded)+"/month to finish")
	}
	return line
}
