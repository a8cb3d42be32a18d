package chart

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	Title        = "Comparison of Evaluation Metrics Across Models"
	EmptyMessage = "No models available to display. Add models to see the comparison chart."

	defaultWidth = 40
)

type RenderOptions struct {
	// Width is the number of cells between DomainMin and DomainMax.
	Width int
}

// FormatPercent renders a score the way the chart labels it, e.g. 0.925 as
// "92.50%".
func FormatPercent(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// Render draws the points as grouped horizontal bars on the fixed
// [DomainMin, DomainMax] axis. With no points it writes the empty-state
// message and no chart frame.
func Render(w io.Writer, points []SeriesPoint, opts RenderOptions) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	labelWidth := 0
	for _, s := range AllSeries {
		labelWidth = max(labelWidth, utf8.RuneCountInString(s.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", Title)

	for _, p := range points {
		fmt.Fprintf(&b, "%s\n", p.Name)
		for _, s := range AllSeries {
			v := s.Value(p)
			fmt.Fprintf(&b, "  %-*s |%s| %s\n", labelWidth, s.Name, bar(v, width), FormatPercent(v))
		}
		b.WriteString("\n")
	}

	axis := fmt.Sprintf("%.1f", DomainMin)
	end := fmt.Sprintf("%.1f", DomainMax)
	padding := width + 2 - len(axis) - len(end)
	fmt.Fprintf(&b, "  %-*s %s%s%s\n", labelWidth, "Score", axis, strings.Repeat(" ", max(padding, 1)), end)

	_, err := io.WriteString(w, b.String())
	return err
}

// bar fills the cells up to v. Values outside the window are clipped to its
// edges and marked with an arrow, NaN renders as an empty track.
func bar(v float64, width int) string {
	if math.IsNaN(v) {
		return strings.Repeat("?", width)
	}

	clipped := min(max(v, DomainMin), DomainMax)
	filled := int(math.Round((clipped - DomainMin) / (DomainMax - DomainMin) * float64(width)))

	cells := []rune(strings.Repeat("█", filled) + strings.Repeat(" ", width-filled))
	switch {
	case v < DomainMin:
		cells[0] = '<'
	case v > DomainMax:
		cells[width-1] = '>'
	}
	return string(cells)
}
