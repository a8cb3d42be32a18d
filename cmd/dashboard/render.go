package main

import (
	"fmt"
	"io"
	"strings"

	"metrics-dashboard/internal/chart"
	"metrics-dashboard/internal/dashboard"
)

func renderChart(w io.Writer, points []chart.SeriesPoint, width int) error {
	return chart.Render(w, points, chart.RenderOptions{Width: width})
}

func renderList(w io.Writer, view dashboard.View) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%d Total Models", view.Count)
	if view.CanAdd {
		b.WriteString("    [+ Add New Model]")
	}
	b.WriteString("\n")

	if view.Error != "" {
		fmt.Fprintf(&b, "! %s\n", view.Error)
	}
	b.WriteString("\n")

	if len(view.Cards) == 0 {
		fmt.Fprintf(&b, "%s\n", view.Empty)
	}

	for _, card := range view.Cards {
		r := card.Record
		fmt.Fprintf(&b, "%s  (id %s)\n", r.ModelName, r.Id)
		fmt.Fprintf(&b, "  Accuracy %s  Precision %s  Recall %s  F1 %s\n",
			chart.FormatPercent(r.Accuracy.Float()),
			chart.FormatPercent(r.Precision.Float()),
			chart.FormatPercent(r.Recall.Float()),
			chart.FormatPercent(r.F1Score.Float()),
		)

		var actions []string
		if card.CanEdit {
			actions = append(actions, "[edit]")
		}
		if card.CanDelete {
			actions = append(actions, "[delete]")
		}
		if len(actions) > 0 {
			fmt.Fprintf(&b, "  %s\n", strings.Join(actions, " "))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
