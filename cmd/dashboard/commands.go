package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"metrics-dashboard/internal/chart"
	"metrics-dashboard/internal/dashboard"
	"metrics-dashboard/internal/form"
	"metrics-dashboard/pkg/api"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNotAdmin = errors.New("this action requires admin access")

func newListCommand(a *app) *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:   "list",
		Short: "List model evaluation records",
		RunE: func(c *cobra.Command, _ []string) error {
			a.refresh(c.Context())
			view := a.dash.List.View()

			switch output {
			case "table":
				return renderList(c.OutOrStdout(), view)
			case "json", "yaml":
				doc := listOutput{Count: view.Count, Models: a.dash.List.Models(), Error: view.Error}
				return encode(c, output, doc)
			default:
				return fmt.Errorf("unknown output format '%s': expected table, json or yaml", output)
			}
		},
	}
	c.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json or yaml")
	return c
}

type listOutput struct {
	Count  int               `json:"count" yaml:"count"`
	Models []api.ModelRecord `json:"models" yaml:"models"`
	Error  string            `json:"error,omitempty" yaml:"error,omitempty"`
}

func encode(c *cobra.Command, format string, doc any) error {
	out := c.OutOrStdout()
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func newChartCommand(a *app) *cobra.Command {
	var width int

	c := &cobra.Command{
		Use:   "chart",
		Short: "Compare evaluation metrics across models",
		RunE: func(c *cobra.Command, _ []string) error {
			a.refresh(c.Context())
			if msg := a.dash.List.Error(); msg != "" {
				fmt.Fprintln(c.ErrOrStderr(), msg)
			}
			return renderChart(c.OutOrStdout(), a.dash.Chart(), width)
		},
	}
	c.Flags().IntVar(&width, "width", 40, "bar width in cells")
	return c
}

type formFlags struct {
	modelName, accuracy, precision, recall, f1Score string
}

func (f *formFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.modelName, "model-name", "", "model name")
	c.Flags().StringVar(&f.accuracy, "accuracy", "", "accuracy score")
	c.Flags().StringVar(&f.precision, "precision", "", "precision score")
	c.Flags().StringVar(&f.recall, "recall", "", "recall score")
	c.Flags().StringVar(&f.f1Score, "f1-score", "", "F1 score")
}

// values returns only the fields given on the command line, so an edit keeps
// the rest of the record.
func (f *formFlags) values(c *cobra.Command) url.Values {
	v := url.Values{}
	fields := map[string]struct {
		name  string
		value string
	}{
		"model-name": {form.FieldModelName, f.modelName},
		"accuracy":   {form.FieldAccuracy, f.accuracy},
		"precision":  {form.FieldPrecision, f.precision},
		"recall":     {form.FieldRecall, f.recall},
		"f1-score":   {form.FieldF1Score, f.f1Score},
	}
	for flag, field := range fields {
		if c.Flags().Changed(flag) {
			v.Set(field.name, field.value)
		}
	}
	return v
}

func newAddCommand(a *app) *cobra.Command {
	var fields formFlags

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a model evaluation record",
		RunE: func(c *cobra.Command, _ []string) error {
			if !a.dash.List.View().CanAdd {
				return errNotAdmin
			}

			draft, err := form.New(nil).Decode(fields.values(c))
			if err != nil {
				return err
			}

			if err := a.dash.List.Create(c.Context(), draft); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Added model %s\n", draft.ModelName)
			return renderList(c.OutOrStdout(), a.dash.List.View())
		},
	}
	fields.register(c)
	return c
}

func findCard(view dashboard.View, id string) (dashboard.Card, bool) {
	for _, card := range view.Cards {
		if card.Record.Id.String() == id {
			return card, true
		}
	}
	return dashboard.Card{}, false
}

func newEditCommand(a *app) *cobra.Command {
	var fields formFlags

	c := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a model evaluation record",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if err := a.dash.Refresh(c.Context()); err != nil {
				return err
			}

			card, ok := findCard(a.dash.List.View(), args[0])
			if !ok {
				return fmt.Errorf("model '%s' not found", args[0])
			}
			if !card.CanEdit {
				return errNotAdmin
			}

			draft, err := form.New(&card.Record).Decode(fields.values(c))
			if err != nil {
				return err
			}

			if err := a.dash.List.Update(c.Context(), card.Record.Id, draft); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Updated model %s\n", draft.ModelName)
			return renderList(c.OutOrStdout(), a.dash.List.View())
		},
	}
	fields.register(c)
	return c
}

func newDeleteCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a model evaluation record",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if err := a.dash.Refresh(c.Context()); err != nil {
				return err
			}

			card, ok := findCard(a.dash.List.View(), args[0])
			if !ok {
				return fmt.Errorf("model '%s' not found", args[0])
			}
			if !card.CanDelete {
				return errNotAdmin
			}

			err := a.dash.List.Delete(c.Context(), card.Record.Id)
			if errors.Is(err, dashboard.ErrDeleteCancelled) {
				fmt.Fprintln(c.OutOrStdout(), "Delete cancelled")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "Deleted model %s\n", card.Record.ModelName)
			return renderList(c.OutOrStdout(), a.dash.List.View())
		},
	}
	c.Flags().BoolVarP(&a.assumeYes, "yes", "y", false, "do not ask for confirmation")
	return c
}

func newWatchCommand(a *app) *cobra.Command {
	var interval time.Duration

	c := &cobra.Command{
		Use:   "watch",
		Short: "Redraw the dashboard every time the collection is reloaded",
		RunE: func(c *cobra.Command, _ []string) error {
			if interval <= 0 {
				return fmt.Errorf("interval must be positive")
			}

			feed := dashboard.NewFeed(1)
			a.dash.List.Subscribe(feed)
			defer feed.Close()

			ctx := c.Context()
			out := c.OutOrStdout()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			failures := make(chan error, 1)
			refresh := func() {
				if err := a.dash.Refresh(ctx); err != nil {
					select {
					case failures <- err:
					default:
					}
				}
			}

			go refresh()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					go refresh()
				case err := <-failures:
					fmt.Fprintf(out, "\n%s  %v, showing last loaded models\n", time.Now().Format(time.TimeOnly), err)
				case snapshot := <-feed.Snapshots():
					fmt.Fprintf(out, "\n%s  %d Total Models\n\n", time.Now().Format(time.TimeOnly), len(snapshot.Models))
					if err := renderChart(out, chart.Project(snapshot.Models), 0); err != nil {
						return err
					}
				}
			}
		},
	}
	c.Flags().DurationVar(&interval, "interval", 30*time.Second, "refresh interval")
	return c
}
