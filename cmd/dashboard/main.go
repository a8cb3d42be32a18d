package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"metrics-dashboard/cmd"
	"metrics-dashboard/internal/config"
	"metrics-dashboard/internal/dashboard"
	"metrics-dashboard/internal/store"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type app struct {
	envFile       string
	storeURL      string
	admin         bool
	sessionCookie string
	logFile       string
	verbose       bool
	assumeYes     bool

	dash     *dashboard.Dashboard
	closeLog func()
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Browse and manage model evaluation metrics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return a.setup(c)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return a.showDashboard(c)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env", "", "path to load env from")
	flags.StringVar(&a.storeURL, "store-url", "", "model store base url (MODEL_STORE_URL)")
	flags.BoolVar(&a.admin, "admin", false, "enable add/edit/delete (DASHBOARD_ADMIN)")
	flags.StringVar(&a.sessionCookie, "session-cookie", "", "session cookie as name=value (SESSION_COOKIE)")
	flags.StringVar(&a.logFile, "log-file", "", "append logs to this file (LOG_FILE)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(newListCommand(a))
	root.AddCommand(newChartCommand(a))
	root.AddCommand(newAddCommand(a))
	root.AddCommand(newEditCommand(a))
	root.AddCommand(newDeleteCommand(a))
	root.AddCommand(newWatchCommand(a))

	return root
}

// setup resolves configuration (flags override env) and builds the dashboard.
func (a *app) setup(c *cobra.Command) error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}

	cfg, err := config.LoadDashboardConfig()
	if err != nil {
		return err
	}

	flags := c.Flags()
	if flags.Changed("store-url") {
		cfg.StoreURL = a.storeURL
	}
	if flags.Changed("admin") {
		cfg.IsAdmin = a.admin
	}
	if flags.Changed("session-cookie") {
		cfg.SessionCookie = a.sessionCookie
	}
	if flags.Changed("log-file") {
		cfg.LogFile = a.logFile
	}

	closeLog, err := cmd.SetupLogging(cfg.LogFile, a.verbose)
	if err != nil {
		return err
	}
	a.closeLog = closeLog

	s, err := store.NewHTTPStore(cfg.StoreURL, store.WithSessionCookie(cfg.SessionCookie))
	if err != nil {
		return err
	}

	slog.Info("starting dashboard", "store_url", cfg.StoreURL, "admin", cfg.IsAdmin)

	confirmer := &promptConfirmer{in: c.InOrStdin(), out: c.ErrOrStderr(), assumeYes: &a.assumeYes}
	notifier := &stderrNotifier{out: c.ErrOrStderr()}
	a.dash = dashboard.New(s, dashboard.Auth{IsAdmin: cfg.IsAdmin}, confirmer, notifier)

	if sp := newSpinner(c.ErrOrStderr()); sp != nil {
		a.dash.List.AddStateListener(sp)
	}

	return nil
}

// refresh starts a new epoch. A failed fetch is not fatal for views, which
// show the error banner next to the last known collection.
func (a *app) refresh(ctx context.Context) {
	if err := a.dash.Refresh(ctx); err != nil {
		var fetchErr *dashboard.FetchError
		if !errors.As(err, &fetchErr) {
			slog.Error("refresh failed", "error", err)
		}
	}
}

const (
	dashboardTitle    = "Machine Learning Models"
	dashboardSubtitle = "CICIDS-2017 Dataset Evaluation Metrics"
)

func (a *app) showDashboard(c *cobra.Command) error {
	a.refresh(c.Context())

	out := c.OutOrStdout()
	fmt.Fprintln(out, dashboardTitle)
	fmt.Fprintln(out, dashboardSubtitle)
	fmt.Fprintln(out)
	if err := renderChart(out, a.dash.Chart(), 0); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return renderList(out, a.dash.List.View())
}
