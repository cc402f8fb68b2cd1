// Package cli implements spendctl, an offline report tool that loads a data file into
// the in-memory store and prints the same views the API serves.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/repository/memory"
	"github.com/dafibh/spendboard/internal/repository/storage"
	"github.com/dafibh/spendboard/internal/service"
	"github.com/dafibh/spendboard/internal/util"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const defaultCurrency = "$"

// App represents the spendctl command-line application
type App struct {
	rootCmd *cobra.Command
	out     io.Writer
	logger  zerolog.Logger
	now     func() time.Time
}

// NewApp creates the command tree
func NewApp(version string) *App {
	app := &App{
		out:    os.Stdout,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel).With().Timestamp().Logger(),
		now:    time.Now,
	}

	rootCmd := &cobra.Command{
		Use:           "spendctl",
		Short:         "Offline spending reports from a data file",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				DisableColor()
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				app.logger = app.logger.Level(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringP("data", "d", "", "Path to a TOML, YAML, or JSON data file")
	rootCmd.PersistentFlags().String("date", "", "Reference date (YYYY-MM-DD), defaults to today")
	rootCmd.PersistentFlags().String("currency", defaultCurrency, "Currency symbol used in output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	_ = rootCmd.MarkPersistentFlagRequired("data")

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the monthly dashboard",
		Args:  cobra.NoArgs,
		RunE:  app.runDashboard,
	}

	analyticsCmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show spending analytics",
		Args:  cobra.NoArgs,
		RunE:  app.runAnalytics,
	}
	analyticsCmd.Flags().IntP("months", "m", domain.DefaultTrendMonths, "Trend length in months (1-36)")

	reportCmd := &cobra.Command{
		Use:   "report MONTH",
		Short: "Write a monthly CSV report (MONTH is YYYY-MM)",
		Args:  cobra.ExactArgs(1),
		RunE:  app.runReport,
	}
	reportCmd.Flags().String("dir", ".", "Directory to write the report into")

	rootCmd.AddCommand(dashboardCmd, analyticsCmd, reportCmd)
	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application
func (app *App) Execute() error {
	return app.rootCmd.Execute()
}

// SetOutput redirects command output
func (app *App) SetOutput(out io.Writer) {
	app.out = out
	app.rootCmd.SetOut(out)
	app.rootCmd.SetErr(out)
}

// SetArgs overrides the command-line arguments
func (app *App) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// workspace is the in-memory store loaded from the data file
type workspace struct {
	store    *memory.Store
	ref      time.Time
	renderer *Renderer
}

func (app *App) load(cmd *cobra.Command) (*workspace, error) {
	dataPath, _ := cmd.Flags().GetString("data")
	dateFlag, _ := cmd.Flags().GetString("date")
	currency, _ := cmd.Flags().GetString("currency")

	ref := util.TruncateToDate(app.now())
	if dateFlag != "" {
		parsed, err := util.ParseDate(dateFlag)
		if err != nil {
			return nil, fmt.Errorf("--date: %w", err)
		}
		ref = parsed
	}

	seed, err := LoadSeedFile(dataPath)
	if err != nil {
		return nil, err
	}

	store := memory.NewStore()
	seeder := NewSeeder(
		service.NewCategoryService(store.Categories()),
		service.NewExpenseService(store.Expenses()),
		service.NewRecurringBudgetService(store.RecurringBudgets()),
	)
	if err := seeder.Apply(seed); err != nil {
		return nil, fmt.Errorf("load %s: %w", dataPath, err)
	}

	app.logger.Debug().
		Str("file", dataPath).
		Int("categories", len(seed.Categories)).
		Int("budgets", len(seed.Budgets)).
		Int("expenses", len(seed.Expenses)).
		Msg("Data file loaded")

	return &workspace{store: store, ref: ref, renderer: NewRenderer(app.out, currency)}, nil
}

func (app *App) runDashboard(cmd *cobra.Command, args []string) error {
	ws, err := app.load(cmd)
	if err != nil {
		return err
	}

	svc := service.NewDashboardService(ws.store.Categories(), ws.store.Expenses(), ws.store.RecurringBudgets(), 0)
	summary, err := svc.GetSummary(contextOf(cmd), ws.ref)
	if err != nil {
		return err
	}
	ws.renderer.Dashboard(summary)
	return nil
}

func (app *App) runAnalytics(cmd *cobra.Command, args []string) error {
	ws, err := app.load(cmd)
	if err != nil {
		return err
	}
	months, _ := cmd.Flags().GetInt("months")

	svc := service.NewAnalyticsService(ws.store.Categories(), ws.store.Expenses(), ws.store.RecurringBudgets(), 0)
	summary, err := svc.GetSummary(contextOf(cmd), ws.ref, months)
	if err != nil {
		return err
	}
	ws.renderer.Analytics(summary)
	return nil
}

func (app *App) runReport(cmd *cobra.Command, args []string) error {
	ws, err := app.load(cmd)
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("dir")

	local, err := storage.NewLocalReportRepository(dir)
	if err != nil {
		return err
	}

	svc := service.NewReportService(ws.store.Categories(), ws.store.Expenses(), ws.store.RecurringBudgets(), local, app.logger)
	report, err := svc.Export(contextOf(cmd), args[0])
	if err != nil {
		return err
	}
	ws.renderer.Report(report)
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
