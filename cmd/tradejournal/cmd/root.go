package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/internal/logger"
	"github.com/rustyeddy/tradejournal/journal"
)

// App carries the state shared by every subcommand once flags are parsed.
type App struct {
	cfgFile  string
	dbPath   string
	logLevel string

	Config *config.Config
	Log    *logrus.Logger
}

// OpenStore opens the configured SQLite journal.
func (a *App) OpenStore() (*journal.SQLite, error) {
	j, err := journal.NewSQLite(a.Config.Journal.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	a.Log.WithField("db", a.Config.Journal.DBPath).Debug("opened journal")
	return j, nil
}

// Engine builds the analytics engine from the analytics config section.
func (a *App) Engine() (*analytics.Engine, error) {
	ttl, err := a.Config.Analytics.ParseCacheTTL()
	if err != nil {
		return nil, err
	}
	opts := []analytics.EngineOption{analytics.WithCache(ttl)}
	if !a.Config.Analytics.Strict {
		opts = append(opts, analytics.WithLenientInput())
	}
	return analytics.NewEngine(a.Log, opts...), nil
}

func (a *App) load() error {
	cfg := config.Default()
	if a.cfgFile != "" {
		loaded, err := config.LoadFromFile(a.cfgFile)
		if err != nil {
			// A missing default config file is fine; an explicit one must exist.
			if !(errors.Is(err, fs.ErrNotExist) && a.cfgFile == defaultConfigFile) {
				return err
			}
		} else {
			cfg = loaded
		}
	}
	if a.dbPath != "" {
		cfg.Journal.DBPath = a.dbPath
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.Config = cfg
	a.Log = logger.New(cfg.Log.Level, cfg.Log.Format)
	return nil
}

const defaultConfigFile = "tradejournal.yaml"

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   "tradejournal",
		Short: "A personal trading journal with performance analytics",
		Long: `Tradejournal records your trades and turns them into performance statistics.

It provides tools for:
  - Recording trades and accounts in a local SQLite journal
  - Importing and exporting trades as CSV
  - Win rate, profit factor, expectancy, streaks and drawdown
  - Sharpe, Sortino, MAR and Calmar ratios per account
  - Equity curves and daily P/L series
  - Detecting oversizing and revenge trading`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.cfgFile, "config", "c", defaultConfigFile, "config file")
	rootCmd.PersistentFlags().StringVarP(&app.dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "log level (overrides config)")

	rootCmd.AddCommand(
		newTradeCmd(app),
		newAccountCmd(app),
		newStatsCmd(app),
		newDemonsCmd(app),
		newEquityCmd(app),
		newReviewCmd(app),
		newConfigCmd(app),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}
