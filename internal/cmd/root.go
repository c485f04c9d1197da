package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazytable/internal/adapter"
	"github.com/rebeliceyang/lazytable/internal/adapter/presets"
	"github.com/rebeliceyang/lazytable/internal/app"
	"github.com/rebeliceyang/lazytable/internal/codec"
	"github.com/rebeliceyang/lazytable/internal/config"
	"github.com/rebeliceyang/lazytable/internal/db/connection"
	"github.com/rebeliceyang/lazytable/internal/history"
	"github.com/rebeliceyang/lazytable/internal/logger"
	"github.com/rebeliceyang/lazytable/internal/views"
)

var (
	cfgFile   string
	dsn       string
	tableName string
	startURL  string
)

var rootCmd = &cobra.Command{
	Use:   "lazytable",
	Short: "Filter and sort a table from the terminal",
	Long: `lazytable shows one table with a filter builder and sort controls.
The filter and sort state is kept as a shareable query string, saved per
table in a local history and in named views.

Without --dsn a built-in demo task list is shown.`,
	SilenceUsage: true,
	RunE:         runTable,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/lazytable/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (default $DATABASE_URL)")

	rootCmd.Flags().StringVarP(&tableName, "table", "t", "", "table to open as schema.table")
	rootCmd.Flags().StringVarP(&startURL, "query", "q", "", "starting query string, e.g. from a copied share link")
}

// setup loads the config and opens the log file
func setup() (*config.Config, logger.Logger, io.Closer, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, logger.Logger{}, nil, err
	}

	log, closer, err := logger.NewFile(cfg.Log.Level, cfg.Log.Format, cfg.Log.File)
	if err != nil {
		return nil, logger.Logger{}, nil, err
	}
	return cfg, log, closer, nil
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, log, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	a, err := presets.ByName(cfg.Filters.Adapter)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	source, cleanup, err := openSource(ctx, a, log)
	if err != nil {
		return err
	}
	defer cleanup()

	hist := openHistory(cfg, log)
	if hist != nil {
		defer hist.Close()
	}

	mgr := openViews(cfg, source, a, log)

	model, err := app.New(app.Options{
		Config:  cfg,
		Logger:  log,
		Adapter: a,
		Source:  source,
		Query:   startURL,
		History: hist,
		Views:   mgr,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "?%s\n", model.Query())
	return nil
}

// openSource connects to --dsn, or falls back to the demo task list
func openSource(ctx context.Context, a *adapter.Adapter, log logger.Logger) (app.Source, func(), error) {
	if dsn == "" {
		log.Info().Msg("no dsn given, showing demo data")
		return app.NewDemoSource(200), func() {}, nil
	}
	if tableName == "" {
		return nil, nil, errors.New("--table is required with --dsn")
	}

	pool, err := connection.NewPool(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}

	source, err := app.NewPostgresSource(ctx, pool, tableName, a, log)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return source, pool.Close, nil
}

// openHistory returns nil when history is off or cannot be opened
func openHistory(cfg *config.Config, log logger.Logger) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}

	path := cfg.History.Path
	if path == "" {
		var err error
		if path, err = config.DataPath("history.db"); err != nil {
			log.Warn().Err(err).Msg("query history disabled")
			return nil
		}
	}

	store, err := history.NewStore(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("query history disabled")
		return nil
	}
	return store
}

// openViews returns nil when the views file cannot be read
func openViews(cfg *config.Config, source app.Source, a *adapter.Adapter, log logger.Logger) *views.Manager {
	dir := cfg.Views.Dir
	if dir == "" {
		var err error
		if dir, err = config.GetConfigPath(); err != nil {
			log.Warn().Err(err).Msg("saved views disabled")
			return nil
		}
	}

	sorting := codec.NewSortingCodec(source.Columns()...)
	fields := source.Fields()
	check := func(query string) error {
		_, errs := codec.DecodeString(query, a, sorting, codec.Defaults{}, codec.WithKnownFields(fields))
		return errors.Join(errs...)
	}

	mgr, err := views.NewManager(dir, check)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("saved views disabled")
		return nil
	}
	return mgr
}
