package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kk-code-lab/rgallery/internal/ack"
	apppkg "github.com/kk-code-lab/rgallery/internal/app"
	"github.com/kk-code-lab/rgallery/internal/catalog"
	"github.com/kk-code-lab/rgallery/internal/config"
	"github.com/kk-code-lab/rgallery/internal/logging"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configFile string
	catalogSrc string
	view       string
	logLevel   string
	logFile    string

	cfg    *config.Config
	logger *logging.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "rgallery",
		Short: "Browse a catalog of schematic builds in the terminal",
		Long: `rgallery - terminal gallery for a catalog of schematic builds.

The catalog is a JSON document with an "entries" array, read from a local path
or an http(s) URL. The view (search, facet filters, sort, preview and scroll
position) is encoded as a query string that can be passed back with --view.
On exit the query of the last view is printed to stdout.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowser(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Configuration file path (TOML, YAML or JSON)")
	flags.StringVar(&opts.catalogSrc, "catalog", "", "Catalog location: path, file:// or http(s):// URL (overrides config)")
	flags.StringVar(&opts.view, "view", "", "View query to open, e.g. 'q=castle&sort=oldest&idx=40'")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flags.StringVar(&opts.logFile, "log-file", "", "Log file path (overrides config)")

	rootCmd.AddCommand(newListCmd(opts))
	return rootCmd
}

// setup loads the config, applies flag overrides and opens the log file.
func (o *rootOptions) setup() error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if o.catalogSrc != "" {
		cfg.Catalog.Source = o.catalogSrc
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFile != "" {
		cfg.Log.File = o.logFile
	}

	logger, err := logging.Open(cfg.LogPath(), cfg.Log.Level)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.logger = logger
	logger.Debug().
		Str("config", o.configPath()).
		Str("catalog", cfg.Catalog.Source).
		Str("state_dir", cfg.StateDirPath()).
		Msg("config loaded")
	return nil
}

func (o *rootOptions) configPath() string {
	if o.configFile != "" {
		return o.configFile
	}
	return config.ConfigPath()
}

func (o *rootOptions) source() (catalog.Source, error) {
	zl := o.logger.Component("catalog")
	return catalog.OpenSource(o.cfg.CatalogSource(), catalog.HTTPOptions{
		Timeout:  o.cfg.Timeout(),
		RetryMax: o.cfg.Catalog.RetryMax,
		Logger:   &zl,
	})
}

func runBrowser(cmd *cobra.Command, opts *rootOptions) error {
	src, err := opts.source()
	if err != nil {
		return err
	}

	app, err := apppkg.NewApplication(apppkg.Options{
		Config: opts.cfg,
		Logger: opts.logger,
		Source: src,
		View:   opts.view,
		Ack:    ack.New(opts.cfg.StateDirPath()),
	})
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}

	app.Run()
	query := app.ShareQuery()
	_ = app.Close()

	opts.logger.Info().Str("query", query).Msg("exit")
	fmt.Fprintln(cmd.OutOrStdout(), "?"+query)
	return nil
}
