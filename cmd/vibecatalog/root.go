package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vibecatalog/internal/config"
	"vibecatalog/internal/logger"
	"vibecatalog/internal/pipeline"
	"vibecatalog/internal/shutdown"
	"vibecatalog/internal/store"
)

// app is the state shared by every subcommand once configuration is loaded.
type app struct {
	configPath string
	verbose    bool

	cfg config.Config
	log *logger.Logger
	sh  *shutdown.Handler
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "vibecatalog",
		Short: "Browse an artist's catalog and search their songs by vibe",
		Long: `vibecatalog talks to a catalog/vibe search backend.

Config file locations (checked in order):
  ./vibecatalog.yaml
  ~/.config/vibecatalog/config.yaml
  ~/.vibecatalog.yaml

Every setting can be overridden with a VIBECATALOG_* environment variable,
also read from a .env file in the working directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Show detailed output")

	root.AddCommand(
		newCatalogCmd(a),
		newVibeCmd(a),
		newServeCmd(a),
		newInitConfigCmd(),
	)
	return root, a
}

// close runs the shutdown cleanups if setup got far enough to register any.
func (a *app) close() {
	if a.sh != nil {
		a.sh.Shutdown()
	}
}

// setup loads configuration and starts logging. Commands that do not talk to
// the backend skip it.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Annotations["skipSetup"] == "true" {
		return nil
	}

	cfg, err := config.LoadConfigFile(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	a.cfg = cfg

	a.log = logger.New(cfg.Verbose)
	if cfg.LogFile != "" {
		err := a.log.SetFileLog(cfg.LogFile, logger.FileOptions{
			MaxSizeMB:  cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] Failed to setup file logging: %v\n", err)
		} else {
			a.log.Debug("Logging to file: %s", cfg.LogFile)
		}
	}
	logger.SetDefault(a.log)

	path := a.configPath
	if path == "" {
		path = config.FindConfigFile()
	}
	if path != "" {
		a.log.Debug("Loaded configuration from: %s", path)
	}

	a.sh = shutdown.New(a.log)
	a.sh.AddCleanup("logger", func(context.Context) error {
		return a.log.Close()
	})
	a.sh.Listen()
	return nil
}

// track runs fn as in-flight work, so a signal-driven shutdown waits for it
// to unwind before the cleanups close the logger.
func (a *app) track(fn func() error) error {
	a.sh.Add(1)
	defer a.sh.Done()
	return fn()
}

func (a *app) store() (*store.Store, error) {
	return pipeline.Build(a.sh.Context(), a.cfg, a.log, a.sh, pipeline.Hooks{})
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "init-config",
		Short:       "Create a default config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipSetup": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			path := config.GetDefaultConfigPath()

			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(out, "Config file already exists at: %s\n", path)
				fmt.Fprintln(out, "Delete it first if you want to recreate it.")
				return nil
			}

			if err := config.SaveConfigFile(config.DefaultConfig(), path); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}

			fmt.Fprintf(out, "Created default config file at: %s\n", path)
			fmt.Fprintln(out, "\nYou can now edit this file to customize your settings.")
			fmt.Fprintln(out, "Available options:")
			fmt.Fprintln(out, "  backend_url: where the catalog/vibe search service runs")
			fmt.Fprintln(out, "  session_cookie: an authenticated backend session")
			fmt.Fprintln(out, "  items_per_page: 1-100 (catalog songs per page)")
			fmt.Fprintln(out, "  redis_addr: host:port to cache catalogs (empty disables)")
			fmt.Fprintln(out, "  verbose: true/false (enable detailed logging)")
			return nil
		},
	}
}
