package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"vibecatalog/internal/config"
	"vibecatalog/internal/logger"
	"vibecatalog/internal/pipeline"
	"vibecatalog/internal/shutdown"
	"vibecatalog/internal/web"
)

func main() {
	var (
		addr       string
		configPath string
		verbose    bool
	)

	flag.StringVar(&addr, "addr", "", "Listen address (default from config)")
	flag.StringVar(&configPath, "config", "", "Config file path")
	flag.BoolVar(&verbose, "verbose", false, "Show detailed output")
	flag.Parse()

	cfg, err := config.LoadConfigFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if verbose {
		cfg.Verbose = true
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	l := logger.New(cfg.Verbose)
	if cfg.LogFile != "" {
		err := l.SetFileLog(cfg.LogFile, logger.FileOptions{
			MaxSizeMB:  cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to setup file logging: %v\n", err)
		}
	}
	logger.SetDefault(l)

	sh := shutdown.New(l)
	sh.AddCleanup("logger", func(context.Context) error {
		return l.Close()
	})
	sh.Listen()
	defer sh.Shutdown()

	st, err := pipeline.Build(sh.Context(), cfg, l, sh, pipeline.Hooks{})
	if err != nil {
		l.Error("Startup failed: %v", err)
		sh.Shutdown()
		os.Exit(1)
	}

	server := web.NewServer(sh.Context(), st, cfg.RequestTimeout, l)
	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		l.Error("Server error: %v", err)
		sh.Shutdown()
		os.Exit(1)
	}
}
