package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"elavonx/internal/config"
	"elavonx/internal/mapping"
	"elavonx/internal/patterns"
	"elavonx/internal/scan"
	"elavonx/internal/storage"
)

var (
	coordinatorOnce   sync.Once
	sharedCoordinator *scan.Coordinator
	coordinatorErr    error

	resolverOnce   sync.Once
	sharedResolver *mapping.Resolver

	configOnce   sync.Once
	sharedConfig *config.Config
)

// getCoordinator returns a shared scan coordinator, lazily initialized
// from the workspace config. The pattern catalog override and the
// persistent cache tier are wired here.
func getCoordinator(root string, logger *slog.Logger) (*scan.Coordinator, error) {
	coordinatorOnce.Do(func() {
		cfg := mustLoadConfig(root, logger)

		if cfg.Patterns.CatalogPath != "" {
			catalog, err := patterns.LoadCatalogFile(cfg.Patterns.CatalogPath)
			if err != nil {
				coordinatorErr = fmt.Errorf("failed to load pattern catalog: %w", err)
				return
			}
			patterns.Reconfigure(catalog)
		}

		var persist *storage.Cache
		if cfg.Cache.Persist {
			db, err := storage.Open(root, logger)
			if err != nil {
				logger.Warn("persistent cache unavailable", "error", err)
			} else {
				persist = storage.NewCache(db)
			}
		}

		sharedCoordinator = scan.NewCoordinator(logger, persist)
	})
	return sharedCoordinator, coordinatorErr
}

// mustGetCoordinator returns the shared coordinator or exits on error.
func mustGetCoordinator(root string, logger *slog.Logger) *scan.Coordinator {
	c, err := getCoordinator(root, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing scanner: %v\n", err)
		os.Exit(1)
	}
	return c
}

// getResolver returns the shared mapping resolver. The dictionary path
// comes from the --dictionary flag, then the config, then the builtin.
func getResolver(root string, logger *slog.Logger) *mapping.Resolver {
	resolverOnce.Do(func() {
		path := dictionaryFlag
		if path == "" {
			cfg := mustLoadConfig(root, logger)
			path = cfg.Dictionary.Path
		}
		sharedResolver = mapping.NewResolver(path, logger)
	})
	return sharedResolver
}

// mustLoadConfig loads the workspace config once and shares it across the
// command. An unreadable config degrades to defaults; an invalid one exits.
func mustLoadConfig(root string, logger *slog.Logger) *config.Config {
	configOnce.Do(func() {
		cfg, err := config.LoadConfig(root)
		if err != nil {
			logger.Warn("failed to load config, using defaults", "error", err)
			sharedConfig = config.DefaultConfig()
			return
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sharedConfig = cfg
	})
	return sharedConfig
}

// getRoot returns the workspace root from the --root flag or cwd.
func getRoot() (string, error) {
	if rootFlag != "" {
		return rootFlag, nil
	}
	return os.Getwd()
}

// mustGetRoot returns the workspace root or exits on error.
func mustGetRoot() string {
	root, err := getRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return root
}

// newContext creates a command context cancelled by SIGINT/SIGTERM, so a
// long scan stops between files and reports its partial result.
func newContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
