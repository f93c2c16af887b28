// Package main provides the entry point for the todos CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/todos/internal/adapters/driven/config/file"
	"github.com/custodia-labs/todos/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/todos/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/todos/internal/adapters/driven/watch"
	"github.com/custodia-labs/todos/internal/adapters/driving/cli"
	"github.com/custodia-labs/todos/internal/core/domain"
	"github.com/custodia-labs/todos/internal/core/services"
	"github.com/custodia-labs/todos/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configDir, err := file.DefaultConfigDir()
	if err != nil {
		return err
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	logger.SetVerbose(settings.Verbose)

	cli.SetVersion(version)
	cli.SetSettingsService(settingsService)
	cli.SetBootstrap(func(opts cli.Options) (*cli.Services, func() error, error) {
		return openServices(opts, settings)
	})
	defer func() {
		if err := cli.Shutdown(); err != nil {
			logger.Warn("closing database: %v", err)
		}
	}()

	return cli.Execute(ctx)
}

// openServices opens the database named by the flag, then the config file,
// then the default location.
func openServices(opts cli.Options, settings *domain.AppSettings) (*cli.Services, func() error, error) {
	if opts.Memory {
		logger.Debug("using in-memory store")
		noop := func() error { return nil }
		return &cli.Services{Todo: services.NewTodoService(memory.NewTodoStore())}, noop, nil
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = settings.DataDir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("using database %s", store.Path())

	return &cli.Services{
		Todo:    services.NewTodoService(store.TodoStore()),
		Watcher: watch.NewDirWatcher(store.Path()),
	}, store.Close, nil
}
