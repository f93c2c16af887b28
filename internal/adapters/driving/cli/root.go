// Package cli provides the cobra command tree for the todos binary.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/todos/internal/core/ports/driven"
	"github.com/custodia-labs/todos/internal/core/ports/driving"
	"github.com/custodia-labs/todos/internal/logger"
)

// Options carries the values of the global flags.
type Options struct {
	DataDir string
	Verbose bool
	// Memory keeps todos in process memory for a throwaway session.
	Memory bool
}

// Services holds the ports the commands call.
type Services struct {
	Todo    driving.TodoService
	Watcher driven.ChangeWatcher
}

// BootstrapFunc opens the store and builds the services once the global
// flags are parsed. The returned close function is called after the
// command finishes.
type BootstrapFunc func(opts Options) (*Services, func() error, error)

// annotationNoStore marks commands that run without opening the database.
const annotationNoStore = "todos/no-store"

var (
	version = "dev"

	todoService     driving.TodoService
	settingsService driving.SettingsService
	changeWatcher   driven.ChangeWatcher

	bootstrap     BootstrapFunc
	closeServices func() error

	rootOpts Options
)

var rootCmd = &cobra.Command{
	Use:   "todos",
	Short: "A local to-do list",
	Long: `todos keeps a to-do list in a SQLite file under ~/.todos/data.

Manage it from the command line, the interactive terminal UI, or through
the JSON command bridge and MCP server.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: persistentPreRun,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return shutdownServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rootOpts.DataDir, "data-dir", "", "Directory holding db.sqlite (default ~/.todos/data)")
	rootCmd.PersistentFlags().BoolVar(&rootOpts.Memory, "memory", false, "Keep todos in memory only; nothing is written to disk")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetSettingsService sets the settings service used by the config command.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetBootstrap sets the function that opens the store on first use.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// Execute runs the root command. Results go to stdout so they can be
// piped; cobra would otherwise print them on stderr.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func persistentPreRun(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("verbose") {
		logger.SetVerbose(rootOpts.Verbose)
	}

	if cmd.Annotations[annotationNoStore] == "true" {
		return nil
	}
	if todoService != nil || bootstrap == nil {
		return nil
	}

	svc, closeFn, err := bootstrap(rootOpts)
	if err != nil {
		return fmt.Errorf("opening todo store: %w", err)
	}
	todoService = svc.Todo
	changeWatcher = svc.Watcher
	closeServices = closeFn
	return nil
}

// Shutdown releases whatever the bootstrap opened. PersistentPostRunE does
// not run when a command fails, so main calls this too.
func Shutdown() error {
	return shutdownServices()
}

func shutdownServices() error {
	if closeServices == nil {
		return nil
	}
	closeFn := closeServices
	closeServices = nil
	todoService = nil
	changeWatcher = nil
	return closeFn()
}

func requireTodoService() (driving.TodoService, error) {
	if todoService == nil {
		return nil, errors.New("todo service not configured")
	}
	return todoService, nil
}
