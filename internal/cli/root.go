// Package cli holds the navdir commands. Every command reads the same
// NAVDIR_* environment as the server, so `navdir import` against the redis
// or sqlite backend edits the directory the server is serving.
package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/navdir/internal/app"
	"github.com/MrSnakeDoc/navdir/internal/config"
	"github.com/MrSnakeDoc/navdir/internal/logger"
	"github.com/MrSnakeDoc/navdir/internal/store"
	"github.com/MrSnakeDoc/navdir/internal/utils"
	"github.com/MrSnakeDoc/navdir/internal/version"
)

// RootCmd returns the navdir command tree. Without a subcommand it serves.
func RootCmd() *cobra.Command {
	serve := ServeCmd()

	cmd := &cobra.Command{
		Use:     "navdir",
		Short:   "Personal link directory",
		Version: version.String(),
		Long: `navdir serves a categorized homepage of links, an admin editor and a
small JSON API, backed by a key-value store (memory, redis or sqlite).

Configuration is read from NAVDIR_* environment variables.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	cmd.AddCommand(serve)
	cmd.AddCommand(ExportCmd())
	cmd.AddCommand(ImportCmd())
	cmd.AddCommand(PasswordCmd())
	cmd.AddCommand(VersionCmd())

	return cmd
}

// loadConfig reads and validates the environment.
func loadConfig() (*config.Config, logger.Logger, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration:\n%w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.PrettyLog)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// openStore opens the configured backend for a one-shot command.
func openStore(ctx context.Context, cmd *cobra.Command) (*store.Accessor, func(), error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Backend == config.BackendMemory {
		warn(cmd, "backend is %q: changes are discarded when this command exits", cfg.Backend)
	}

	kvStore, err := app.OpenKV(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	acc, err := app.NewAccessor(cfg, kvStore, log)
	if err != nil {
		utils.Close(kvStore)
		return nil, nil, err
	}

	cleanup := func() {
		utils.CloseLogged(kvStore, log, "kv store")
		_ = log.Sync()
	}
	return acc, cleanup, nil
}

func success(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.New(color.FgGreen).Sprint("✓"), fmt.Sprintf(format, args...))
}

func warn(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.New(color.FgYellow).Sprint("!"), fmt.Sprintf(format, args...))
}
