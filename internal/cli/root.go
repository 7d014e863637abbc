// Package cli implements the autostore command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// EnvDB is the environment variable naming the default database path.
const EnvDB = "AUTOSTORE_DB"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath  string
	Verbose bool
}

// NewRootCommand creates the root command for the autostore CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "autostore",
		Short: "Persist quantum-chemistry calculation results",
		Long: "autostore stores calculation results in SQLite, deduplicating\n" +
			"equivalent specifications and structures through canonical hashing.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Missing .env files are fine; env vars may come from anywhere.
			_ = godotenv.Load()
			if opts.DBPath == "" {
				opts.DBPath = os.Getenv(EnvDB)
			}
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path (default $"+EnvDB+")")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewWriteEnergyCommand(opts))
	cmd.AddCommand(NewWriteStationaryCommand(opts))
	cmd.AddCommand(NewResolveCommand(opts))
	cmd.AddCommand(NewHashCommand())
	cmd.AddCommand(NewSchemesCommand())

	return cmd
}

// requireDB validates that a database path was provided.
func requireDB(opts *RootOptions) error {
	if opts.DBPath == "" {
		return fmt.Errorf("no database: pass --db or set $%s", EnvDB)
	}
	return nil
}
