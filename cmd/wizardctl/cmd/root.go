// Package cmd implements the wizardctl operator commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/baharkarakas/onboarding-backend/internal/config"
	"github.com/baharkarakas/onboarding-backend/internal/db"
	"github.com/baharkarakas/onboarding-backend/internal/logger"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	databaseURL string

	cfg config.Config
	log *slog.Logger

	okFmt   = color.New(color.FgGreen).SprintFunc()
	infoFmt = color.New(color.FgYellow).SprintFunc()
	dimFmt  = color.New(color.Faint).SprintFunc()
)

var rootCmd = &cobra.Command{
	Use:   "wizardctl",
	Short: "Operator CLI for the onboarding backend",
	Long: `wizardctl runs maintenance tasks against the onboarding database:
applying migrations, seeding the default accounts and minting access
tokens for local testing.

Configuration is read from the environment (and .env) the same way the
API server reads it.`,
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if databaseURL != "" {
			cfg.DatabaseURL = databaseURL
		}
		log = logger.NewWithWriter(cfg.Env, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres URL (overrides DATABASE_URL)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}
