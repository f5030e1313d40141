package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/onboarding-backend/internal/db"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := db.RunMigrations(cmd.Context(), pool); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), okFmt("migrations up to date"))
		return nil
	},
}
