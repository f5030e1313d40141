package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/onboarding-backend/internal/auth"
	"github.com/baharkarakas/onboarding-backend/internal/models"
)

var tokenRole string

func init() {
	tokenCmd.Flags().StringVar(&tokenRole, "role", string(models.RoleUser), "role claim (User or Admin)")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Mint an access token for local testing",
	Long: `Mint an access token signed with JWT_ACCESS_SECRET. The user is not
looked up, so the token is only useful against a database that has it.

Examples:
  wizardctl token 1 --role Admin
  curl -H "Authorization: Bearer $(wizardctl token 2)" localhost:8080/api/requirements`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		role := models.Role(tokenRole)
		if !role.Valid() {
			return fmt.Errorf("invalid role %q: want %s or %s", tokenRole, models.RoleUser, models.RoleAdmin)
		}

		tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
		pair, err := tm.GeneratePair(id, role)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), pair.Access)
		return nil
	},
}
