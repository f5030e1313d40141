package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/onboarding-backend/internal/auth"
	"github.com/baharkarakas/onboarding-backend/internal/models"
	"github.com/baharkarakas/onboarding-backend/internal/repository/postgres"
	"github.com/baharkarakas/onboarding-backend/internal/services"
)

var (
	seedAdminPassword string
	seedUserPassword  string
)

func init() {
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "admin123", "password for admin@clirec.com")
	seedCmd.Flags().StringVar(&seedUserPassword, "user-password", "user123", "password for user@clirec.com")
	rootCmd.AddCommand(seedCmd)
}

type seedAccount struct {
	email, password, fullName string
	role                      models.Role
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default admin and user accounts",
	Long: `Create admin@clirec.com (Admin) and user@clirec.com (User) when they
do not exist yet. Existing accounts are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		repos := postgres.NewRepositories(pool)
		tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
		us := services.NewUserService(repos.Users, tm, auth.NewMemoryRevocations(), log)

		accounts := []seedAccount{
			{"admin@clirec.com", seedAdminPassword, "Admin User", models.RoleAdmin},
			{"user@clirec.com", seedUserPassword, "Regular User", models.RoleUser},
		}
		out := cmd.OutOrStdout()
		for _, a := range accounts {
			u, created, err := us.EnsureUser(cmd.Context(), a.email, a.password, a.fullName, a.role)
			if err != nil {
				return fmt.Errorf("seed %s: %w", a.email, err)
			}
			if created {
				fmt.Fprintf(out, "%s %s %s\n", okFmt("created"), u.Email, dimFmt(fmt.Sprintf("(id=%d role=%s)", u.ID, u.Role)))
			} else {
				fmt.Fprintf(out, "%s %s %s\n", infoFmt("exists "), u.Email, dimFmt(fmt.Sprintf("(id=%d role=%s)", u.ID, u.Role)))
			}
		}
		return nil
	},
}
