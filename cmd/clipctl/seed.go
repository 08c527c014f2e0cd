package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"clipdeck/internal/auth"
	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/repositories"
)

// Seeded administrator
const (
	defaultAdminEmail    = "admin@test.com"
	defaultAdminPassword = "admin123"
)

var (
	seedEmail    string
	seedPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Ensure the administrator account exists",
	Long: `Create the administrator in Supabase Auth if missing, then make sure its
profile exists with the ADMIN role. Running it again is harmless.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedEmail, "email", defaultAdminEmail, "Administrator email")
	seedCmd.Flags().StringVar(&seedPassword, "password", defaultAdminPassword, "Administrator password")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required")
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	admin := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	profile, err := seedAdmin(ctx, admin, s.profiles(), seedEmail, seedPassword)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "admin ready: %s (%s)\n", profile.Email, profile.ID)
	return nil
}

type userEnsurer interface {
	EnsureUser(ctx context.Context, email, password string) (string, bool, error)
}

// seedAdmin makes email an ADMIN, creating the account and profile as needed
func seedAdmin(ctx context.Context, users userEnsurer, profiles repositories.ProfileRepository, email, password string) (*models.Profile, error) {
	userID, created, err := users.EnsureUser(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	cmdLogger().Info("auth user", "email", email, "id", userID, "created", created)

	profile, err := profiles.GetByID(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		profile = &models.Profile{ID: userID, Email: email, Role: models.RoleAdmin}
		if err := profiles.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		return profile, nil
	case err != nil:
		return nil, err
	case profile.Role == models.RoleAdmin:
		return profile, nil
	}

	return profiles.UpdateRole(ctx, userID, models.RoleAdmin)
}
