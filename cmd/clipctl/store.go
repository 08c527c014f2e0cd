package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"clipdeck/internal/auth"
	"clipdeck/internal/dashboard"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/repositories"
	"clipdeck/internal/repository/postgres"
	serviceAuth "clipdeck/internal/service/auth"
	"clipdeck/internal/service/content"
)

// store bundles the database handles a command needs
type store struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	repos  *postgres.RepositoryConfig
}

func openStore(ctx context.Context) (*store, error) {
	if cfg.SupabaseDBURL == "" {
		return nil, fmt.Errorf("SUPABASE_DB_URL is not set")
	}
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		return nil, err
	}
	tables := postgres.NewTableNames(cfg.TablePrefix)
	return &store{
		pool:   pool,
		tables: tables,
		repos: &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: cmdLogger(),
		},
	}, nil
}

func (s *store) Close() {
	s.pool.Close()
}

func (s *store) profiles() repositories.ProfileRepository {
	return postgres.NewProfileRepository(s.repos)
}

// services wires the content services over this store
func (s *store) services() dashboard.Services {
	authorizer := serviceAuth.NewRoleAuthorizer()
	log := cmdLogger()
	return dashboard.Services{
		Projects:      content.NewProjectService(postgres.NewProjectRepository(s.repos), authorizer, log),
		Presentations: content.NewPresentationService(postgres.NewPresentationRepository(s.repos), authorizer, log),
		Slides: content.NewSlideService(
			postgres.NewSlideRepository(s.repos),
			postgres.NewTransactionManager(s.pool, log),
			authorizer,
			log,
		),
	}
}

// actAs resolves the session commands run under: the Supabase user with
// this email and its stored profile
func (s *store) actAs(ctx context.Context, email string) (*models.Session, error) {
	admin := auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey)
	userID, err := admin.FindUserIDByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("look up %s: %w", email, err)
	}
	profile, err := s.profiles().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile for %s: %w", email, err)
	}
	return &models.Session{
		UserID:  userID,
		Email:   email,
		Profile: profile,
	}, nil
}
