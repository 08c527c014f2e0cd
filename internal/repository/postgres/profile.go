package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/repositories"
)

// PostgresProfileRepository implements the ProfileRepository interface
type PostgresProfileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(config *RepositoryConfig) repositories.ProfileRepository {
	return &PostgresProfileRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByID retrieves the profile for a user
func (r *PostgresProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT id, email, role, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Profiles)

	var p models.Profile
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Email,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) || IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}

// Create inserts a profile. A concurrent first login for the same user
// surfaces as a ConflictError.
func (r *PostgresProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, email, role)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`, r.tables.Profiles)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		profile.ID,
		profile.Email,
		profile.Role,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("profile for %s already exists", profile.Email),
				ResourceType: "profile",
				ResourceID:   profile.ID,
			}
		}
		return fmt.Errorf("create profile: %w", err)
	}

	return nil
}

// List retrieves all profiles, newest first
func (r *PostgresProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	query := fmt.Sprintf(`
		SELECT id, email, role, created_at, updated_at
		FROM %s
		ORDER BY created_at DESC
	`, r.tables.Profiles)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}

	return profiles, nil
}

// UpdateRole sets a user's role
func (r *PostgresProfileRepository) UpdateRole(ctx context.Context, id string, role models.Role) (*models.Profile, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, email, role, created_at, updated_at
	`, r.tables.Profiles)

	var p models.Profile
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, role, id).Scan(
		&p.ID,
		&p.Email,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) || IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update profile role: %w", err)
	}

	return &p, nil
}
