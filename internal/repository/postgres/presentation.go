package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/repositories"
)

// PostgresPresentationRepository implements the PresentationRepository interface
type PostgresPresentationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewPresentationRepository creates a new presentation repository
func NewPresentationRepository(config *RepositoryConfig) repositories.PresentationRepository {
	return &PostgresPresentationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a presentation under its project
func (r *PostgresPresentationRepository) Create(ctx context.Context, p *models.Presentation) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (project_id, title, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Presentations)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		p.ProjectID,
		p.Title,
		p.CreatedBy,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %s: %w", p.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create presentation: %w", err)
	}

	return nil
}

// GetByID retrieves a presentation by ID
func (r *PostgresPresentationRepository) GetByID(ctx context.Context, id string) (*models.Presentation, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, title, created_by, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Presentations)

	var p models.Presentation
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.ProjectID,
		&p.Title,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) || IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("presentation %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get presentation: %w", err)
	}

	return &p, nil
}

// ListByProject retrieves a project's presentations, newest first
func (r *PostgresPresentationRepository) ListByProject(ctx context.Context, projectID string) ([]models.Presentation, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, title, created_by, created_at, updated_at
		FROM %s
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, r.tables.Presentations)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	defer rows.Close()

	presentations := []models.Presentation{}
	for rows.Next() {
		var p models.Presentation
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Title, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan presentation: %w", err)
		}
		presentations = append(presentations, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presentations: %w", err)
	}

	return presentations, nil
}

// Update renames a presentation
func (r *PostgresPresentationRepository) Update(ctx context.Context, p *models.Presentation) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, updated_at = $2
		WHERE id = $3
	`, r.tables.Presentations)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, p.Title, p.UpdatedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update presentation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("presentation %s: %w", p.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a presentation and its slides
func (r *PostgresPresentationRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Presentations)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		if IsPgInvalidTextError(err) {
			return fmt.Errorf("presentation %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("delete presentation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("presentation %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
