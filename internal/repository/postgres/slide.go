package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/repositories"
)

// PostgresSlideRepository implements the SlideRepository interface.
// Content is stored in a JSONB column and round-trips as raw bytes.
type PostgresSlideRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSlideRepository creates a new slide repository
func NewSlideRepository(config *RepositoryConfig) repositories.SlideRepository {
	return &PostgresSlideRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

func (r *PostgresSlideRepository) Create(ctx context.Context, s *models.Slide) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (presentation_id, content, slide_order, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, r.tables.Slides)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		s.PresentationID,
		s.Content,
		s.SlideOrder,
		s.CreatedBy,
		s.CreatedAt,
		s.UpdatedAt,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("presentation %s: %w", s.PresentationID, domain.ErrNotFound)
		}
		return fmt.Errorf("create slide: %w", err)
	}

	return nil
}

func (r *PostgresSlideRepository) GetByID(ctx context.Context, id string) (*models.Slide, error) {
	query := fmt.Sprintf(`
		SELECT id, presentation_id, content, slide_order, created_by, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Slides)

	var s models.Slide
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.PresentationID,
		&s.Content,
		&s.SlideOrder,
		&s.CreatedBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) || IsPgInvalidTextError(err) {
			return nil, fmt.Errorf("slide %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get slide: %w", err)
	}

	return &s, nil
}

// ListByPresentation orders by slide_order; ties fall back to creation time
func (r *PostgresSlideRepository) ListByPresentation(ctx context.Context, presentationID string) ([]models.Slide, error) {
	query := fmt.Sprintf(`
		SELECT id, presentation_id, content, slide_order, created_by, created_at, updated_at
		FROM %s
		WHERE presentation_id = $1
		ORDER BY slide_order ASC, created_at ASC
	`, r.tables.Slides)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, presentationID)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	slides := []models.Slide{}
	for rows.Next() {
		var s models.Slide
		err := rows.Scan(
			&s.ID,
			&s.PresentationID,
			&s.Content,
			&s.SlideOrder,
			&s.CreatedBy,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		slides = append(slides, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slides: %w", err)
	}

	return slides, nil
}

func (r *PostgresSlideRepository) CountByPresentation(ctx context.Context, presentationID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE presentation_id = $1`, r.tables.Slides)

	var n int
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, presentationID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count slides: %w", err)
	}
	return n, nil
}

func (r *PostgresSlideRepository) Update(ctx context.Context, s *models.Slide) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $1, slide_order = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Slides)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, s.Content, s.SlideOrder, s.UpdatedAt, s.ID)
	if err != nil {
		return fmt.Errorf("update slide: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("slide %s: %w", s.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresSlideRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Slides)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		if IsPgInvalidTextError(err) {
			return fmt.Errorf("slide %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("delete slide: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("slide %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
