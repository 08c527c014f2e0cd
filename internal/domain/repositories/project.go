package repositories

import (
	"context"

	"clipdeck/internal/domain/models"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error

	GetByID(ctx context.Context, id string) (*models.Project, error)

	// List returns all projects ordered by created_at DESC
	List(ctx context.Context) ([]models.Project, error)

	// Update writes title and description
	Update(ctx context.Context, project *models.Project) error

	// Delete removes the project; presentations and slides cascade
	Delete(ctx context.Context, id string) error
}

// PresentationRepository defines data access operations for presentations
type PresentationRepository interface {
	Create(ctx context.Context, presentation *models.Presentation) error

	GetByID(ctx context.Context, id string) (*models.Presentation, error)

	// ListByProject returns the project's presentations ordered by created_at DESC
	ListByProject(ctx context.Context, projectID string) ([]models.Presentation, error)

	Update(ctx context.Context, presentation *models.Presentation) error

	Delete(ctx context.Context, id string) error
}

// SlideRepository defines data access operations for slides
type SlideRepository interface {
	Create(ctx context.Context, slide *models.Slide) error

	GetByID(ctx context.Context, id string) (*models.Slide, error)

	// ListByPresentation returns slides ordered by slide_order ASC
	ListByPresentation(ctx context.Context, presentationID string) ([]models.Slide, error)

	// CountByPresentation returns how many slides the presentation has
	CountByPresentation(ctx context.Context, presentationID string) (int, error)

	// Update writes content and slide_order
	Update(ctx context.Context, slide *models.Slide) error

	Delete(ctx context.Context, id string) error
}
