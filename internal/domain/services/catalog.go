package services

import (
	"context"

	"clipdeck/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	CreateProject(ctx context.Context, caller *models.Session, req *CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, caller *models.Session, id string) (*models.Project, error)
	ListProjects(ctx context.Context, caller *models.Session) ([]models.Project, error)
	UpdateProject(ctx context.Context, caller *models.Session, id string, req *UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, caller *models.Session, id string) error
}

// CreatePresentationRequest represents a request to create a presentation
type CreatePresentationRequest struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title"`
}

// UpdatePresentationRequest represents a request to rename a presentation
type UpdatePresentationRequest struct {
	Title string `json:"title"`
}

// PresentationService defines business logic operations for presentations
type PresentationService interface {
	CreatePresentation(ctx context.Context, caller *models.Session, req *CreatePresentationRequest) (*models.Presentation, error)
	GetPresentation(ctx context.Context, caller *models.Session, id string) (*models.Presentation, error)
	ListPresentations(ctx context.Context, caller *models.Session, projectID string) ([]models.Presentation, error)
	UpdatePresentation(ctx context.Context, caller *models.Session, id string, req *UpdatePresentationRequest) (*models.Presentation, error)
	DeletePresentation(ctx context.Context, caller *models.Session, id string) error
}

// CreateSlideRequest carries slide content as the raw text typed by the user.
// Well-formed JSON is stored as-is; anything else is wrapped as {"text": ...}.
// A nil SlideOrder appends the slide after the existing ones.
type CreateSlideRequest struct {
	PresentationID string `json:"presentation_id"`
	Content        string `json:"content"`
	SlideOrder     *int   `json:"slide_order,omitempty"`
}

// UpdateSlideRequest replaces content and, when given, the order
type UpdateSlideRequest struct {
	Content    string `json:"content"`
	SlideOrder *int   `json:"slide_order,omitempty"`
}

// SlideService defines business logic operations for slides
type SlideService interface {
	CreateSlide(ctx context.Context, caller *models.Session, req *CreateSlideRequest) (*models.Slide, error)
	GetSlide(ctx context.Context, caller *models.Session, id string) (*models.Slide, error)
	ListSlides(ctx context.Context, caller *models.Session, presentationID string) ([]models.Slide, error)
	UpdateSlide(ctx context.Context, caller *models.Session, id string, req *UpdateSlideRequest) (*models.Slide, error)
	DeleteSlide(ctx context.Context, caller *models.Session, id string) error
}
