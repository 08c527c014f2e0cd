package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clipdeck/internal/config"
	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/repositories"
	"clipdeck/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	authorizer  services.Authorizer
	logger      *slog.Logger
}

// NewProjectService creates a new project service.
// Reads need VIEWER, writes need ADMIN.
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	authorizer services.Authorizer,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// CreateProject creates a new project
func (s *projectService) CreateProject(ctx context.Context, caller *models.Session, req *services.CreateProjectRequest) (*models.Project, error) {
	if err := s.authorizer.Require(caller, models.RoleAdmin); err != nil {
		return nil, err
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	project := &models.Project{
		Title:       strings.TrimSpace(req.Title),
		Description: normalizeDescription(req.Description),
		CreatedBy:   caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"title", project.Title,
		"user_id", caller.UserID,
	)

	return project, nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, caller *models.Session, id string) (*models.Project, error) {
	if err := s.authorizer.Require(caller, models.RoleViewer); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, id)
}

// ListProjects retrieves all projects, newest first
func (s *projectService) ListProjects(ctx context.Context, caller *models.Session) ([]models.Project, error) {
	if err := s.authorizer.Require(caller, models.RoleViewer); err != nil {
		return nil, err
	}
	return s.projectRepo.List(ctx)
}

// UpdateProject replaces title and description
func (s *projectService) UpdateProject(ctx context.Context, caller *models.Session, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	if err := s.authorizer.Require(caller, models.RoleAdmin); err != nil {
		return nil, err
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Title = strings.TrimSpace(req.Title)
	project.Description = normalizeDescription(req.Description)
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"title", project.Title,
		"user_id", caller.UserID,
	)

	return project, nil
}

// DeleteProject deletes a project with its presentations and slides
func (s *projectService) DeleteProject(ctx context.Context, caller *models.Session, id string) error {
	if err := s.authorizer.Require(caller, models.RoleAdmin); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"user_id", caller.UserID,
	)

	return nil
}

// validateCreateRequest validates a create project request
func (s *projectService) validateCreateRequest(req *services.CreateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
	)
}

// validateUpdateRequest validates an update project request
func (s *projectService) validateUpdateRequest(req *services.UpdateProjectRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Description, validation.Length(0, config.MaxDescriptionLength)),
	)
}

// normalizeDescription trims the description; blank becomes NULL
func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*d)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// notBlank rejects strings that are empty after trimming
func notBlank(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}
