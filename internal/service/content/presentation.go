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

type presentationService struct {
	presentationRepo repositories.PresentationRepository
	authorizer       services.Authorizer
	logger           *slog.Logger
}

// NewPresentationService creates a new presentation service.
// Reads need VIEWER, writes need EDITOR.
func NewPresentationService(
	presentationRepo repositories.PresentationRepository,
	authorizer services.Authorizer,
	logger *slog.Logger,
) services.PresentationService {
	return &presentationService{
		presentationRepo: presentationRepo,
		authorizer:       authorizer,
		logger:           logger,
	}
}

func (s *presentationService) CreatePresentation(ctx context.Context, caller *models.Session, req *services.CreatePresentationRequest) (*models.Presentation, error) {
	if err := s.authorizer.Require(caller, models.RoleEditor); err != nil {
		return nil, err
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.ProjectID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(notBlank),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	p := &models.Presentation{
		ProjectID: req.ProjectID,
		Title:     strings.TrimSpace(req.Title),
		CreatedBy: caller.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// a missing project surfaces as ErrNotFound from the foreign key
	if err := s.presentationRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("presentation created",
		"id", p.ID,
		"project_id", p.ProjectID,
		"user_id", caller.UserID,
	)

	return p, nil
}

func (s *presentationService) GetPresentation(ctx context.Context, caller *models.Session, id string) (*models.Presentation, error) {
	if err := s.authorizer.Require(caller, models.RoleViewer); err != nil {
		return nil, err
	}
	return s.presentationRepo.GetByID(ctx, id)
}

func (s *presentationService) ListPresentations(ctx context.Context, caller *models.Session, projectID string) ([]models.Presentation, error) {
	if err := s.authorizer.Require(caller, models.RoleViewer); err != nil {
		return nil, err
	}
	return s.presentationRepo.ListByProject(ctx, projectID)
}

func (s *presentationService) UpdatePresentation(ctx context.Context, caller *models.Session, id string, req *services.UpdatePresentationRequest) (*models.Presentation, error) {
	if err := s.authorizer.Require(caller, models.RoleEditor); err != nil {
		return nil, err
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
			validation.By(notBlank),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	p, err := s.presentationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Title = strings.TrimSpace(req.Title)
	p.UpdatedAt = time.Now()

	if err := s.presentationRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("presentation updated",
		"id", p.ID,
		"user_id", caller.UserID,
	)

	return p, nil
}

func (s *presentationService) DeletePresentation(ctx context.Context, caller *models.Session, id string) error {
	if err := s.authorizer.Require(caller, models.RoleEditor); err != nil {
		return err
	}

	if err := s.presentationRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("presentation deleted",
		"id", id,
		"user_id", caller.UserID,
	)

	return nil
}
