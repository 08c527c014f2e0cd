package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"clipdeck/internal/config"
	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/repositories"
	"clipdeck/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type slideService struct {
	slideRepo  repositories.SlideRepository
	txManager  repositories.TransactionManager
	authorizer services.Authorizer
	logger     *slog.Logger
}

// NewSlideService creates a new slide service.
// Reads need VIEWER, writes need EDITOR.
func NewSlideService(
	slideRepo repositories.SlideRepository,
	txManager repositories.TransactionManager,
	authorizer services.Authorizer,
	logger *slog.Logger,
) services.SlideService {
	return &slideService{
		slideRepo:  slideRepo,
		txManager:  txManager,
		authorizer: authorizer,
		logger:     logger,
	}
}

// NormalizeContent turns raw form text into the stored JSON document.
// Well-formed JSON is kept as-is, anything else becomes {"text": raw}.
func NormalizeContent(raw string) json.RawMessage {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) > 0 && json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	wrapped, _ := json.Marshal(map[string]string{"text": raw})
	return wrapped
}

// CreateSlide adds a slide. Without an explicit order the slide goes after
// the existing ones (order = current count); count and insert share one transaction.
func (s *slideService) CreateSlide(ctx context.Context, caller *models.Session, req *services.CreateSlideRequest) (*models.Slide, error) {
	if err := s.authorizer.Require(caller, models.RoleEditor); err != nil {
		return nil, err
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.PresentationID, validation.Required),
		validation.Field(&req.Content, validation.Length(0, config.MaxSlideContentBytes)),
		validation.Field(&req.SlideOrder, validation.Min(0)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now()
	slide := &models.Slide{
		PresentationID: req.PresentationID,
		Content:        NormalizeContent(req.Content),
		CreatedBy:      caller.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if req.SlideOrder != nil {
			slide.SlideOrder = *req.SlideOrder
		} else {
			count, err := s.slideRepo.CountByPresentation(ctx, req.PresentationID)
			if err != nil {
				return err
			}
			slide.SlideOrder = count
		}
		return s.slideRepo.Create(ctx, slide)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("slide created",
		"id", slide.ID,
		"presentation_id", slide.PresentationID,
		"slide_order", slide.SlideOrder,
		"user_id", caller.UserID,
	)

	return slide, nil
}

func (s *slideService) GetSlide(ctx context.Context, caller *models.Session, id string) (*models.Slide, error) {
	if err := s.authorizer.Require(caller, models.RoleViewer); err != nil {
		return nil, err
	}
	return s.slideRepo.GetByID(ctx, id)
}

func (s *slideService) ListSlides(ctx context.Context, caller *models.Session, presentationID string) ([]models.Slide, error) {
	if err := s.authorizer.Require(caller, models.RoleViewer); err != nil {
		return nil, err
	}
	return s.slideRepo.ListByPresentation(ctx, presentationID)
}

// UpdateSlide replaces the content and, when given, the order. Last write wins.
func (s *slideService) UpdateSlide(ctx context.Context, caller *models.Session, id string, req *services.UpdateSlideRequest) (*models.Slide, error) {
	if err := s.authorizer.Require(caller, models.RoleEditor); err != nil {
		return nil, err
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.Content, validation.Length(0, config.MaxSlideContentBytes)),
		validation.Field(&req.SlideOrder, validation.Min(0)),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	slide, err := s.slideRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slide.Content = NormalizeContent(req.Content)
	if req.SlideOrder != nil {
		slide.SlideOrder = *req.SlideOrder
	}
	slide.UpdatedAt = time.Now()

	if err := s.slideRepo.Update(ctx, slide); err != nil {
		return nil, err
	}

	s.logger.Info("slide updated",
		"id", slide.ID,
		"user_id", caller.UserID,
	)

	return slide, nil
}

func (s *slideService) DeleteSlide(ctx context.Context, caller *models.Session, id string) error {
	if err := s.authorizer.Require(caller, models.RoleEditor); err != nil {
		return err
	}

	if err := s.slideRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("slide deleted",
		"id", id,
		"user_id", caller.UserID,
	)

	return nil
}
