package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/services"
)

// Services are the content services a panel talks to
type Services struct {
	Projects      services.ProjectService
	Presentations services.PresentationService
	Slides        services.SlideService
}

// AdminState is what the admin panel shows. Presentations belong to the
// selected project and Slides to the selected presentation; both are empty
// without a selection.
type AdminState struct {
	Projects             []models.Project
	Presentations        []models.Presentation
	Slides               []models.Slide
	SelectedProject      string
	SelectedPresentation string
}

// AdminPanel drives the project, presentation and slide management tabs.
// Every mutation is followed by a refetch of the visible lists; the panel
// never patches its lists locally.
type AdminPanel struct {
	svc    Services
	caller *models.Session
	logger *slog.Logger

	mu    sync.Mutex
	state AdminState
}

// NewAdminPanel creates a panel acting as caller
func NewAdminPanel(svc Services, caller *models.Session, logger *slog.Logger) *AdminPanel {
	return &AdminPanel{svc: svc, caller: caller, logger: logger}
}

// State returns a copy of the current state
func (p *AdminPanel) State() AdminState {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.state
	s.Projects = append([]models.Project(nil), s.Projects...)
	s.Presentations = append([]models.Presentation(nil), s.Presentations...)
	s.Slides = append([]models.Slide(nil), s.Slides...)
	return s
}

// Load fetches every visible list
func (p *AdminPanel) Load(ctx context.Context) error {
	return p.refresh(ctx)
}

// SelectProject switches the presentations tab to projectID. The
// presentation selection belongs to the old project and is cleared. An
// empty id clears the selection.
func (p *AdminPanel) SelectProject(ctx context.Context, projectID string) error {
	p.mu.Lock()
	p.state.SelectedProject = projectID
	p.state.SelectedPresentation = ""
	p.mu.Unlock()
	return p.refresh(ctx)
}

// SelectPresentation switches the slides tab to presentationID
func (p *AdminPanel) SelectPresentation(ctx context.Context, presentationID string) error {
	p.mu.Lock()
	p.state.SelectedPresentation = presentationID
	p.mu.Unlock()
	return p.refresh(ctx)
}

// CreateProject adds a project
func (p *AdminPanel) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	project, err := p.svc.Projects.CreateProject(ctx, p.caller, req)
	if err != nil {
		return nil, err
	}
	return project, p.refresh(ctx)
}

// UpdateProject edits a project
func (p *AdminPanel) UpdateProject(ctx context.Context, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	project, err := p.svc.Projects.UpdateProject(ctx, p.caller, id, req)
	if err != nil {
		return nil, err
	}
	return project, p.refresh(ctx)
}

// DeleteProject removes a project. Deleting the selected project clears
// both selections since its presentations are gone with it.
func (p *AdminPanel) DeleteProject(ctx context.Context, id string) error {
	if err := p.svc.Projects.DeleteProject(ctx, p.caller, id); err != nil {
		return err
	}

	p.mu.Lock()
	if p.state.SelectedProject == id {
		p.state.SelectedProject = ""
		p.state.SelectedPresentation = ""
	}
	p.mu.Unlock()

	p.logger.Debug("project deleted from panel", "project_id", id)
	return p.refresh(ctx)
}

// CreatePresentation adds a presentation to the selected project
func (p *AdminPanel) CreatePresentation(ctx context.Context, title string) (*models.Presentation, error) {
	projectID := p.State().SelectedProject
	if projectID == "" {
		return nil, fmt.Errorf("%w: select a project first", domain.ErrValidation)
	}

	presentation, err := p.svc.Presentations.CreatePresentation(ctx, p.caller, &services.CreatePresentationRequest{
		ProjectID: projectID,
		Title:     title,
	})
	if err != nil {
		return nil, err
	}
	return presentation, p.refresh(ctx)
}

// UpdatePresentation renames a presentation
func (p *AdminPanel) UpdatePresentation(ctx context.Context, id, title string) (*models.Presentation, error) {
	presentation, err := p.svc.Presentations.UpdatePresentation(ctx, p.caller, id, &services.UpdatePresentationRequest{Title: title})
	if err != nil {
		return nil, err
	}
	return presentation, p.refresh(ctx)
}

// DeletePresentation removes a presentation, clearing the selection if it
// was selected
func (p *AdminPanel) DeletePresentation(ctx context.Context, id string) error {
	if err := p.svc.Presentations.DeletePresentation(ctx, p.caller, id); err != nil {
		return err
	}

	p.mu.Lock()
	if p.state.SelectedPresentation == id {
		p.state.SelectedPresentation = ""
	}
	p.mu.Unlock()

	return p.refresh(ctx)
}

// CreateSlide adds a slide to the selected presentation. content is the
// raw text typed into the form.
func (p *AdminPanel) CreateSlide(ctx context.Context, content string, order *int) (*models.Slide, error) {
	presentationID := p.State().SelectedPresentation
	if presentationID == "" {
		return nil, fmt.Errorf("%w: select a presentation first", domain.ErrValidation)
	}

	slide, err := p.svc.Slides.CreateSlide(ctx, p.caller, &services.CreateSlideRequest{
		PresentationID: presentationID,
		Content:        content,
		SlideOrder:     order,
	})
	if err != nil {
		return nil, err
	}
	return slide, p.refresh(ctx)
}

// UpdateSlide replaces a slide's content
func (p *AdminPanel) UpdateSlide(ctx context.Context, id, content string, order *int) (*models.Slide, error) {
	slide, err := p.svc.Slides.UpdateSlide(ctx, p.caller, id, &services.UpdateSlideRequest{
		Content:    content,
		SlideOrder: order,
	})
	if err != nil {
		return nil, err
	}
	return slide, p.refresh(ctx)
}

// DeleteSlide removes a slide
func (p *AdminPanel) DeleteSlide(ctx context.Context, id string) error {
	if err := p.svc.Slides.DeleteSlide(ctx, p.caller, id); err != nil {
		return err
	}
	return p.refresh(ctx)
}

// refresh refetches the three lists concurrently and swaps them in at once
func (p *AdminPanel) refresh(ctx context.Context) error {
	p.mu.Lock()
	projectID := p.state.SelectedProject
	presentationID := p.state.SelectedPresentation
	p.mu.Unlock()

	var (
		projects      []models.Project
		presentations []models.Presentation
		slides        []models.Slide
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = p.svc.Projects.ListProjects(gctx, p.caller)
		return err
	})
	if projectID != "" {
		g.Go(func() error {
			var err error
			presentations, err = p.svc.Presentations.ListPresentations(gctx, p.caller, projectID)
			return err
		})
	}
	if presentationID != "" {
		g.Go(func() error {
			var err error
			slides, err = p.svc.Slides.ListSlides(gctx, p.caller, presentationID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Warn("admin panel refresh failed", "error", err)
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	// a selection changed while fetching; the newer call refreshes
	if p.state.SelectedProject != projectID || p.state.SelectedPresentation != presentationID {
		return nil
	}
	p.state.Projects = projects
	p.state.Presentations = presentations
	p.state.Slides = slides
	return nil
}
