package dashboard

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"clipdeck/internal/domain/models"
)

// SlideView is a slide with its content rendered for display
type SlideView struct {
	models.Slide
	Pretty string `json:"pretty"`
}

func viewSlides(slides []models.Slide) []SlideView {
	out := make([]SlideView, len(slides))
	for i := range slides {
		out[i] = SlideView{Slide: slides[i], Pretty: slides[i].PrettyContent()}
	}
	return out
}

// Viewer is the read-only drill-down project, presentations, slides.
// Selecting a project drops the presentation selection.
type Viewer struct {
	svc    Services
	caller *models.Session
	logger *slog.Logger

	Projects             []models.Project
	Presentations        []models.Presentation
	Slides               []SlideView
	SelectedProject      *models.Project
	SelectedPresentation *models.Presentation
}

// NewViewer creates a viewer acting as caller
func NewViewer(svc Services, caller *models.Session, logger *slog.Logger) *Viewer {
	return &Viewer{svc: svc, caller: caller, logger: logger}
}

// Load fetches the project list
func (v *Viewer) Load(ctx context.Context) error {
	projects, err := v.svc.Projects.ListProjects(ctx, v.caller)
	if err != nil {
		v.logger.Error("error fetching projects", "error", err)
		return err
	}
	v.Projects = projects
	return nil
}

// SelectProject shows the project's presentations
func (v *Viewer) SelectProject(ctx context.Context, project models.Project) error {
	v.SelectedProject = &project
	v.SelectedPresentation = nil
	v.Slides = nil

	presentations, err := v.svc.Presentations.ListPresentations(ctx, v.caller, project.ID)
	if err != nil {
		v.logger.Error("error fetching presentations", "project_id", project.ID, "error", err)
		return err
	}
	v.Presentations = presentations
	return nil
}

// SelectPresentation shows the presentation's slides
func (v *Viewer) SelectPresentation(ctx context.Context, presentation models.Presentation) error {
	v.SelectedPresentation = &presentation

	slides, err := v.svc.Slides.ListSlides(ctx, v.caller, presentation.ID)
	if err != nil {
		v.logger.Error("error fetching slides", "presentation_id", presentation.ID, "error", err)
		return err
	}
	v.Slides = viewSlides(slides)
	return nil
}

// PresentationNode is one presentation with its slides
type PresentationNode struct {
	models.Presentation
	Slides []SlideView `json:"slides"`
}

// ProjectNode is one project with everything under it
type ProjectNode struct {
	models.Project
	Presentations []PresentationNode `json:"presentations"`
}

// treeConcurrency bounds the list calls in flight while loading a tree
const treeConcurrency = 4

// LoadTree walks every project down to its slides. Presentations are
// fetched concurrently; order follows the list order of each level.
func LoadTree(ctx context.Context, svc Services, caller *models.Session) ([]ProjectNode, error) {
	projects, err := svc.Projects.ListProjects(ctx, caller)
	if err != nil {
		return nil, err
	}

	tree := make([]ProjectNode, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(treeConcurrency)

	for i := range projects {
		tree[i].Project = projects[i]
		g.Go(func() error {
			presentations, err := svc.Presentations.ListPresentations(gctx, caller, projects[i].ID)
			if err != nil {
				return err
			}
			nodes := make([]PresentationNode, len(presentations))
			for j := range presentations {
				slides, err := svc.Slides.ListSlides(gctx, caller, presentations[j].ID)
				if err != nil {
					return err
				}
				nodes[j] = PresentationNode{Presentation: presentations[j], Slides: viewSlides(slides)}
			}
			tree[i].Presentations = nodes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tree, nil
}
