package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var admin = &models.Session{UserID: "admin", Profile: &models.Profile{ID: "admin", Role: models.RoleAdmin}}

// store is an in-memory content backend implementing the three services.
// Deletes cascade like the database's foreign keys.
type store struct {
	mu            sync.Mutex
	seq           int
	projects      []models.Project
	presentations []models.Presentation
	slides        []models.Slide
	listCalls     int
}

func (s *store) services() Services {
	return Services{Projects: (*projectSvc)(s), Presentations: (*presentationSvc)(s), Slides: (*slideSvc)(s)}
}

func (s *store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

type projectSvc store

func (p *projectSvc) CreateProject(ctx context.Context, caller *models.Session, req *services.CreateProjectRequest) (*models.Project, error) {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	pr := models.Project{ID: s.nextID("project"), Title: req.Title}
	s.projects = append([]models.Project{pr}, s.projects...)
	return &pr, nil
}

func (p *projectSvc) GetProject(ctx context.Context, caller *models.Session, id string) (*models.Project, error) {
	return nil, domain.ErrNotFound
}

func (p *projectSvc) ListProjects(ctx context.Context, caller *models.Session) ([]models.Project, error) {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	return append([]models.Project{}, s.projects...), nil
}

func (p *projectSvc) UpdateProject(ctx context.Context, caller *models.Session, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.projects {
		if s.projects[i].ID == id {
			s.projects[i].Title = req.Title
			pr := s.projects[i]
			return &pr, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (p *projectSvc) DeleteProject(ctx context.Context, caller *models.Session, id string) error {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	projects := s.projects[:0]
	for _, pr := range s.projects {
		if pr.ID == id {
			found = true
			continue
		}
		projects = append(projects, pr)
	}
	if !found {
		return domain.ErrNotFound
	}
	s.projects = projects

	kept := s.presentations[:0]
	for _, pr := range s.presentations {
		if pr.ProjectID != id {
			kept = append(kept, pr)
		}
	}
	s.presentations = kept
	return nil
}

type presentationSvc store

func (p *presentationSvc) CreatePresentation(ctx context.Context, caller *models.Session, req *services.CreatePresentationRequest) (*models.Presentation, error) {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	pr := models.Presentation{ID: s.nextID("presentation"), ProjectID: req.ProjectID, Title: req.Title}
	s.presentations = append([]models.Presentation{pr}, s.presentations...)
	return &pr, nil
}

func (p *presentationSvc) GetPresentation(ctx context.Context, caller *models.Session, id string) (*models.Presentation, error) {
	return nil, domain.ErrNotFound
}

func (p *presentationSvc) ListPresentations(ctx context.Context, caller *models.Session, projectID string) ([]models.Presentation, error) {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Presentation{}
	for _, pr := range s.presentations {
		if pr.ProjectID == projectID {
			out = append(out, pr)
		}
	}
	return out, nil
}

func (p *presentationSvc) UpdatePresentation(ctx context.Context, caller *models.Session, id string, req *services.UpdatePresentationRequest) (*models.Presentation, error) {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.presentations {
		if s.presentations[i].ID == id {
			s.presentations[i].Title = req.Title
			pr := s.presentations[i]
			return &pr, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (p *presentationSvc) DeletePresentation(ctx context.Context, caller *models.Session, id string) error {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.presentations[:0]
	for _, pr := range s.presentations {
		if pr.ID != id {
			kept = append(kept, pr)
		}
	}
	s.presentations = kept
	return nil
}

type slideSvc store

func (p *slideSvc) CreateSlide(ctx context.Context, caller *models.Session, req *services.CreateSlideRequest) (*models.Slide, error) {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	content := json.RawMessage(req.Content)
	if !json.Valid(content) {
		content, _ = json.Marshal(map[string]string{"text": req.Content})
	}
	sl := models.Slide{ID: s.nextID("slide"), PresentationID: req.PresentationID, Content: content}
	s.slides = append(s.slides, sl)
	return &sl, nil
}

func (p *slideSvc) GetSlide(ctx context.Context, caller *models.Session, id string) (*models.Slide, error) {
	return nil, domain.ErrNotFound
}

func (p *slideSvc) ListSlides(ctx context.Context, caller *models.Session, presentationID string) ([]models.Slide, error) {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Slide{}
	for _, sl := range s.slides {
		if sl.PresentationID == presentationID {
			out = append(out, sl)
		}
	}
	return out, nil
}

func (p *slideSvc) UpdateSlide(ctx context.Context, caller *models.Session, id string, req *services.UpdateSlideRequest) (*models.Slide, error) {
	return nil, domain.ErrNotFound
}

func (p *slideSvc) DeleteSlide(ctx context.Context, caller *models.Session, id string) error {
	s := (*store)(p)
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.slides[:0]
	for _, sl := range s.slides {
		if sl.ID != id {
			kept = append(kept, sl)
		}
	}
	s.slides = kept
	return nil
}
