package content

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/repositories"

	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func session(role models.Role) *models.Session {
	return &models.Session{UserID: "user-" + string(role), Profile: &models.Profile{ID: "user-" + string(role), Role: role}}
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[string]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: map[string]*models.Project{}}
}

func (r *fakeProjectRepo) Create(ctx context.Context, p *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) List(ctx context.Context) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Project{}
	for _, p := range r.projects {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, p *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[p.ID]; !ok {
		return fmt.Errorf("project %s: %w", p.ID, domain.ErrNotFound)
	}
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	delete(r.projects, id)
	return nil
}

type fakeSlideRepo struct {
	mu     sync.Mutex
	slides map[string]*models.Slide
}

func newFakeSlideRepo() *fakeSlideRepo {
	return &fakeSlideRepo{slides: map[string]*models.Slide{}}
}

func (r *fakeSlideRepo) Create(ctx context.Context, s *models.Slide) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = uuid.NewString()
	cp := *s
	r.slides[s.ID] = &cp
	return nil
}

func (r *fakeSlideRepo) GetByID(ctx context.Context, id string) (*models.Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slides[id]
	if !ok {
		return nil, fmt.Errorf("slide %s: %w", id, domain.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlideRepo) ListByPresentation(ctx context.Context, presentationID string) ([]models.Slide, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Slide{}
	for _, s := range r.slides {
		if s.PresentationID == presentationID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SlideOrder < out[j].SlideOrder })
	return out, nil
}

func (r *fakeSlideRepo) CountByPresentation(ctx context.Context, presentationID string) (int, error) {
	list, _ := r.ListByPresentation(ctx, presentationID)
	return len(list), nil
}

func (r *fakeSlideRepo) Update(ctx context.Context, s *models.Slide) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.slides[s.ID] = &cp
	return nil
}

func (r *fakeSlideRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.slides, id)
	return nil
}

// passthroughTx runs fn directly and counts invocations
type passthroughTx struct {
	calls int
}

func (t *passthroughTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	t.calls++
	return fn(ctx)
}
