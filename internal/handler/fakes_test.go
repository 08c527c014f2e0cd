package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/services"
	"clipdeck/internal/editor"
	"clipdeck/internal/export"
	"clipdeck/internal/media"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sessionFor(role models.Role) *models.Session {
	id := "user-" + strings.ToLower(string(role))
	return &models.Session{
		UserID:  id,
		Email:   id + "@test.com",
		Profile: &models.Profile{ID: id, Email: id + "@test.com", Role: role},
	}
}

// fakeProjects keeps projects in insertion order and enforces ADMIN writes
// the way the real service does, so both the route gate and the service
// check are exercised.
type fakeProjects struct {
	mu       sync.Mutex
	projects []models.Project
}

func (f *fakeProjects) CreateProject(ctx context.Context, caller *models.Session, req *services.CreateProjectRequest) (*models.Project, error) {
	if !caller.IsAdmin() {
		return nil, &domain.RoleError{Required: "ADMIN", Actual: string(caller.Profile.Role), Landing: caller.Profile.Role.Landing()}
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title: cannot be blank", domain.ErrValidation)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.Project{ID: fmt.Sprintf("p-%d", len(f.projects)+1), Title: req.Title, Description: req.Description, CreatedBy: caller.UserID}
	f.projects = append(f.projects, p)
	return &p, nil
}

func (f *fakeProjects) GetProject(ctx context.Context, caller *models.Session, id string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
}

func (f *fakeProjects) ListProjects(ctx context.Context, caller *models.Session) ([]models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Project{}, f.projects...), nil
}

func (f *fakeProjects) UpdateProject(ctx context.Context, caller *models.Session, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i].Title = req.Title
			p := f.projects[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
}

func (f *fakeProjects) DeleteProject(ctx context.Context, caller *models.Session, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
}

// notFoundPresentations answers every lookup with not found
type notFoundPresentations struct{}

func (notFoundPresentations) CreatePresentation(ctx context.Context, caller *models.Session, req *services.CreatePresentationRequest) (*models.Presentation, error) {
	return nil, fmt.Errorf("project %s: %w", req.ProjectID, domain.ErrNotFound)
}

func (notFoundPresentations) GetPresentation(ctx context.Context, caller *models.Session, id string) (*models.Presentation, error) {
	return nil, fmt.Errorf("presentation %s: %w", id, domain.ErrNotFound)
}

func (notFoundPresentations) ListPresentations(ctx context.Context, caller *models.Session, projectID string) ([]models.Presentation, error) {
	return []models.Presentation{}, nil
}

func (notFoundPresentations) UpdatePresentation(ctx context.Context, caller *models.Session, id string, req *services.UpdatePresentationRequest) (*models.Presentation, error) {
	return nil, fmt.Errorf("presentation %s: %w", id, domain.ErrNotFound)
}

func (notFoundPresentations) DeletePresentation(ctx context.Context, caller *models.Session, id string) error {
	return fmt.Errorf("presentation %s: %w", id, domain.ErrNotFound)
}

// recordingSlides echoes the create request back as a slide
type recordingSlides struct {
	last *services.CreateSlideRequest
}

func (r *recordingSlides) CreateSlide(ctx context.Context, caller *models.Session, req *services.CreateSlideRequest) (*models.Slide, error) {
	r.last = req
	order := 0
	if req.SlideOrder != nil {
		order = *req.SlideOrder
	}
	return &models.Slide{ID: "s-1", PresentationID: req.PresentationID, SlideOrder: order}, nil
}

func (r *recordingSlides) GetSlide(ctx context.Context, caller *models.Session, id string) (*models.Slide, error) {
	return nil, fmt.Errorf("slide %s: %w", id, domain.ErrNotFound)
}

func (r *recordingSlides) ListSlides(ctx context.Context, caller *models.Session, presentationID string) ([]models.Slide, error) {
	return []models.Slide{}, nil
}

func (r *recordingSlides) UpdateSlide(ctx context.Context, caller *models.Session, id string, req *services.UpdateSlideRequest) (*models.Slide, error) {
	return nil, fmt.Errorf("slide %s: %w", id, domain.ErrNotFound)
}

func (r *recordingSlides) DeleteSlide(ctx context.Context, caller *models.Session, id string) error {
	return nil
}

type fakeUsers struct {
	setRole models.Role
}

func (f *fakeUsers) ListUsers(ctx context.Context, caller *models.Session) ([]models.Profile, error) {
	return []models.Profile{*sessionFor(models.RoleAdmin).Profile}, nil
}

func (f *fakeUsers) SetRole(ctx context.Context, caller *models.Session, userID string, role models.Role) (*models.Profile, error) {
	f.setRole = role
	return &models.Profile{ID: userID, Role: role}, nil
}

// fakeSessions signs in "editor@test.com" with password "secret1" only
type fakeSessions struct {
	signedOut string
}

func (f *fakeSessions) SignIn(ctx context.Context, creds *services.Credentials) (*models.AuthTokens, error) {
	if creds.Email != "editor@test.com" || creds.Password != "secret1" {
		return nil, &domain.AuthError{Message: "Invalid email or password.", Raw: "Invalid login credentials", Status: 401}
	}
	return &models.AuthTokens{AccessToken: "tok", UserID: "user-editor", Email: creds.Email}, nil
}

func (f *fakeSessions) SignUp(ctx context.Context, creds *services.Credentials) error {
	if creds.Email == "" {
		return fmt.Errorf("%w: Please fill in all fields", domain.ErrValidation)
	}
	return nil
}

func (f *fakeSessions) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return domain.ErrUnauthorized
	}
	f.signedOut = accessToken
	return nil
}

func (f *fakeSessions) LoadSession(ctx context.Context, claims *models.SupabaseClaims) (*models.Session, error) {
	return sessionFor(models.RoleEditor), nil
}

type fakeRenderer struct{}

func (fakeRenderer) Submit(ctx context.Context, scene *editor.SceneData) (*export.Render, error) {
	return &export.Render{ID: "r-1", URL: "https://render/r-1.mp4"}, nil
}

func (fakeRenderer) WaitForCompletion(ctx context.Context, id string, onProgress func(float64)) (*export.Render, error) {
	onProgress(50)
	onProgress(100)
	return &export.Render{ID: id, Progress: 100}, nil
}

func (fakeRenderer) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	return io.Copy(w, strings.NewReader("MP4DATA"))
}

type fakeTracks struct{ last media.Query }

func (f *fakeTracks) SearchTracks(ctx context.Context, q media.Query) ([]media.Track, error) {
	f.last = q
	return []media.Track{{ID: "t1", Name: q.Text}}, nil
}

type failingImages struct{}

func (failingImages) SearchImages(ctx context.Context, q media.Query) ([]media.Image, error) {
	return nil, fmt.Errorf("pixabay search: status 500: %w", domain.ErrUpstream)
}
