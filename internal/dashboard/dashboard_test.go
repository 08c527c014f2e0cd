package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/services"
)

func newPanel(t *testing.T) (*AdminPanel, *store) {
	t.Helper()
	s := &store{}
	p := NewAdminPanel(s.services(), admin, testLogger())
	require.NoError(t, p.Load(context.Background()))
	return p, s
}

func TestAdminPanel_RefetchesAfterMutation(t *testing.T) {
	ctx := context.Background()
	p, s := newPanel(t)

	project, err := p.CreateProject(ctx, &services.CreateProjectRequest{Title: "Launch"})
	require.NoError(t, err)

	state := p.State()
	require.Len(t, state.Projects, 1)
	assert.Equal(t, project.ID, state.Projects[0].ID)

	_, err = p.UpdateProject(ctx, project.ID, &services.UpdateProjectRequest{Title: "Relaunch"})
	require.NoError(t, err)
	assert.Equal(t, "Relaunch", p.State().Projects[0].Title)
	assert.Equal(t, 3, s.listCalls)
}

func TestAdminPanel_ChildCreatesNeedSelection(t *testing.T) {
	ctx := context.Background()
	p, _ := newPanel(t)

	_, err := p.CreatePresentation(ctx, "Deck")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = p.CreateSlide(ctx, "hello", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAdminPanel_DeletingSelectedProjectClearsBothSelections(t *testing.T) {
	ctx := context.Background()
	p, _ := newPanel(t)

	project, err := p.CreateProject(ctx, &services.CreateProjectRequest{Title: "Launch"})
	require.NoError(t, err)
	require.NoError(t, p.SelectProject(ctx, project.ID))

	presentation, err := p.CreatePresentation(ctx, "Deck")
	require.NoError(t, err)
	require.NoError(t, p.SelectPresentation(ctx, presentation.ID))

	_, err = p.CreateSlide(ctx, "hello", nil)
	require.NoError(t, err)

	state := p.State()
	require.Len(t, state.Presentations, 1)
	require.Len(t, state.Slides, 1)
	assert.JSONEq(t, `{"text":"hello"}`, string(state.Slides[0].Content))

	require.NoError(t, p.DeleteProject(ctx, project.ID))

	state = p.State()
	assert.Empty(t, state.SelectedProject)
	assert.Empty(t, state.SelectedPresentation)
	assert.Empty(t, state.Projects)
	assert.Empty(t, state.Presentations)
	assert.Empty(t, state.Slides)
}

func TestAdminPanel_DeletingOtherProjectKeepsSelection(t *testing.T) {
	ctx := context.Background()
	p, _ := newPanel(t)

	keep, err := p.CreateProject(ctx, &services.CreateProjectRequest{Title: "Keep"})
	require.NoError(t, err)
	drop, err := p.CreateProject(ctx, &services.CreateProjectRequest{Title: "Drop"})
	require.NoError(t, err)
	require.NoError(t, p.SelectProject(ctx, keep.ID))

	require.NoError(t, p.DeleteProject(ctx, drop.ID))

	state := p.State()
	assert.Equal(t, keep.ID, state.SelectedProject)
	require.Len(t, state.Projects, 1)
}

func TestAdminPanel_DeletingSelectedPresentationClearsOnlyIt(t *testing.T) {
	ctx := context.Background()
	p, _ := newPanel(t)

	project, err := p.CreateProject(ctx, &services.CreateProjectRequest{Title: "Launch"})
	require.NoError(t, err)
	require.NoError(t, p.SelectProject(ctx, project.ID))
	presentation, err := p.CreatePresentation(ctx, "Deck")
	require.NoError(t, err)
	require.NoError(t, p.SelectPresentation(ctx, presentation.ID))

	require.NoError(t, p.DeletePresentation(ctx, presentation.ID))

	state := p.State()
	assert.Equal(t, project.ID, state.SelectedProject)
	assert.Empty(t, state.SelectedPresentation)
	assert.Empty(t, state.Presentations)
	assert.Empty(t, state.Slides)
}

func TestAdminPanel_SelectingProjectDropsPresentation(t *testing.T) {
	ctx := context.Background()
	p, _ := newPanel(t)

	a, _ := p.CreateProject(ctx, &services.CreateProjectRequest{Title: "A"})
	b, _ := p.CreateProject(ctx, &services.CreateProjectRequest{Title: "B"})
	require.NoError(t, p.SelectProject(ctx, a.ID))
	pres, err := p.CreatePresentation(ctx, "Deck")
	require.NoError(t, err)
	require.NoError(t, p.SelectPresentation(ctx, pres.ID))

	require.NoError(t, p.SelectProject(ctx, b.ID))
	state := p.State()
	assert.Equal(t, b.ID, state.SelectedProject)
	assert.Empty(t, state.SelectedPresentation)
}

func TestViewer_DrillDown(t *testing.T) {
	ctx := context.Background()
	s := &store{}
	svc := s.services()
	project, _ := svc.Projects.CreateProject(ctx, admin, &services.CreateProjectRequest{Title: "Launch"})
	pres, _ := svc.Presentations.CreatePresentation(ctx, admin, &services.CreatePresentationRequest{ProjectID: project.ID, Title: "Deck"})
	_, _ = svc.Slides.CreateSlide(ctx, admin, &services.CreateSlideRequest{PresentationID: pres.ID, Content: `{"title":"Hi"}`})

	viewer := &models.Session{UserID: "v", Profile: &models.Profile{ID: "v", Role: models.RoleViewer}}
	v := NewViewer(svc, viewer, testLogger())
	require.NoError(t, v.Load(ctx))
	require.Len(t, v.Projects, 1)

	require.NoError(t, v.SelectProject(ctx, v.Projects[0]))
	require.Len(t, v.Presentations, 1)
	assert.Nil(t, v.SelectedPresentation)

	require.NoError(t, v.SelectPresentation(ctx, v.Presentations[0]))
	require.Len(t, v.Slides, 1)
	assert.Equal(t, "{\n  \"title\": \"Hi\"\n}", v.Slides[0].Pretty)

	require.NoError(t, v.SelectProject(ctx, v.Projects[0]))
	assert.Nil(t, v.SelectedPresentation)
	assert.Empty(t, v.Slides)
}

func TestLoadTree(t *testing.T) {
	ctx := context.Background()
	s := &store{}
	svc := s.services()
	for _, title := range []string{"One", "Two", "Three"} {
		project, _ := svc.Projects.CreateProject(ctx, admin, &services.CreateProjectRequest{Title: title})
		pres, _ := svc.Presentations.CreatePresentation(ctx, admin, &services.CreatePresentationRequest{ProjectID: project.ID, Title: title + " deck"})
		_, _ = svc.Slides.CreateSlide(ctx, admin, &services.CreateSlideRequest{PresentationID: pres.ID, Content: title})
	}

	tree, err := LoadTree(ctx, svc, admin)
	require.NoError(t, err)
	require.Len(t, tree, 3)
	assert.Equal(t, "Three", tree[0].Title)
	for _, node := range tree {
		require.Len(t, node.Presentations, 1)
		assert.Equal(t, node.Title+" deck", node.Presentations[0].Title)
		require.Len(t, node.Presentations[0].Slides, 1)
		assert.Contains(t, node.Presentations[0].Slides[0].Pretty, node.Title)
	}
}
