package content

import (
	"context"
	"testing"

	"clipdeck/internal/domain"
	"clipdeck/internal/domain/models"
	"clipdeck/internal/domain/services"
	"clipdeck/internal/service/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`{"title":"Intro"}`, `{"title":"Intro"}`},
		{`  [1,2]  `, `[1,2]`},
		{`hello world`, `{"text":"hello world"}`},
		{``, `{"text":""}`},
		{`{"broken":`, `{"text":"{\"broken\":"}`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.JSONEq(t, tt.want, string(NormalizeContent(tt.raw)))
		})
	}
}

func TestCreateSlideDefaultsOrderToCount(t *testing.T) {
	repo := newFakeSlideRepo()
	tx := &passthroughTx{}
	svc := NewSlideService(repo, tx, auth.NewRoleAuthorizer(), testLogger())
	editor := session(models.RoleEditor)
	ctx := context.Background()

	for want := 0; want < 3; want++ {
		s, err := svc.CreateSlide(ctx, editor, &services.CreateSlideRequest{PresentationID: "pres-1", Content: "slide"})
		require.NoError(t, err)
		assert.Equal(t, want, s.SlideOrder)
	}
	assert.Equal(t, 3, tx.calls)

	order := 10
	s, err := svc.CreateSlide(ctx, editor, &services.CreateSlideRequest{PresentationID: "pres-1", Content: "{}", SlideOrder: &order})
	require.NoError(t, err)
	assert.Equal(t, 10, s.SlideOrder)

	other, err := svc.CreateSlide(ctx, editor, &services.CreateSlideRequest{PresentationID: "pres-2", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, 0, other.SlideOrder)
}

func TestSlideServicePermissions(t *testing.T) {
	svc := NewSlideService(newFakeSlideRepo(), &passthroughTx{}, auth.NewRoleAuthorizer(), testLogger())
	ctx := context.Background()

	_, err := svc.CreateSlide(ctx, session(models.RoleViewer), &services.CreateSlideRequest{PresentationID: "p", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := svc.ListSlides(ctx, session(models.RoleViewer), "p")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateSlideKeepsOrderWhenOmitted(t *testing.T) {
	svc := NewSlideService(newFakeSlideRepo(), &passthroughTx{}, auth.NewRoleAuthorizer(), testLogger())
	editor := session(models.RoleEditor)
	ctx := context.Background()

	order := 4
	s, err := svc.CreateSlide(ctx, editor, &services.CreateSlideRequest{PresentationID: "p", Content: "a", SlideOrder: &order})
	require.NoError(t, err)

	updated, err := svc.UpdateSlide(ctx, editor, s.ID, &services.UpdateSlideRequest{Content: `{"text":"b"}`})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.SlideOrder)
	assert.JSONEq(t, `{"text":"b"}`, string(updated.Content))

	negative := -1
	_, err = svc.UpdateSlide(ctx, editor, s.ID, &services.UpdateSlideRequest{Content: "x", SlideOrder: &negative})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
