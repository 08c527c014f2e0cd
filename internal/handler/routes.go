package handler

import (
	"net/http"

	"clipdeck/internal/domain/models"
	"clipdeck/internal/middleware"
)

// Handlers groups every HTTP handler the server mounts
type Handlers struct {
	Health        *HealthHandler
	Auth          *AuthHandler
	Projects      *ProjectHandler
	Presentations *PresentationHandler
	Slides        *SlideHandler
	Users         *UserHandler
	Scenes        *SceneHandler
	Exports       *ExportHandler
	Media         *MediaHandler
	Catalog       *CatalogHandler
}

// Register mounts the routes on mux (Go 1.22+ patterns). Each route is
// gated by the role it needs; services re-check the same roles.
func (h *Handlers) Register(mux *http.ServeMux) {
	viewer := gate(models.RoleViewer)
	editor := gate(models.RoleEditor)
	admin := gate(models.RoleAdmin)

	// Public
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("POST /api/auth/signin", h.Auth.SignIn)
	mux.HandleFunc("POST /api/auth/signup", h.Auth.SignUp)

	// Session
	mux.Handle("POST /api/auth/signout", viewer(h.Auth.SignOut))
	mux.Handle("GET /api/session", viewer(h.Auth.GetSession))

	// Projects: the admin panel owns writes
	mux.Handle("GET /api/projects", viewer(h.Projects.ListProjects))
	mux.Handle("POST /api/projects", admin(h.Projects.CreateProject))
	mux.Handle("GET /api/projects/{id}", viewer(h.Projects.GetProject))
	mux.Handle("PATCH /api/projects/{id}", admin(h.Projects.UpdateProject))
	mux.Handle("DELETE /api/projects/{id}", admin(h.Projects.DeleteProject))
	mux.Handle("GET /api/projects/{id}/presentations", viewer(h.Presentations.ListPresentations))

	// Presentations
	mux.Handle("POST /api/presentations", editor(h.Presentations.CreatePresentation))
	mux.Handle("GET /api/presentations/{id}", viewer(h.Presentations.GetPresentation))
	mux.Handle("PATCH /api/presentations/{id}", editor(h.Presentations.UpdatePresentation))
	mux.Handle("DELETE /api/presentations/{id}", editor(h.Presentations.DeletePresentation))
	mux.Handle("GET /api/presentations/{id}/slides", viewer(h.Slides.ListSlides))

	// Slides
	mux.Handle("POST /api/slides", editor(h.Slides.CreateSlide))
	mux.Handle("GET /api/slides/{id}", viewer(h.Slides.GetSlide))
	mux.Handle("PATCH /api/slides/{id}", editor(h.Slides.UpdateSlide))
	mux.Handle("DELETE /api/slides/{id}", editor(h.Slides.DeleteSlide))

	// Users
	mux.Handle("GET /api/users", admin(h.Users.ListUsers))
	mux.Handle("PATCH /api/users/{id}/role", admin(h.Users.SetRole))

	// Editor catalogs
	mux.Handle("GET /api/catalog/presets", editor(h.Catalog.ListPresets))
	mux.Handle("GET /api/catalog/fonts", editor(h.Catalog.ListFonts))
	mux.Handle("GET /api/catalog/videos", editor(h.Catalog.ListVideos))

	// Scenes
	mux.Handle("GET /api/scenes", editor(h.Scenes.ListScenes))
	mux.Handle("POST /api/scenes", editor(h.Scenes.CreateScene))
	mux.Handle("PUT /api/scenes", editor(h.Scenes.ImportScene))
	mux.Handle("GET /api/scenes/{id}", editor(h.Scenes.GetScene))
	mux.Handle("DELETE /api/scenes/{id}", editor(h.Scenes.DeleteScene))
	mux.Handle("POST /api/scenes/{id}/commands", editor(h.Scenes.DispatchCommand))
	mux.Handle("POST /api/scenes/{id}/items", editor(h.Scenes.AddItem))
	mux.Handle("PUT /api/scenes/{id}/selection", editor(h.Scenes.Select))
	mux.Handle("POST /api/scenes/{id}/resize", editor(h.Scenes.Resize))
	mux.Handle("GET /api/scenes/{id}/text", editor(h.Scenes.GetTextProps))
	mux.Handle("POST /api/scenes/{id}/text", editor(h.Scenes.ChangeTextProp))
	mux.Handle("POST /api/scenes/{id}/text/font", editor(h.Scenes.SelectFont))
	mux.Handle("POST /api/scenes/{id}/text/bold", editor(h.Scenes.ToggleBold))
	mux.Handle("POST /api/scenes/{id}/text/italic", editor(h.Scenes.ToggleItalic))
	mux.Handle("POST /api/scenes/{id}/export", editor(h.Scenes.Export))

	// Exports
	mux.Handle("GET /api/exports/{id}", editor(h.Exports.GetExport))
	mux.Handle("GET /api/exports/{id}/events", editor(h.Exports.StreamExport))
	mux.Handle("POST /api/exports/{id}/cancel", editor(h.Exports.CancelExport))
	mux.Handle("GET /api/exports/{id}/download", editor(h.Exports.DownloadExport))

	// Stock media
	mux.Handle("GET /api/media", editor(h.Media.Search))
	mux.Handle("GET /api/media/audio", editor(h.Media.SearchAudio))
	mux.Handle("GET /api/media/images", editor(h.Media.SearchImages))
}

func gate(role models.Role) func(http.HandlerFunc) http.Handler {
	guard := middleware.RequireRole(role)
	return func(fn http.HandlerFunc) http.Handler {
		return guard(fn)
	}
}
