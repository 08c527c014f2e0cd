package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"clipdeck/internal/catalog"
	"clipdeck/internal/domain"
	"clipdeck/internal/editor"
	"clipdeck/internal/export"
	"clipdeck/internal/httputil"
)

// DefaultPreset is the canvas a new scene starts with
const DefaultPreset = "16:9"

// SceneHandler exposes the editor adapter over HTTP. Every mutation goes
// through the scene's Dispatch, the same path the engine would take.
type SceneHandler struct {
	store   *editor.Store
	catalog *catalog.Registry
	exports *export.Service
	logger  *slog.Logger
}

// NewSceneHandler creates a new scene handler
func NewSceneHandler(store *editor.Store, registry *catalog.Registry, exports *export.Service, logger *slog.Logger) *SceneHandler {
	return &SceneHandler{
		store:   store,
		catalog: registry,
		exports: exports,
		logger:  logger,
	}
}

// CreateScene opens an empty scene sized to a preset
// POST /api/scenes
func (h *SceneHandler) CreateScene(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID string `json:"project_id"`
		Preset    string `json:"preset"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Preset == "" {
		req.Preset = DefaultPreset
	}

	preset, ok := h.catalog.Preset(req.Preset)
	if !ok {
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("unknown preset %q", req.Preset))
		return
	}

	scene := h.store.Create(req.ProjectID, editor.Size{Width: preset.Width, Height: preset.Height})
	h.logger.Info("scene created",
		"scene_id", scene.ID(),
		"project_id", req.ProjectID,
		"preset", preset.Name,
	)

	httputil.RespondJSON(w, http.StatusCreated, scene.Snapshot())
}

// ImportScene loads a serialised scene, replacing an open scene with the same ID
// PUT /api/scenes
func (h *SceneHandler) ImportScene(w http.ResponseWriter, r *http.Request) {
	var data editor.SceneData
	if err := httputil.ParseJSON(w, r, &data); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	scene, err := editor.LoadScene(data)
	if err != nil {
		handleError(w, err)
		return
	}
	h.store.Put(scene)

	httputil.RespondJSON(w, http.StatusOK, scene.Snapshot())
}

// ListScenes returns the IDs of open scenes
// GET /api/scenes
func (h *SceneHandler) ListScenes(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"scene_ids": h.store.IDs(),
	})
}

// GetScene returns the serialised scene
// GET /api/scenes/{id}
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	scene, ok := h.scene(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, scene.Snapshot())
}

// DeleteScene closes a scene
// DELETE /api/scenes/{id}
func (h *SceneHandler) DeleteScene(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Scene ID")
	if !ok {
		return
	}
	if err := h.store.Delete(id); err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondNoContent(w)
}

// DispatchCommand sends a raw engine command
// POST /api/scenes/{id}/commands
func (h *SceneHandler) DispatchCommand(w http.ResponseWriter, r *http.Request) {
	scene, ok := h.scene(w, r)
	if !ok {
		return
	}

	var cmd editor.Command
	if err := httputil.ParseJSON(w, r, &cmd); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := scene.Dispatch(cmd); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, scene.Snapshot())
}

// AddItemRequest is a menu action adding one item. Font is a PostScript
// name; the catalog default is used when it is empty.
type AddItemRequest struct {
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	Font       string `json:"font,omitempty"`
	Src        string `json:"src,omitempty"`
	ResourceID string `json:"resource_id,omitempty"`
}

// AddItem adds a text, image, audio or video item through the adapter
// POST /api/scenes/{id}/items
func (h *SceneHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	scene, ok := h.scene(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	adapter := editor.NewAdapter(scene)
	var (
		itemID string
		err    error
	)
	switch req.Type {
	case editor.ItemText:
		font := h.catalog.DefaultFont()
		if req.Font != "" {
			var found bool
			if font, found = h.catalog.FontByPostScriptName(req.Font); !found {
				handleError(w, fmt.Errorf("font %s: %w", req.Font, domain.ErrNotFound))
				return
			}
		}
		itemID, err = adapter.AddText(font, req.Text)
	case editor.ItemImage:
		itemID, err = adapter.AddImage(req.Src)
	case editor.ItemAudio:
		itemID, err = adapter.AddAudio(req.Src)
	case editor.ItemVideo:
		itemID, err = adapter.AddVideo(req.Src, req.ResourceID)
	default:
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("unknown item type %q", req.Type))
		return
	}
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, map[string]string{"id": itemID})
}

// Select replaces the active selection
// PUT /api/scenes/{id}/selection
func (h *SceneHandler) Select(w http.ResponseWriter, r *http.Request) {
	scene, ok := h.scene(w, r)
	if !ok {
		return
	}

	var req struct {
		IDs []string `json:"ids"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := scene.Select(req.IDs...); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"ids": scene.ActiveIDs()})
}

// Resize sets the canvas to a preset
// POST /api/scenes/{id}/resize
func (h *SceneHandler) Resize(w http.ResponseWriter, r *http.Request) {
	scene, ok := h.scene(w, r)
	if !ok {
		return
	}

	var req struct {
		Preset string `json:"preset"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	preset, found := h.catalog.Preset(req.Preset)
	if !found {
		httputil.RespondError(w, http.StatusBadRequest, fmt.Sprintf("unknown preset %q", req.Preset))
		return
	}
	if err := editor.NewAdapter(scene).Resize(preset); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, scene.Snapshot())
}

// TextPropsResponse is the inspector view of the active text item
type TextPropsResponse struct {
	ItemID string           `json:"item_id"`
	Props  editor.Details   `json:"props"`
	State  editor.TextState `json:"state"`
}

// GetTextProps returns the active text item's properties and derived controls
// GET /api/scenes/{id}/text
func (h *SceneHandler) GetTextProps(w http.ResponseWriter, r *http.Request) {
	scene, ok := h.scene(w, r)
	if !ok {
		return
	}
	itemID, inspector, err := h.inspector(scene)
	if err != nil {
		handleError(w, err)
		return
	}
	h.respondText(w, itemID, inspector)
}

// ChangeTextProp applies one inspector field edit
// POST /api/scenes/{id}/text
func (h *SceneHandler) ChangeTextProp(w http.ResponseWriter, r *http.Request) {
	h.withInspector(w, r, func(ti *editor.TextInspector, r *http.Request) error {
		var req struct {
			Field string      `json:"field"`
			Value interface{} `json:"value"`
		}
		if err := httputil.ParseJSON(w, r, &req); err != nil {
			return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
		}
		if req.Field == "" {
			return fmt.Errorf("%w: field is required", domain.ErrValidation)
		}
		return ti.Change(req.Field, req.Value)
	})
}

// SelectFont switches the active text item to a family's Regular variant
// POST /api/scenes/{id}/text/font
func (h *SceneHandler) SelectFont(w http.ResponseWriter, r *http.Request) {
	h.withInspector(w, r, func(ti *editor.TextInspector, r *http.Request) error {
		var req struct {
			Family string `json:"family"`
		}
		if err := httputil.ParseJSON(w, r, &req); err != nil {
			return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
		}
		return ti.SelectFont(req.Family)
	})
}

// ToggleBold flips the bold variant of the active text item
// POST /api/scenes/{id}/text/bold
func (h *SceneHandler) ToggleBold(w http.ResponseWriter, r *http.Request) {
	h.withInspector(w, r, func(ti *editor.TextInspector, _ *http.Request) error {
		return ti.ToggleBold()
	})
}

// ToggleItalic flips the italic variant of the active text item
// POST /api/scenes/{id}/text/italic
func (h *SceneHandler) ToggleItalic(w http.ResponseWriter, r *http.Request) {
	h.withInspector(w, r, func(ti *editor.TextInspector, _ *http.Request) error {
		return ti.ToggleItalic()
	})
}

// Export starts rendering a snapshot of the scene
// POST /api/scenes/{id}/export
func (h *SceneHandler) Export(w http.ResponseWriter, r *http.Request) {
	scene, ok := h.scene(w, r)
	if !ok {
		return
	}

	job, err := h.exports.Start(scene.Snapshot())
	if err != nil {
		logAndHandleError(w, h.logger, "failed to start export", err, "scene_id", scene.ID())
		return
	}

	httputil.RespondAccepted(w, "/api/exports/"+job.ID, job)
}

func (h *SceneHandler) scene(w http.ResponseWriter, r *http.Request) (*editor.Scene, bool) {
	id, ok := PathParam(w, r, "id", "Scene ID")
	if !ok {
		return nil, false
	}
	scene, err := h.store.Get(id)
	if err != nil {
		handleError(w, err)
		return nil, false
	}
	return scene, true
}

func (h *SceneHandler) inspector(scene *editor.Scene) (string, *editor.TextInspector, error) {
	item, ok := scene.ActiveItem()
	if !ok {
		return "", nil, fmt.Errorf("%w: no active item", domain.ErrValidation)
	}
	if item.Type != editor.ItemText {
		return "", nil, fmt.Errorf("%w: active item %s is %s, not text", domain.ErrValidation, item.ID, item.Type)
	}
	return item.ID, editor.NewTextInspector(scene, h.catalog, item.Details), nil
}

func (h *SceneHandler) withInspector(w http.ResponseWriter, r *http.Request, fn func(*editor.TextInspector, *http.Request) error) {
	scene, ok := h.scene(w, r)
	if !ok {
		return
	}
	itemID, inspector, err := h.inspector(scene)
	if err != nil {
		handleError(w, err)
		return
	}
	if err := fn(inspector, r); err != nil {
		handleError(w, err)
		return
	}
	h.respondText(w, itemID, inspector)
}

func (h *SceneHandler) respondText(w http.ResponseWriter, itemID string, ti *editor.TextInspector) {
	httputil.RespondJSON(w, http.StatusOK, TextPropsResponse{
		ItemID: itemID,
		Props:  ti.Props(),
		State:  ti.State(),
	})
}
