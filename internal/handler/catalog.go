package handler

import (
	"net/http"

	"clipdeck/internal/catalog"
	"clipdeck/internal/httputil"
)

// CatalogHandler serves the static editor catalogs
type CatalogHandler struct {
	registry *catalog.Registry
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(registry *catalog.Registry) *CatalogHandler {
	return &CatalogHandler{registry: registry}
}

// ListPresets returns the resize menu
// GET /api/catalog/presets
func (h *CatalogHandler) ListPresets(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.Presets())
}

// ListFonts returns every font variant and the default
// GET /api/catalog/fonts
func (h *CatalogHandler) ListFonts(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"default": h.registry.DefaultFont(),
		"fonts":   h.registry.Fonts(),
	})
}

// ListVideos returns the stock video clips
// GET /api/catalog/videos
func (h *CatalogHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.StockVideos())
}
