package handler

import (
	"log/slog"
	"net/http"

	"clipdeck/internal/httputil"
	"clipdeck/internal/media"
)

// MediaHandler serves stock media searches
type MediaHandler struct {
	media  *media.Service
	logger *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(svc *media.Service, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		media:  svc,
		logger: logger,
	}
}

func mediaQuery(r *http.Request) media.Query {
	return media.Query{
		Text: r.URL.Query().Get("q"),
		Page: httputil.QueryInt(r, "page", 1),
	}
}

// SearchAudio searches stock tracks
// GET /api/media/audio?q=&page=
func (h *MediaHandler) SearchAudio(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.media.Tracks(r.Context(), mediaQuery(r))
	if err != nil {
		logAndHandleError(w, h.logger, "audio search failed", err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tracks)
}

// SearchImages searches stock photos
// GET /api/media/images?q=&page=
func (h *MediaHandler) SearchImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.media.Images(r.Context(), mediaQuery(r))
	if err != nil {
		logAndHandleError(w, h.logger, "image search failed", err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, images)
}

// Search queries both providers at once
// GET /api/media?q=&page=
func (h *MediaHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.media.Search(r.Context(), mediaQuery(r))
	if err != nil {
		logAndHandleError(w, h.logger, "media search failed", err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, results)
}
