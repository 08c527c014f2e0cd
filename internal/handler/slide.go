package handler

import (
	"log/slog"
	"net/http"

	"clipdeck/internal/domain/services"
	"clipdeck/internal/httputil"
)

// SlideHandler handles slide HTTP requests
type SlideHandler struct {
	slideService services.SlideService
	logger       *slog.Logger
}

// NewSlideHandler creates a new slide handler
func NewSlideHandler(slideService services.SlideService, logger *slog.Logger) *SlideHandler {
	return &SlideHandler{
		slideService: slideService,
		logger:       logger,
	}
}

// ListSlides retrieves a presentation's slides in display order
// GET /api/presentations/{id}/slides
func (h *SlideHandler) ListSlides(w http.ResponseWriter, r *http.Request) {
	presentationID, ok := PathParam(w, r, "id", "Presentation ID")
	if !ok {
		return
	}

	slides, err := h.slideService.ListSlides(r.Context(), httputil.GetSession(r), presentationID)
	if err != nil {
		logAndHandleError(w, h.logger, "failed to list slides", err, "presentation_id", presentationID)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, slides)
}

// CreateSlide appends a slide unless slide_order is given
// POST /api/slides
func (h *SlideHandler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	var req services.CreateSlideRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	slide, err := h.slideService.CreateSlide(r.Context(), httputil.GetSession(r), &req)
	if err != nil {
		logAndHandleError(w, h.logger, "failed to create slide", err, "presentation_id", req.PresentationID)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, slide)
}

// GetSlide retrieves a slide by ID
// GET /api/slides/{id}
func (h *SlideHandler) GetSlide(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Slide ID")
	if !ok {
		return
	}

	slide, err := h.slideService.GetSlide(r.Context(), httputil.GetSession(r), id)
	if err != nil {
		logAndHandleError(w, h.logger, "failed to get slide", err, "slide_id", id)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, slide)
}

// UpdateSlide replaces a slide's content
// PATCH /api/slides/{id}
func (h *SlideHandler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Slide ID")
	if !ok {
		return
	}

	var req services.UpdateSlideRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	slide, err := h.slideService.UpdateSlide(r.Context(), httputil.GetSession(r), id, &req)
	if err != nil {
		logAndHandleError(w, h.logger, "failed to update slide", err, "slide_id", id)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, slide)
}

// DeleteSlide deletes a slide
// DELETE /api/slides/{id}
func (h *SlideHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Slide ID")
	if !ok {
		return
	}

	if err := h.slideService.DeleteSlide(r.Context(), httputil.GetSession(r), id); err != nil {
		logAndHandleError(w, h.logger, "failed to delete slide", err, "slide_id", id)
		return
	}

	httputil.RespondNoContent(w)
}
