package handler

import (
	"log/slog"
	"net/http"

	"clipdeck/internal/domain/services"
	"clipdeck/internal/httputil"
)

// PresentationHandler handles presentation HTTP requests
type PresentationHandler struct {
	presentationService services.PresentationService
	logger              *slog.Logger
}

// NewPresentationHandler creates a new presentation handler
func NewPresentationHandler(presentationService services.PresentationService, logger *slog.Logger) *PresentationHandler {
	return &PresentationHandler{
		presentationService: presentationService,
		logger:              logger,
	}
}

// ListPresentations retrieves a project's presentations
// GET /api/projects/{id}/presentations
func (h *PresentationHandler) ListPresentations(w http.ResponseWriter, r *http.Request) {
	projectID, ok := PathParam(w, r, "id", "Project ID")
	if !ok {
		return
	}

	presentations, err := h.presentationService.ListPresentations(r.Context(), httputil.GetSession(r), projectID)
	if err != nil {
		logAndHandleError(w, h.logger, "failed to list presentations", err, "project_id", projectID)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, presentations)
}

// CreatePresentation creates a presentation under a project
// POST /api/presentations
func (h *PresentationHandler) CreatePresentation(w http.ResponseWriter, r *http.Request) {
	var req services.CreatePresentationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	presentation, err := h.presentationService.CreatePresentation(r.Context(), httputil.GetSession(r), &req)
	if err != nil {
		logAndHandleError(w, h.logger, "failed to create presentation", err, "project_id", req.ProjectID)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, presentation)
}

// GetPresentation retrieves a presentation by ID
// GET /api/presentations/{id}
func (h *PresentationHandler) GetPresentation(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Presentation ID")
	if !ok {
		return
	}

	presentation, err := h.presentationService.GetPresentation(r.Context(), httputil.GetSession(r), id)
	if err != nil {
		logAndHandleError(w, h.logger, "failed to get presentation", err, "presentation_id", id)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, presentation)
}

// UpdatePresentation renames a presentation
// PATCH /api/presentations/{id}
func (h *PresentationHandler) UpdatePresentation(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Presentation ID")
	if !ok {
		return
	}

	var req services.UpdatePresentationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	presentation, err := h.presentationService.UpdatePresentation(r.Context(), httputil.GetSession(r), id, &req)
	if err != nil {
		logAndHandleError(w, h.logger, "failed to update presentation", err, "presentation_id", id)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, presentation)
}

// DeletePresentation deletes a presentation and its slides
// DELETE /api/presentations/{id}
func (h *PresentationHandler) DeletePresentation(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Presentation ID")
	if !ok {
		return
	}

	if err := h.presentationService.DeletePresentation(r.Context(), httputil.GetSession(r), id); err != nil {
		logAndHandleError(w, h.logger, "failed to delete presentation", err, "presentation_id", id)
		return
	}

	httputil.RespondNoContent(w)
}
