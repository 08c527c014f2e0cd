package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"clipdeck/internal/export"
	"clipdeck/internal/handler/sse"
	"clipdeck/internal/httputil"

	"github.com/google/uuid"
	mstream "github.com/haowjy/meridian-stream-go"
)

// ExportHandler reports, streams, cancels and serves export jobs
type ExportHandler struct {
	exports   *export.Service
	sseConfig *sse.Config
	logger    *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exports *export.Service, sseConfig *sse.Config, logger *slog.Logger) *ExportHandler {
	if sseConfig == nil {
		sseConfig = sse.DefaultConfig()
	}
	return &ExportHandler{
		exports:   exports,
		sseConfig: sseConfig,
		logger:    logger,
	}
}

// GetExport returns the job's current state
// GET /api/exports/{id}
func (h *ExportHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Export ID")
	if !ok {
		return
	}

	job, err := h.exports.Get(id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, job)
}

// StreamExport streams job updates as Server-Sent Events until the job
// finishes or the client goes away. A first connection replays the job's
// events so far; a reconnect with Last-Event-ID resumes after that event.
// GET /api/exports/{id}/events
func (h *ExportHandler) StreamExport(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Export ID")
	if !ok {
		return
	}

	stream, err := h.exports.Stream(id)
	if err != nil {
		handleError(w, err)
		return
	}

	writer, err := sse.NewWriter(w, id, h.sseConfig)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Join before reading catch-up so no event falls between the two
	clientID := uuid.NewString()
	events := stream.AddClient(clientID)
	defer stream.RemoveClient(clientID)

	lastEventID := r.Header.Get("Last-Event-ID")
	h.logger.Debug("export stream opened",
		"export_id", id,
		"client_id", clientID,
		"last_event_id", lastEventID,
	)

	for _, event := range stream.GetCatchupEvents(lastEventID) {
		if err := writer.WriteEvent(event.ID, event.Type, event.Data); err != nil {
			h.logger.Warn("export stream write failed", "export_id", id, "error", err)
			return
		}
		if event.Type == export.EventDone {
			return
		}
	}

	// A finished stream never closes clients added after it ended
	if streamFinished(stream.Status()) {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	stopped := sse.KeepAlive(ctx, writer, h.sseConfig.KeepAliveInterval, h.logger)
	defer func() {
		cancel()
		<-stopped
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("export stream closed by client", "export_id", id)
			return
		case event, open := <-events:
			if !open {
				return
			}
			if err := writer.WriteEvent(event.ID, event.Type, event.Data); err != nil {
				h.logger.Warn("export stream write failed", "export_id", id, "error", err)
				return
			}
			if event.Type == export.EventDone {
				return
			}
		}
	}
}

func streamFinished(status mstream.Status) bool {
	switch status {
	case mstream.StatusComplete, mstream.StatusError, mstream.StatusCancelled:
		return true
	}
	return false
}

// CancelExport aborts a running export
// POST /api/exports/{id}/cancel
func (h *ExportHandler) CancelExport(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Export ID")
	if !ok {
		return
	}

	if err := h.exports.Cancel(id); err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("export cancelled", "export_id", id)
	httputil.RespondNoContent(w)
}

// DownloadExport serves the finished video as video.mp4
// GET /api/exports/{id}/download
func (h *ExportHandler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Export ID")
	if !ok {
		return
	}

	f, job, err := h.exports.Open(id)
	if err != nil {
		logAndHandleError(w, h.logger, "failed to open export", err, "export_id", id)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.DownloadName))
	http.ServeContent(w, r, export.DownloadName, job.UpdatedAt, f)
}
