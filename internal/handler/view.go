package handler

import (
	"log/slog"
	"net/http"

	"registratur/internal/httputil"
	"registratur/internal/service/cabinet"
)

// ViewHandler serves the cabinet display model.
type ViewHandler struct {
	views  *cabinet.ViewService
	logger *slog.Logger
}

// NewViewHandler creates a new view handler.
func NewViewHandler(views *cabinet.ViewService, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{views: views, logger: logger}
}

// GetView returns the cabinet view for the current selection. With no query
// parameters only the root folders are listed; ?folder= selects a folder and
// ?file= additionally selects a file within it.
// GET /api/cabinet
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	folderID := r.URL.Query().Get("folder")
	fileID := r.URL.Query().Get("file")

	view, err := h.views.GetView(r.Context(), folderID, fileID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// HealthCheck reports liveness.
// GET /health
func (h *ViewHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
