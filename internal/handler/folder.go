package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"registratur/internal/config"
	"registratur/internal/domain/models"
	"registratur/internal/httputil"
	"registratur/internal/service/cabinet"
)

// FolderHandler handles folder HTTP requests.
type FolderHandler struct {
	folders *cabinet.FolderService
	logger  *slog.Logger
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(folders *cabinet.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{folders: folders, logger: logger}
}

// CreateFolder creates a root folder, or a subfolder when parent_folder_id is
// set.
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)
	if identity == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "no identity on request")
		return
	}

	var req models.CreateFolderRequest
	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBody)
		if err := r.ParseMultipartForm(config.MaxRequestBody); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req = folderRequestFromForm(r)
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBody)
		if err := r.ParseForm(); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req = folderRequestFromForm(r)
	default:
		if err := httputil.ParseJSON(w, r, config.MaxRequestBody, &req); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	folder, err := h.folders.CreateFolder(r.Context(), identity, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

func folderRequestFromForm(r *http.Request) models.CreateFolderRequest {
	return models.CreateFolderRequest{
		Name:           r.FormValue("folder_name"),
		Description:    r.FormValue("folder_description"),
		ParentFolderID: r.FormValue("parent_folder_id"),
	}
}

// DeleteFolder deletes a folder by id, root or nested.
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)
	if identity == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "no identity on request")
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder id is required")
		return
	}

	if err := h.folders.DeleteFolder(r.Context(), identity, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
