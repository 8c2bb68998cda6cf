package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"registratur/internal/blob"
	"registratur/internal/config"
	"registratur/internal/httputil"
	"registratur/internal/service/cabinet"
)

// FileHandler handles file HTTP requests within a folder.
type FileHandler struct {
	files  *cabinet.FileService
	logger *slog.Logger
}

// NewFileHandler creates a new file handler.
func NewFileHandler(files *cabinet.FileService, logger *slog.Logger) *FileHandler {
	return &FileHandler{files: files, logger: logger}
}

// AddFile adds a text record or an uploaded blob to a folder. Uploads arrive
// as multipart/form-data with the blob in the "file" part; text-only requests
// may also be plain JSON.
// POST /api/folders/{id}/files
func (h *FileHandler) AddFile(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)
	if identity == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "no identity on request")
		return
	}

	folderID := r.PathValue("id")
	if folderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder id is required")
		return
	}

	var req cabinet.AddFileRequest
	if isMultipart(r) {
		upload, cleanup, ok := parseUploadForm(w, r)
		if !ok {
			return
		}
		defer cleanup()
		req = cabinet.AddFileRequest{
			DocumentType: r.FormValue("document_type"),
			Title:        r.FormValue("file_title"),
			Description:  r.FormValue("file_description"),
			Content:      r.FormValue("file_content"),
			Upload:       upload,
		}
	} else if err := httputil.ParseJSON(w, r, config.MaxRequestBody, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.files.AddFile(r.Context(), identity, folderID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

// EditFile updates a file record, optionally replacing the stored blob when
// the replace_file flag is set and a "file" part is present.
// PATCH /api/folders/{id}/files/{fileID}
func (h *FileHandler) EditFile(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)
	if identity == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "no identity on request")
		return
	}

	folderID := r.PathValue("id")
	fileID := r.PathValue("fileID")
	if folderID == "" || fileID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder id and file id are required")
		return
	}

	var req cabinet.EditFileRequest
	if isMultipart(r) {
		upload, cleanup, ok := parseUploadForm(w, r)
		if !ok {
			return
		}
		defer cleanup()
		req = cabinet.EditFileRequest{
			Title:       r.FormValue("file_title"),
			Description: r.FormValue("file_description"),
			Content:     r.FormValue("file_content"),
			ReplaceBlob: formFlag(r.FormValue("replace_file")),
			Upload:      upload,
		}
	} else if err := httputil.ParseJSON(w, r, config.MaxRequestBody, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.files.EditFile(r.Context(), identity, folderID, fileID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, file)
}

// DeleteFile removes a file record and its stored blob, if any.
// DELETE /api/folders/{id}/files/{fileID}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	identity := httputil.GetIdentity(r)
	if identity == nil {
		httputil.RespondError(w, http.StatusUnauthorized, "no identity on request")
		return
	}

	folderID := r.PathValue("id")
	fileID := r.PathValue("fileID")
	if folderID == "" || fileID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder id and file id are required")
		return
	}

	if err := h.files.DeleteFile(r.Context(), identity, folderID, fileID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ServeContent streams the stored variant of a file: inline text as
// text/plain, blobs with the MIME type their extension maps to.
// GET /api/folders/{id}/files/{fileID}/content
func (h *FileHandler) ServeContent(w http.ResponseWriter, r *http.Request) {
	folderID := r.PathValue("id")
	fileID := r.PathValue("fileID")

	file, err := h.files.GetFile(r.Context(), folderID, fileID)
	if err != nil {
		handleError(w, err)
		return
	}

	if text, ok := file.Text(); ok {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, text.Text)
		return
	}

	content, _ := file.Blob()
	reader, err := h.files.OpenBlob(content)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", blob.ContentType(content.Type))
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("blob stream interrupted", "file_id", fileID, "error", err)
	}
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

func formFlag(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// parseUploadForm parses a multipart body and hands back the "file" part, if
// one was sent. The body is capped at the upload limit plus form overhead; the
// returned cleanup closes the part. When ok is false an error response has
// already been written.
func parseUploadForm(w http.ResponseWriter, r *http.Request) (*cabinet.Upload, func(), bool) {
	cleanup := func() {}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize+config.MaxRequestBody)
	if err := r.ParseMultipartForm(config.MaxRequestBody); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart body")
		return nil, cleanup, false
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		// No "file" part: a text document sent as form data.
		return nil, cleanup, true
	}

	upload := &cabinet.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Reader:   part,
	}
	return upload, func() { part.Close() }, true
}
