package cabinet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"registratur/internal/blob"
	"registratur/internal/config"
	"registratur/internal/domain"
	"registratur/internal/domain/models"
	"registratur/internal/domain/repositories"
	"registratur/internal/sanitize"
	svcauth "registratur/internal/service/auth"
)

// FileService adds, edits, and deletes files inside a resolved folder and
// re-persists through the update path matching where the folder sits.
type FileService struct {
	repo       repositories.FolderRepository
	blobs      *blob.Store
	authorizer DeleteAuthorizer
	logger     *slog.Logger
}

// NewFileService creates a new file service.
func NewFileService(
	repo repositories.FolderRepository,
	blobs *blob.Store,
	authorizer DeleteAuthorizer,
	logger *slog.Logger,
) *FileService {
	return &FileService{
		repo:       repo,
		blobs:      blobs,
		authorizer: authorizer,
		logger:     logger,
	}
}

// AddFile appends a new file record to the folder. Text documents need a
// non-empty title and content; uploads additionally pass the size cap and the
// png/pdf allow-list before any blob reaches storage. If the document write
// fails after the blob was stored, the orphaned blob is removed again.
func (s *FileService) AddFile(ctx context.Context, identity *models.Identity, folderID string, req *AddFileRequest) (*models.File, error) {
	req.Title = sanitize.Text(req.Title)
	req.Description = sanitize.Text(req.Description)
	if req.DocumentType == DocumentTypeText {
		req.Content = sanitize.Text(req.Content)
	}

	if err := validateAddFile(req); err != nil {
		return nil, err
	}

	res, err := s.repo.Resolve(ctx, folderID)
	if err != nil {
		return nil, err
	}

	file := models.File{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		CreatedBy:     identity.UserID,
		CreatedByName: identity.DisplayName,
		DateCreated:   time.Now().UTC(),
	}

	var blobName string
	switch req.DocumentType {
	case DocumentTypeText:
		file.Content = models.TextContent{Text: req.Content}
	case DocumentTypeFile:
		ext := blob.Extension(req.Upload.Filename)
		if !blob.AllowedExtension(ext) {
			return nil, fmt.Errorf("%w: file type %q is not allowed (png, pdf)", domain.ErrValidation, ext)
		}

		blobName = blob.Name(file.ID, ext)
		written, err := s.blobs.Write(blobName, req.Upload.Reader, config.MaxUploadSize)
		if err != nil {
			return nil, err
		}
		file.Content = models.BlobContent{Type: ext, Path: blobName, Size: written}
	}

	res.Folder.Files = append(res.Folder.Files, file)
	if err := s.repo.Save(ctx, res); err != nil {
		// The blob made it to storage but the record did not: remove the
		// orphan so nothing unreferenced lingers in the upload area.
		if blobName != "" {
			s.blobs.Remove(blobName)
		}
		return nil, err
	}

	s.logger.Info("file added",
		"id", file.ID,
		"folder_id", folderID,
		"document_type", req.DocumentType,
		"actor", identity.UserID,
	)

	return &file, nil
}

// EditFile updates title, description, and date_updated unconditionally; it
// replaces content for text records, and for blob records overwrites the
// stored binary in place when the replace flag is set. A replacement upload
// must keep the record's file type; cross-type replacement is rejected. Any
// single failure aborts the whole update.
func (s *FileService) EditFile(ctx context.Context, identity *models.Identity, folderID, fileID string, req *EditFileRequest) (*models.File, error) {
	res, err := s.repo.Resolve(ctx, folderID)
	if err != nil {
		return nil, err
	}

	idx := res.Folder.FindFile(fileID)
	if idx < 0 {
		return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}
	file := &res.Folder.Files[idx]
	_, isText := file.Text()

	req.Title = sanitize.Text(req.Title)
	req.Description = sanitize.Text(req.Description)
	if isText {
		req.Content = sanitize.Text(req.Content)
	}

	if err := validateEditFile(req, isText); err != nil {
		return nil, err
	}

	if req.ReplaceBlob {
		existing, _ := file.Blob()
		ext := blob.Extension(req.Upload.Filename)
		if ext != existing.Type {
			return nil, fmt.Errorf("%w: replacement must be a %s file, got %q", domain.ErrValidation, existing.Type, ext)
		}

		// Overwrite the stored blob under its existing name so the old path
		// is reused and never orphaned.
		written, err := s.blobs.Write(existing.Path, req.Upload.Reader, config.MaxUploadSize)
		if err != nil {
			return nil, err
		}
		file.Content = models.BlobContent{Type: existing.Type, Path: existing.Path, Size: written}
	}

	file.Title = req.Title
	file.Description = req.Description
	if isText {
		file.Content = models.TextContent{Text: req.Content}
	}
	now := time.Now().UTC()
	file.DateUpdated = &now

	if err := s.repo.Save(ctx, res); err != nil {
		return nil, err
	}

	s.logger.Info("file edited",
		"id", fileID,
		"folder_id", folderID,
		"blob_replaced", req.ReplaceBlob,
		"actor", identity.UserID,
	)

	updated := *file
	return &updated, nil
}

// DeleteFile removes the record from its folder and, for blob records,
// best-effort deletes the stored binary. Requires the file-delete capability;
// a permission failure aborts with no mutation.
func (s *FileService) DeleteFile(ctx context.Context, identity *models.Identity, folderID, fileID string) error {
	if err := s.authorizer.CanDelete(ctx, identity, svcauth.PermDeleteFile); err != nil {
		return err
	}

	res, err := s.repo.Resolve(ctx, folderID)
	if err != nil {
		return err
	}

	idx := res.Folder.FindFile(fileID)
	if idx < 0 {
		return fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}

	blobContent, hadBlob := res.Folder.Files[idx].Blob()
	res.Folder.Files = append(res.Folder.Files[:idx], res.Folder.Files[idx+1:]...)

	if err := s.repo.Save(ctx, res); err != nil {
		return err
	}

	if hadBlob {
		s.blobs.Remove(blobContent.Path)
	}

	s.logger.Info("file deleted",
		"id", fileID,
		"folder_id", folderID,
		"had_blob", hadBlob,
		"actor", identity.UserID,
	)

	return nil
}

// GetFile returns a file record from its folder.
func (s *FileService) GetFile(ctx context.Context, folderID, fileID string) (*models.File, error) {
	res, err := s.repo.Resolve(ctx, folderID)
	if err != nil {
		return nil, err
	}

	idx := res.Folder.FindFile(fileID)
	if idx < 0 {
		return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}

	file := res.Folder.Files[idx]
	return &file, nil
}

// OpenBlob opens the stored binary of a blob record for streaming.
func (s *FileService) OpenBlob(content models.BlobContent) (io.ReadCloser, error) {
	return s.blobs.Open(content.Path)
}
