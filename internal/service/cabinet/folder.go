// Package cabinet implements the records cabinet: folder and file operations
// against the persisted folder tree, plus the read-side view projection.
package cabinet

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"registratur/internal/blob"
	"registratur/internal/domain/models"
	"registratur/internal/domain/repositories"
	"registratur/internal/sanitize"
	svcauth "registratur/internal/service/auth"
)

// FolderService creates and deletes folders, root or nested.
type FolderService struct {
	repo       repositories.FolderRepository
	blobs      *blob.Store
	authorizer DeleteAuthorizer
	logger     *slog.Logger
}

// NewFolderService creates a new folder service.
func NewFolderService(
	repo repositories.FolderRepository,
	blobs *blob.Store,
	authorizer DeleteAuthorizer,
	logger *slog.Logger,
) *FolderService {
	return &FolderService{
		repo:       repo,
		blobs:      blobs,
		authorizer: authorizer,
		logger:     logger,
	}
}

// CreateFolder creates an empty folder. With a parent id it becomes a
// subfolder of that parent; otherwise it is appended at the top level.
func (s *FolderService) CreateFolder(ctx context.Context, identity *models.Identity, req *models.CreateFolderRequest) (*models.Folder, error) {
	req.Name = sanitize.Text(req.Name)
	req.Description = sanitize.Text(req.Description)

	if err := validateCreateFolder(req); err != nil {
		return nil, err
	}

	folder := &models.Folder{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Description:   req.Description,
		CreatedBy:     identity.UserID,
		CreatedByName: identity.DisplayName,
		Files:         []models.File{},
		Subfolders:    []models.Folder{},
	}

	var err error
	if req.ParentFolderID == "" {
		err = s.repo.CreateRoot(ctx, folder)
	} else {
		err = s.repo.CreateNested(ctx, req.ParentFolderID, folder)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_folder_id", req.ParentFolderID,
		"actor", identity.UserID,
	)

	return folder, nil
}

// DeleteFolder removes a folder by id wherever it sits in the tree, then
// best-effort removes the blobs of every file in its subtree so the flat
// upload namespace does not leak. Requires the folder-delete capability.
func (s *FolderService) DeleteFolder(ctx context.Context, identity *models.Identity, folderID string) error {
	if err := s.authorizer.CanDelete(ctx, identity, svcauth.PermDeleteFolder); err != nil {
		return err
	}

	res, err := s.repo.Resolve(ctx, folderID)
	if err != nil {
		return err
	}

	blobs := collectBlobNames(res.Folder)

	switch res.Kind {
	case repositories.ResolvedNested:
		err = s.repo.DeleteNested(ctx, res.ParentID, folderID)
	default:
		err = s.repo.DeleteRoot(ctx, folderID)
	}
	if err != nil {
		return err
	}

	for _, name := range blobs {
		s.blobs.Remove(name)
	}

	s.logger.Info("folder deleted",
		"id", folderID,
		"nested", res.Kind == repositories.ResolvedNested,
		"blobs_removed", len(blobs),
		"actor", identity.UserID,
	)

	return nil
}

// collectBlobNames gathers the stored blob filenames of every file in the
// folder's subtree.
func collectBlobNames(folder *models.Folder) []string {
	var names []string
	for i := range folder.Files {
		if c, ok := folder.Files[i].Blob(); ok {
			names = append(names, c.Path)
		}
	}
	for i := range folder.Subfolders {
		names = append(names, collectBlobNames(&folder.Subfolders[i])...)
	}
	return names
}
