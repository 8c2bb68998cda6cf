package cabinet

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"registratur/internal/blob"
	"registratur/internal/domain/models"
	"registratur/internal/repository/jsonfile"
	"registratur/internal/roles"
	svcauth "registratur/internal/service/auth"
)

// pngBytes carries the PNG signature so content sniffing passes.
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

var pdfBytes = []byte("%PDF-1.4\n%%EOF\n")

var (
	leadership = &models.Identity{UserID: "u-ag", DisplayName: "Attorney General", Role: "attorney_general"}
	clerk      = &models.Identity{UserID: "u-pl", DisplayName: "Paralegal", Role: "paralegal"}
)

func testLogger() *slog.Logger { return slog.New(slog.DiscardHandler) }

// alwaysAllow skips the capability check for tests that exercise other paths.
type alwaysAllow struct{}

func (alwaysAllow) CanDelete(ctx context.Context, identity *models.Identity, permission string) error {
	return nil
}

type fixture struct {
	folders *FolderService
	files   *FileService
	views   *ViewService
	blobs   *blob.Store
	blobDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	dir := t.TempDir()

	store, err := jsonfile.NewStore(&jsonfile.StoreConfig{
		Path:   filepath.Join(dir, "folders.json"),
		Logger: logger,
	})
	require.NoError(t, err)
	repo := jsonfile.NewFolderRepository(store)

	blobDir := filepath.Join(dir, "uploads")
	blobs, err := blob.NewStore(blobDir, logger)
	require.NoError(t, err)

	registry, err := roles.NewRegistry()
	require.NoError(t, err)
	authorizer := svcauth.NewRoleBasedAuthorizer(registry)

	return &fixture{
		folders: NewFolderService(repo, blobs, authorizer, logger),
		files:   NewFileService(repo, blobs, authorizer, logger),
		views:   NewViewService(repo, logger),
		blobs:   blobs,
		blobDir: blobDir,
	}
}

func (f *fixture) mustCreateFolder(t *testing.T, name, parentID string) *models.Folder {
	t.Helper()
	folder, err := f.folders.CreateFolder(context.Background(), leadership, &models.CreateFolderRequest{
		Name:           name,
		ParentFolderID: parentID,
	})
	require.NoError(t, err)
	return folder
}

func (f *fixture) mustAddText(t *testing.T, folderID, title, content string) *models.File {
	t.Helper()
	file, err := f.files.AddFile(context.Background(), leadership, folderID, &AddFileRequest{
		DocumentType: DocumentTypeText,
		Title:        title,
		Content:      content,
	})
	require.NoError(t, err)
	return file
}

func (f *fixture) mustAddBlob(t *testing.T, folderID, title, filename string, payload []byte) *models.File {
	t.Helper()
	file, err := f.files.AddFile(context.Background(), leadership, folderID, &AddFileRequest{
		DocumentType: DocumentTypeFile,
		Title:        title,
		Upload: &Upload{
			Filename: filename,
			Size:     int64(len(payload)),
			Reader:   bytes.NewReader(payload),
		},
	})
	require.NoError(t, err)
	return file
}
