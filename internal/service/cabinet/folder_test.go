package cabinet

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registratur/internal/domain"
	"registratur/internal/domain/models"
)

func TestCreateFolder_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  models.CreateFolderRequest
	}{
		{"empty name", models.CreateFolderRequest{Description: "ohne Name"}},
		{"markup-only name", models.CreateFolderRequest{Name: "<b></b>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := f.folders.CreateFolder(ctx, leadership, &req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCreateFolder_SanitizesFreeText(t *testing.T) {
	f := newFixture(t)

	folder, err := f.folders.CreateFolder(context.Background(), leadership, &models.CreateFolderRequest{
		Name:        "  Akten <script>alert(1)</script>  ",
		Description: "<i>laufende</i> Verfahren",
	})
	require.NoError(t, err)
	assert.Equal(t, "Akten", folder.Name)
	assert.Equal(t, "laufende Verfahren", folder.Description)
	assert.Equal(t, leadership.UserID, folder.CreatedBy)
	assert.Equal(t, leadership.DisplayName, folder.CreatedByName)
}

func TestCreateFolder_UnknownParent(t *testing.T) {
	f := newFixture(t)

	_, err := f.folders.CreateFolder(context.Background(), leadership, &models.CreateFolderRequest{
		Name:           "2024",
		ParentFolderID: "ghost",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteFolder_RequiresPermission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	folder := f.mustCreateFolder(t, "Akten", "")

	err := f.folders.DeleteFolder(ctx, clerk, folder.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	view, viewErr := f.views.GetView(ctx, folder.ID, "")
	require.NoError(t, viewErr)
	assert.NotNil(t, view.Selected, "folder must still exist")
}

func TestDeleteFolder_NestedCleansSubtreeBlobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	root := f.mustCreateFolder(t, "Akten", "")
	year := f.mustCreateFolder(t, "2024", root.ID)
	f.mustAddBlob(t, year.ID, "Beweisfoto", "foto.png", pngBytes)

	require.NoError(t, f.folders.DeleteFolder(ctx, leadership, year.ID))

	_, err := f.views.GetView(ctx, year.ID, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	entries, readErr := os.ReadDir(f.blobDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "subtree blobs must be removed")

	// The parent survives with no subfolders left.
	view, viewErr := f.views.GetView(ctx, root.ID, "")
	require.NoError(t, viewErr)
	assert.Empty(t, view.Selected.Subfolders)
}

// The end-to-end walk from the department's daily routine: a root cabinet
// drawer, a year folder inside it, and a memo filed in the year folder.
func TestScenario_RootYearMemo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	akten := f.mustCreateFolder(t, "Akten", "")
	year := f.mustCreateFolder(t, "2024", akten.ID)
	memo := f.mustAddText(t, year.ID, "Memo", "Text")

	view, err := f.views.GetView(ctx, year.ID, "")
	require.NoError(t, err)
	require.NotNil(t, view.Selected)
	assert.True(t, view.Selected.Nested)
	require.Len(t, view.Selected.Files, 1)
	assert.Equal(t, "Memo", view.Selected.Files[0].Title)
	assert.Equal(t, memo.ID, view.Selected.Files[0].ID)

	view, err = f.views.GetView(ctx, akten.ID, "")
	require.NoError(t, err)
	require.Len(t, view.Selected.Subfolders, 1)
	assert.Equal(t, year.ID, view.Selected.Subfolders[0].ID)
	assert.Equal(t, 1, view.Selected.Subfolders[0].FileCount)
}
