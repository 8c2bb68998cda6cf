package cabinet

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registratur/internal/domain"
)

func TestGetView_NoSelection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.views.GetView(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, view.Folders)
	assert.Nil(t, view.Selected)

	f.mustCreateFolder(t, "Akten", "")
	f.mustCreateFolder(t, "Vorlagen", "")

	view, err = f.views.GetView(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, view.Folders, 2)
	assert.Equal(t, "Akten", view.Folders[0].Name)
	assert.Equal(t, "Vorlagen", view.Folders[1].Name)
	assert.Nil(t, view.Selected)
}

func TestGetView_FileWithoutFolderRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.views.GetView(context.Background(), "", "some-file")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetView_SelectedTextFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	folder := f.mustCreateFolder(t, "Akten", "")
	file := f.mustAddText(t, folder.ID, "Memo", "Text")

	view, err := f.views.GetView(ctx, folder.ID, file.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Selected)
	require.NotNil(t, view.Selected.File)

	fv := view.Selected.File
	assert.Equal(t, VariantText, fv.Variant)
	assert.Equal(t, "Text", fv.Content)
	assert.Empty(t, fv.ContentURL)
}

func TestGetView_SelectedBlobFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	folder := f.mustCreateFolder(t, "Akten", "")
	file := f.mustAddBlob(t, folder.ID, "Beweisfoto", "foto.png", pngBytes)

	view, err := f.views.GetView(ctx, folder.ID, file.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Selected.File)

	fv := view.Selected.File
	assert.Equal(t, VariantPNG, fv.Variant)
	assert.Empty(t, fv.Content)
	assert.Equal(t, fmt.Sprintf("/api/folders/%s/files/%s/content", folder.ID, file.ID), fv.ContentURL)
	assert.Equal(t, int64(len(pngBytes)), fv.FileSize)
}

func TestGetView_UnresolvedIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	folder := f.mustCreateFolder(t, "Akten", "")

	_, err := f.views.GetView(ctx, "ghost", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.views.GetView(ctx, folder.ID, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
