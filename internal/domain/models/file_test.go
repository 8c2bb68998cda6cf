package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_MarshalFlattensVariant(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		file    File
		want    map[string]any
		absent  []string
	}{
		{
			name: "text variant carries content only",
			file: File{
				ID:          "f1",
				Title:       "Memo",
				DateCreated: created,
				Content:     TextContent{Text: "Text"},
			},
			want:   map[string]any{"content": "Text"},
			absent: []string{"file_type", "file_path", "file_size"},
		},
		{
			name: "blob variant carries the file trio only",
			file: File{
				ID:          "f2",
				Title:       "Beweisfoto",
				DateCreated: created,
				Content:     BlobContent{Type: "png", Path: "f2.png", Size: 2048},
			},
			want:   map[string]any{"file_type": "png", "file_path": "f2.png", "file_size": float64(2048)},
			absent: []string{"content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.file)
			require.NoError(t, err)

			var raw map[string]any
			require.NoError(t, json.Unmarshal(data, &raw))
			for key, want := range tt.want {
				assert.Equal(t, want, raw[key])
			}
			for _, key := range tt.absent {
				assert.NotContains(t, raw, key)
			}
		})
	}
}

func TestFile_UnmarshalRestoresVariant(t *testing.T) {
	var text File
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "f1", "title": "Memo", "date_created": "2024-03-01T12:00:00Z",
		"content": "Text"
	}`), &text))
	content, ok := text.Text()
	require.True(t, ok)
	assert.Equal(t, "Text", content.Text)

	var blob File
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "f2", "title": "Anklageschrift", "date_created": "2024-03-01T12:00:00Z",
		"file_type": "pdf", "file_path": "f2.pdf", "file_size": 4096
	}`), &blob))
	b, ok := blob.Blob()
	require.True(t, ok)
	assert.Equal(t, BlobContent{Type: "pdf", Path: "f2.pdf", Size: 4096}, b)
}

func TestFile_UnmarshalRejectsMissingVariant(t *testing.T) {
	var f File
	err := json.Unmarshal([]byte(`{"id": "f3", "title": "Leer"}`), &f)
	assert.Error(t, err)
}

func TestFile_MarshalRejectsMissingVariant(t *testing.T) {
	_, err := json.Marshal(File{ID: "f4", Title: "Leer"})
	assert.Error(t, err)
}

func TestFolder_ContainsID(t *testing.T) {
	tree := Folder{
		ID: "root",
		Subfolders: []Folder{
			{ID: "a"},
			{ID: "b", Subfolders: []Folder{{ID: "deep"}}},
		},
	}

	assert.True(t, tree.ContainsID("root"))
	assert.True(t, tree.ContainsID("deep"))
	assert.False(t, tree.ContainsID("ghost"))
}
