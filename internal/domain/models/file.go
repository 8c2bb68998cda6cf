package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// File is a titled record inside a folder. Its content is exactly one of two
// variants: inline text, or a reference to an uploaded blob stored outside the
// document under the generated name "<id>.<extension>".
type File struct {
	ID            string
	Title         string
	Description   string
	CreatedBy     string
	CreatedByName string
	DateCreated   time.Time
	DateUpdated   *time.Time
	Content       FileContent
}

// FileContent is the closed content variant of a File.
type FileContent interface {
	isFileContent()
}

// TextContent is the inline-text variant.
type TextContent struct {
	Text string
}

// BlobContent references an uploaded binary. Type is the extension (png, pdf),
// Path the stored filename, Size the byte count at upload time.
type BlobContent struct {
	Type string
	Path string
	Size int64
}

func (TextContent) isFileContent() {}
func (BlobContent) isFileContent() {}

// Text returns the inline-text variant, if that is what the file holds.
func (f *File) Text() (TextContent, bool) {
	c, ok := f.Content.(TextContent)
	return c, ok
}

// Blob returns the blob variant, if that is what the file holds.
func (f *File) Blob() (BlobContent, bool) {
	c, ok := f.Content.(BlobContent)
	return c, ok
}

// fileJSON is the flat wire/document form: either "content" is present, or the
// file_type/file_path/file_size trio is.
type fileJSON struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CreatedBy     string     `json:"created_by"`
	CreatedByName string     `json:"created_by_name"`
	DateCreated   time.Time  `json:"date_created"`
	DateUpdated   *time.Time `json:"date_updated,omitempty"`
	Content       *string    `json:"content,omitempty"`
	FileType      string     `json:"file_type,omitempty"`
	FilePath      string     `json:"file_path,omitempty"`
	FileSize      int64      `json:"file_size,omitempty"`
}

// MarshalJSON flattens the content variant into the persisted layout.
func (f File) MarshalJSON() ([]byte, error) {
	out := fileJSON{
		ID:            f.ID,
		Title:         f.Title,
		Description:   f.Description,
		CreatedBy:     f.CreatedBy,
		CreatedByName: f.CreatedByName,
		DateCreated:   f.DateCreated,
		DateUpdated:   f.DateUpdated,
	}

	switch c := f.Content.(type) {
	case TextContent:
		out.Content = &c.Text
	case BlobContent:
		out.FileType = c.Type
		out.FilePath = c.Path
		out.FileSize = c.Size
	default:
		return nil, fmt.Errorf("file %s has no content variant", f.ID)
	}

	return json.Marshal(out)
}

// UnmarshalJSON restores the content variant from the flat layout. A record
// carrying a "content" field is text; one carrying file_type is a blob.
func (f *File) UnmarshalJSON(data []byte) error {
	var in fileJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	f.ID = in.ID
	f.Title = in.Title
	f.Description = in.Description
	f.CreatedBy = in.CreatedBy
	f.CreatedByName = in.CreatedByName
	f.DateCreated = in.DateCreated
	f.DateUpdated = in.DateUpdated

	switch {
	case in.Content != nil:
		f.Content = TextContent{Text: *in.Content}
	case in.FileType != "":
		f.Content = BlobContent{Type: in.FileType, Path: in.FilePath, Size: in.FileSize}
	default:
		return fmt.Errorf("file record %s has neither content nor file_type", in.ID)
	}

	return nil
}
