package cabinet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"registratur/internal/domain"
	"registratur/internal/domain/models"
	"registratur/internal/domain/repositories"
)

// File view variants, keyed on the stored content.
const (
	VariantText = "text"
	VariantPNG  = "png"
	VariantPDF  = "pdf"
)

// FolderSummary is the list form of a folder: name plus counts.
type FolderSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	FileCount      int    `json:"file_count"`
	SubfolderCount int    `json:"subfolder_count"`
}

// FileSummary is the list form of a file, in stored (insertion) order.
type FileSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	DateCreated time.Time `json:"date_created"`
}

// FileView renders a selected file by variant: inline text carries Content,
// blobs carry a ContentURL the client embeds (png as image, pdf as document).
type FileView struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	CreatedByName string     `json:"created_by_name"`
	DateCreated   time.Time  `json:"date_created"`
	DateUpdated   *time.Time `json:"date_updated,omitempty"`
	Variant       string     `json:"variant"`
	Content       string     `json:"content,omitempty"`
	ContentURL    string     `json:"content_url,omitempty"`
	FileSize      int64      `json:"file_size,omitempty"`
}

// FolderView is the selected folder with its immediate subfolders and files.
type FolderView struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CreatedByName string          `json:"created_by_name"`
	Nested        bool            `json:"nested"`
	ParentID      string          `json:"parent_id,omitempty"`
	Subfolders    []FolderSummary `json:"subfolders"`
	Files         []FileSummary   `json:"files"`
	File          *FileView       `json:"file,omitempty"`
}

// View is the cabinet display model. Root folder summaries are always
// present; Selected is set once a folder id resolves, and Selected.File once
// a file id does too.
type View struct {
	Folders  []FolderSummary `json:"folders"`
	Selected *FolderView     `json:"selected,omitempty"`
}

// ViewService projects the folder tree into the display model.
type ViewService struct {
	repo   repositories.FolderRepository
	logger *slog.Logger
}

// NewViewService creates a new view service.
func NewViewService(repo repositories.FolderRepository, logger *slog.Logger) *ViewService {
	return &ViewService{repo: repo, logger: logger}
}

// GetView builds the display model for the given selection. Ids that are
// present but do not resolve are reported as not found.
func (s *ViewService) GetView(ctx context.Context, folderID, fileID string) (*View, error) {
	if folderID == "" && fileID != "" {
		return nil, fmt.Errorf("%w: a file can only be selected within a folder", domain.ErrValidation)
	}

	roots, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	view := &View{Folders: make([]FolderSummary, 0, len(roots))}
	for i := range roots {
		view.Folders = append(view.Folders, summarize(&roots[i]))
	}

	if folderID == "" {
		return view, nil
	}

	res, err := s.repo.Resolve(ctx, folderID)
	if err != nil {
		return nil, err
	}
	folder := res.Folder

	selected := &FolderView{
		ID:            folder.ID,
		Name:          folder.Name,
		Description:   folder.Description,
		CreatedByName: folder.CreatedByName,
		Nested:        res.Kind == repositories.ResolvedNested,
		ParentID:      res.ParentID,
		Subfolders:    make([]FolderSummary, 0, len(folder.Subfolders)),
		Files:         make([]FileSummary, 0, len(folder.Files)),
	}
	for i := range folder.Subfolders {
		selected.Subfolders = append(selected.Subfolders, summarize(&folder.Subfolders[i]))
	}
	for i := range folder.Files {
		f := &folder.Files[i]
		selected.Files = append(selected.Files, FileSummary{
			ID:          f.ID,
			Title:       f.Title,
			DateCreated: f.DateCreated,
		})
	}

	if fileID != "" {
		idx := folder.FindFile(fileID)
		if idx < 0 {
			return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
		}
		selected.File = projectFile(folder.ID, &folder.Files[idx])
	}

	view.Selected = selected
	return view, nil
}

func summarize(folder *models.Folder) FolderSummary {
	return FolderSummary{
		ID:             folder.ID,
		Name:           folder.Name,
		Description:    folder.Description,
		FileCount:      len(folder.Files),
		SubfolderCount: len(folder.Subfolders),
	}
}

func projectFile(folderID string, file *models.File) *FileView {
	view := &FileView{
		ID:            file.ID,
		Title:         file.Title,
		Description:   file.Description,
		CreatedByName: file.CreatedByName,
		DateCreated:   file.DateCreated,
		DateUpdated:   file.DateUpdated,
	}

	switch c := file.Content.(type) {
	case models.TextContent:
		view.Variant = VariantText
		view.Content = c.Text
	case models.BlobContent:
		view.Variant = c.Type
		view.ContentURL = fmt.Sprintf("/api/folders/%s/files/%s/content", folderID, file.ID)
		view.FileSize = c.Size
	}

	return view
}
