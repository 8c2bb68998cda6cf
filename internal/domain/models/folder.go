package models

// Folder is a named container holding files and subfolders. The structure is
// genuinely recursive even though the department only nests one level deep in
// practice. Ids are opaque and unique across the entire tree: root folders and
// subfolders share one id space.
type Folder struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	CreatedBy     string   `json:"created_by"`
	CreatedByName string   `json:"created_by_name"`
	Files         []File   `json:"files"`
	Subfolders    []Folder `json:"subfolders"`
}

// FindFile returns the index of the file with the given id in Files, or -1.
func (f *Folder) FindFile(fileID string) int {
	for i := range f.Files {
		if f.Files[i].ID == fileID {
			return i
		}
	}
	return -1
}

// ContainsID reports whether id matches this folder or any descendant.
func (f *Folder) ContainsID(id string) bool {
	if f.ID == id {
		return true
	}
	for i := range f.Subfolders {
		if f.Subfolders[i].ContainsID(id) {
			return true
		}
	}
	return false
}

// CreateFolderRequest carries the create_folder form fields.
type CreateFolderRequest struct {
	Name           string `json:"folder_name"`
	Description    string `json:"folder_description"`
	ParentFolderID string `json:"parent_folder_id,omitempty"`
}
