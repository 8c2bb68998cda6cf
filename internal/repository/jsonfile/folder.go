package jsonfile

import (
	"context"
	"fmt"

	"registratur/internal/domain"
	"registratur/internal/domain/models"
	"registratur/internal/domain/repositories"
)

// FolderRepository implements repositories.FolderRepository on top of Store.
type FolderRepository struct {
	store *Store
}

// NewFolderRepository creates a folder repository backed by the given store.
func NewFolderRepository(store *Store) *FolderRepository {
	return &FolderRepository{store: store}
}

var _ repositories.FolderRepository = (*FolderRepository)(nil)

// findInSubtrees walks the given folders depth-first, in order, and returns
// the first folder matching id at any depth. Returns nil if none matches.
func findInSubtrees(folders []models.Folder, id string) *models.Folder {
	for i := range folders {
		if folders[i].ID == id {
			return &folders[i]
		}
		if match := findInSubtrees(folders[i].Subfolders, id); match != nil {
			return match
		}
	}
	return nil
}

// findParent returns the folder whose direct subfolders contain childID,
// searching the whole forest depth-first. Returns nil if no parent holds it.
func findParent(folders []models.Folder, childID string) *models.Folder {
	for i := range folders {
		for j := range folders[i].Subfolders {
			if folders[i].Subfolders[j].ID == childID {
				return &folders[i]
			}
		}
		if parent := findParent(folders[i].Subfolders, childID); parent != nil {
			return parent
		}
	}
	return nil
}

func idExists(folders []models.Folder, id string) bool {
	return findInSubtrees(folders, id) != nil
}

// LoadAll returns the full collection.
func (r *FolderRepository) LoadAll(ctx context.Context) ([]models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.load(), nil
}

// FindRoot scans the top-level sequence for id.
func (r *FolderRepository) FindRoot(ctx context.Context, id string) (*models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	folders := r.store.load()
	for i := range folders {
		if folders[i].ID == id {
			folder := folders[i]
			return &folder, nil
		}
	}
	return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

// FindNested searches every root's subtree, roots themselves excluded, in
// order. The first match wins on a duplicate id.
func (r *FolderRepository) FindNested(ctx context.Context, id string) (*models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	folders := r.store.load()
	for i := range folders {
		if match := findInSubtrees(folders[i].Subfolders, id); match != nil {
			folder := *match
			return &folder, nil
		}
	}
	return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

// Resolve tries the top level first, then the subtrees. Root wins an id
// collision because lookups by id do not disambiguate by depth.
func (r *FolderRepository) Resolve(ctx context.Context, id string) (*repositories.Resolution, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return resolve(r.store.load(), id)
}

func resolve(folders []models.Folder, id string) (*repositories.Resolution, error) {
	for i := range folders {
		if folders[i].ID == id {
			folder := folders[i]
			return &repositories.Resolution{Kind: repositories.ResolvedRoot, Folder: &folder}, nil
		}
	}

	if parent := findParent(folders, id); parent != nil {
		folder := *findInSubtrees(parent.Subfolders, id)
		return &repositories.Resolution{
			Kind:     repositories.ResolvedNested,
			ParentID: parent.ID,
			Folder:   &folder,
		}, nil
	}

	return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

// CreateRoot appends to the top-level sequence and persists. Ids are enforced
// unique across the entire tree at creation time.
func (r *FolderRepository) CreateRoot(ctx context.Context, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	folders := r.store.load()
	if idExists(folders, folder.ID) {
		return fmt.Errorf("folder id %s: %w", folder.ID, domain.ErrConflict)
	}

	folders = append(folders, *folder)
	return r.store.save(folders)
}

// CreateNested appends to the parent's subfolders and persists.
func (r *FolderRepository) CreateNested(ctx context.Context, parentID string, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	folders := r.store.load()
	if idExists(folders, folder.ID) {
		return fmt.Errorf("folder id %s: %w", folder.ID, domain.ErrConflict)
	}

	parent := findInSubtrees(folders, parentID)
	if parent == nil {
		return fmt.Errorf("parent folder %s: %w", parentID, domain.ErrNotFound)
	}

	parent.Subfolders = append(parent.Subfolders, *folder)
	return r.store.save(folders)
}

// UpdateRoot replaces the top-level entry whose id matches and persists.
func (r *FolderRepository) UpdateRoot(ctx context.Context, id string, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	folders := r.store.load()
	for i := range folders {
		if folders[i].ID == id {
			folders[i] = *folder
			return r.store.save(folders)
		}
	}
	return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

// UpdateNested replaces the subfolder entry with this id inside whichever
// folder directly holds it, and persists.
func (r *FolderRepository) UpdateNested(ctx context.Context, id string, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	folders := r.store.load()
	parent := findParent(folders, id)
	if parent == nil {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}

	for i := range parent.Subfolders {
		if parent.Subfolders[i].ID == id {
			parent.Subfolders[i] = *folder
			break
		}
	}
	return r.store.save(folders)
}

// Save persists a resolved folder through the update path matching its kind.
func (r *FolderRepository) Save(ctx context.Context, res *repositories.Resolution) error {
	switch res.Kind {
	case repositories.ResolvedNested:
		return r.UpdateNested(ctx, res.Folder.ID, res.Folder)
	default:
		return r.UpdateRoot(ctx, res.Folder.ID, res.Folder)
	}
}

// DeleteRoot removes the matching top-level entry and persists.
func (r *FolderRepository) DeleteRoot(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	folders := r.store.load()
	for i := range folders {
		if folders[i].ID == id {
			folders = append(folders[:i], folders[i+1:]...)
			return r.store.save(folders)
		}
	}
	return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

// DeleteNested splices childID out of the parent's subfolders by index,
// leaving sibling order unchanged, and persists.
func (r *FolderRepository) DeleteNested(ctx context.Context, parentID, childID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	folders := r.store.load()
	parent := findInSubtrees(folders, parentID)
	if parent == nil {
		return fmt.Errorf("parent folder %s: %w", parentID, domain.ErrNotFound)
	}

	for i := range parent.Subfolders {
		if parent.Subfolders[i].ID == childID {
			parent.Subfolders = append(parent.Subfolders[:i], parent.Subfolders[i+1:]...)
			return r.store.save(folders)
		}
	}
	return fmt.Errorf("subfolder %s: %w", childID, domain.ErrNotFound)
}
