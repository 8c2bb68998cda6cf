package repositories

import (
	"context"

	"registratur/internal/domain/models"
)

// ResolutionKind says where in the tree a folder id resolved.
type ResolutionKind int

const (
	// ResolvedRoot means the id matched a top-level folder.
	ResolvedRoot ResolutionKind = iota
	// ResolvedNested means the id matched a subfolder; ParentID is set.
	ResolvedNested
)

// Resolution is the typed result of resolving a folder id. Callers mutate
// Folder in place and persist through FolderRepository.Save, which dispatches
// on Kind instead of threading an "is nested" boolean through call sites.
type Resolution struct {
	Kind     ResolutionKind
	ParentID string // id of the direct parent, set when Kind == ResolvedNested
	Folder   *models.Folder
}

// FolderRepository loads, queries, and persists the entire folder collection
// as one unit. Lookup and update work uniformly whether the target is a root
// folder or nested at any depth. Every mutation is a full read-modify-write of
// the collection; implementations must serialize writers.
type FolderRepository interface {
	// LoadAll returns the full collection. A missing or corrupt backing store
	// yields an empty tree, not an error.
	LoadAll(ctx context.Context) ([]models.Folder, error)

	// FindRoot scans the top-level sequence for id. Returns ErrNotFound.
	FindRoot(ctx context.Context, id string) (*models.Folder, error)

	// FindNested searches every root's subtree (roots themselves excluded) in
	// order for id. The first match wins. Returns ErrNotFound.
	FindNested(ctx context.Context, id string) (*models.Folder, error)

	// Resolve tries FindRoot first, then FindNested. The ordering matters: if
	// a root id and a nested id ever collided, root wins.
	Resolve(ctx context.Context, id string) (*Resolution, error)

	// CreateRoot appends to the top-level sequence and persists. Returns
	// ErrConflict if the id already resolves anywhere in the tree.
	CreateRoot(ctx context.Context, folder *models.Folder) error

	// CreateNested appends to the parent's subfolders and persists. Returns
	// ErrNotFound if the parent does not resolve, ErrConflict on a duplicate id.
	CreateNested(ctx context.Context, parentID string, folder *models.Folder) error

	// UpdateRoot replaces the top-level entry whose id matches and persists.
	UpdateRoot(ctx context.Context, id string, folder *models.Folder) error

	// UpdateNested replaces the subfolder entry with this id inside its parent
	// and persists. Returns ErrNotFound if no parent holds the id.
	UpdateNested(ctx context.Context, id string, folder *models.Folder) error

	// Save persists a previously resolved (and since mutated) folder through
	// the update path matching its resolution kind.
	Save(ctx context.Context, res *Resolution) error

	// DeleteRoot removes the matching top-level entry and persists.
	DeleteRoot(ctx context.Context, id string) error

	// DeleteNested splices childID out of the parent's subfolders, leaving
	// sibling order unchanged, and persists.
	DeleteNested(ctx context.Context, parentID, childID string) error
}
