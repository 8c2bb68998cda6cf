// Package blob stores uploaded binaries in a flat directory, one file per
// record, named "<file id>.<extension>". Only png and pdf are accepted.
package blob

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"registratur/internal/domain"
)

// allowedTypes maps permitted extensions to the MIME type their content must
// sniff as. Extension and content have to agree; the client's declared
// Content-Type header is not trusted.
var allowedTypes = map[string]string{
	"png": "image/png",
	"pdf": "application/pdf",
}

// ContentType returns the MIME type served for a stored extension.
func ContentType(ext string) string {
	return allowedTypes[ext]
}

// AllowedExtension reports whether ext is in the upload allow-list.
func AllowedExtension(ext string) bool {
	_, ok := allowedTypes[ext]
	return ok
}

// Extension returns the lower-cased extension of an uploaded filename without
// the leading dot, or "" if the name has none.
func Extension(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.ToLower(ext)
}

// Store is the flat blob storage area.
type Store struct {
	dir    string
	logger *slog.Logger
}

// NewStore creates the storage directory if needed.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("blob: storage directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: create storage directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Name returns the stored filename for a file id and extension.
func Name(id, ext string) string {
	return id + "." + ext
}

// Write stores the upload under name, sniffing the content against the MIME
// type the extension demands and enforcing maxSize. Writing to an existing
// name overwrites it in place, which is how blob replacement reuses the old
// path. Returns the byte count written.
func (s *Store) Write(name string, r io.Reader, maxSize int64) (int64, error) {
	ext := Extension(name)
	wantMIME, ok := allowedTypes[ext]
	if !ok {
		return 0, fmt.Errorf("%w: file type %q is not allowed (png, pdf)", domain.ErrValidation, ext)
	}

	// Sniff the leading bytes before committing anything to disk.
	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: read upload: %v", domain.ErrPersistence, err)
	}
	head = head[:n]
	if got := http.DetectContentType(head); got != wantMIME {
		return 0, fmt.Errorf("%w: upload content is %s, expected %s", domain.ErrValidation, got, wantMIME)
	}

	tmp := filepath.Join(s.dir, name+".part")
	f, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("%w: create blob: %v", domain.ErrPersistence, err)
	}

	written, err := io.Copy(f, io.MultiReader(bytes.NewReader(head), io.LimitReader(r, maxSize)))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("%w: write blob: %v", domain.ErrPersistence, err)
	}
	if written > maxSize {
		os.Remove(tmp)
		return 0, fmt.Errorf("%w: upload exceeds the %d byte limit", domain.ErrValidation, maxSize)
	}

	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("%w: store blob: %v", domain.ErrPersistence, err)
	}

	return written, nil
}

// Open opens a stored blob for reading. Returns ErrNotFound if it is gone.
func (s *Store) Open(name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("blob %s: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: open blob %s: %v", domain.ErrPersistence, name, err)
	}
	return f, nil
}

// Remove deletes a stored blob. Best effort: a missing blob is not an error,
// and failures are logged rather than surfaced because removal only happens
// during cleanup of an operation that has already failed or already completed.
func (s *Store) Remove(name string) {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("blob cleanup failed", "name", name, "error", err)
	}
}
