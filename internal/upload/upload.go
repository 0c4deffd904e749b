// Package upload implements the image upload pipeline: extension and size
// validation followed by persistence under the public-servable uploads dir.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"portfolio/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrUnsupportedExtension indicates a file outside the image allow-list.
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	// ErrFileTooLarge indicates a file exceeding the configured size cap.
	ErrFileTooLarge = errors.New("file exceeds upload size limit")
)

// DefaultMaxBytes is the per-file size cap used when none is configured.
const DefaultMaxBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store validates incoming multipart files and writes accepted ones to disk
// under a single directory, producing collision-resistant stored names.
type Store struct {
	dir      string
	maxBytes int64
}

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, maxBytes int64) (*Store, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes}, nil
}

// Dir returns the directory stored files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Accept validates the whole batch, then persists every file. Validation runs
// first so a rejected batch leaves nothing on disk: one disallowed extension
// or oversized file fails the entire request.
func (s *Store) Accept(files []*multipart.FileHeader) ([]domain.StoredFile, error) {
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedExtensions[ext] {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, fh.Filename)
		}
		if fh.Size > s.maxBytes {
			return nil, fmt.Errorf("%w: %q (%d bytes)", ErrFileTooLarge, fh.Filename, fh.Size)
		}
	}

	stored := make([]domain.StoredFile, 0, len(files))
	for _, fh := range files {
		sf, err := s.save(fh)
		if err != nil {
			return nil, err
		}
		stored = append(stored, sf)
	}
	return stored, nil
}

func (s *Store) save(fh *multipart.FileHeader) (domain.StoredFile, error) {
	src, err := fh.Open()
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("create stored file: %w", err)
	}

	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst.Name())
		return domain.StoredFile{}, fmt.Errorf("write stored file: %w", err)
	}

	return domain.StoredFile{Name: name, OriginalName: fh.Filename, Size: n}, nil
}
