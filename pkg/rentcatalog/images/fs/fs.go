// Package fs is the canonical image backend: one directory per slug under
// a base directory, files named by their original upload filename.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rentgear/catalog/pkg/rentcatalog"
)

// Store is a filesystem implementation of rentcatalog.ImageStore
type Store struct {
	mu      sync.RWMutex
	baseDir string
}

// Config options for the filesystem image store
type Config struct {
	BaseDir string // Directory holding one sub-directory per slug
}

// New creates a new filesystem image store, creating the base directory
// if it does not exist.
func New(config Config) (*Store, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Store{baseDir: config.BaseDir}, nil
}

// BaseDir returns the directory the store writes under, for callers that
// serve it statically.
func (s *Store) BaseDir() string {
	return s.baseDir
}

func (s *Store) dir(slug string) string {
	return filepath.Join(s.baseDir, slug)
}

// List returns the accepted image filenames for the slug, lexicographic
// ascending. Ordering is recomputed on every read; there is no persisted
// ordering field. A missing directory yields an empty slice.
func (s *Store) List(ctx context.Context, slug string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir(slug))
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, &rentcatalog.StorageError{Store: "images/fs", Key: slug, Op: "list", Err: err}
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !rentcatalog.IsAcceptedImage(entry.Name()) {
			continue
		}
		filenames = append(filenames, entry.Name())
	}

	sort.Strings(filenames)
	return filenames, nil
}

// Put writes the batch under the slug's directory, creating it if absent.
// Rejected extensions are skipped silently; accepted files overwrite any
// same-named existing file. A batch with no accepted files fails with
// ErrNoImagesAccepted; a per-file write failure leaves earlier writes in
// place.
func (s *Store) Put(ctx context.Context, slug string, files []rentcatalog.ImageUpload) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.dir(slug)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &rentcatalog.StorageError{Store: "images/fs", Key: slug, Op: "mkdir", Err: err}
	}

	accepted := make([]string, 0, len(files))
	for _, file := range files {
		filename := filepath.Base(file.Filename)
		if !rentcatalog.IsAcceptedImage(filename) {
			slog.WarnContext(ctx, "skipping file with unsupported extension", "slug", slug, "filename", file.Filename)
			continue
		}

		if err := writeFile(filepath.Join(dir, filename), file.Reader); err != nil {
			return accepted, &rentcatalog.StorageError{Store: "images/fs", Key: slug + "/" + filename, Op: "put", Err: err}
		}
		accepted = append(accepted, filename)
	}

	if len(accepted) == 0 {
		return nil, rentcatalog.ErrNoImagesAccepted
	}
	return accepted, nil
}

func writeFile(path string, reader io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Delete removes one file from the slug's directory.
func (s *Store) Delete(ctx context.Context, slug string, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir(slug), filepath.Base(filename)))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s/%s", rentcatalog.ErrImageNotFound, slug, filename)
	} else if err != nil {
		return &rentcatalog.StorageError{Store: "images/fs", Key: slug + "/" + filename, Op: "delete", Err: err}
	}
	return nil
}

// DeleteAll removes the slug's directory recursively and reports whether
// it existed before the call.
func (s *Store) DeleteAll(ctx context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.dir(slug)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, &rentcatalog.StorageError{Store: "images/fs", Key: slug, Op: "delete all", Err: err}
	}

	if err := os.RemoveAll(dir); err != nil {
		return true, &rentcatalog.StorageError{Store: "images/fs", Key: slug, Op: "delete all", Err: err}
	}
	return true, nil
}

// Ensure creates the slug's directory if it does not exist.
func (s *Store) Ensure(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir(slug), 0755); err != nil {
		return &rentcatalog.StorageError{Store: "images/fs", Key: slug, Op: "ensure", Err: err}
	}
	return nil
}
