// Package memory is an in-memory image backend, used by tests.
package memory

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rentgear/catalog/pkg/rentcatalog"
)

// Store is an in-memory implementation of rentcatalog.ImageStore
type Store struct {
	mu   sync.RWMutex
	sets map[string]map[string][]byte
}

// New creates a new in-memory image store
func New() *Store {
	return &Store{sets: make(map[string]map[string][]byte)}
}

func (s *Store) List(ctx context.Context, slug string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[slug]
	if !ok {
		return []string{}, nil
	}

	filenames := make([]string, 0, len(set))
	for filename := range set {
		filenames = append(filenames, filename)
	}
	sort.Strings(filenames)
	return filenames, nil
}

func (s *Store) Put(ctx context.Context, slug string, files []rentcatalog.ImageUpload) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[slug]
	if !ok {
		set = make(map[string][]byte)
		s.sets[slug] = set
	}

	accepted := make([]string, 0, len(files))
	for _, file := range files {
		filename := filepath.Base(file.Filename)
		if !rentcatalog.IsAcceptedImage(filename) {
			continue
		}
		data, err := io.ReadAll(file.Reader)
		if err != nil {
			return accepted, &rentcatalog.StorageError{Store: "images/memory", Key: slug + "/" + filename, Op: "put", Err: err}
		}
		set[filename] = data
		accepted = append(accepted, filename)
	}

	if len(accepted) == 0 {
		return nil, rentcatalog.ErrNoImagesAccepted
	}
	return accepted, nil
}

func (s *Store) Delete(ctx context.Context, slug string, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sets[slug]
	if !ok {
		return fmt.Errorf("%w: %s/%s", rentcatalog.ErrImageNotFound, slug, filename)
	}
	if _, ok := set[filename]; !ok {
		return fmt.Errorf("%w: %s/%s", rentcatalog.ErrImageNotFound, slug, filename)
	}
	delete(set, filename)
	return nil
}

func (s *Store) DeleteAll(ctx context.Context, slug string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.sets[slug]
	delete(s.sets, slug)
	return existed, nil
}

func (s *Store) Ensure(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sets[slug]; !ok {
		s.sets[slug] = make(map[string][]byte)
	}
	return nil
}

// Bytes returns the stored content of one file, for test assertions.
func (s *Store) Bytes(slug, filename string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.sets[slug]
	if !ok {
		return nil, false
	}
	data, ok := set[filename]
	return data, ok
}
