// Package fs is the canonical metadata backend: one frontmatter document
// per product, stored as {slug}.mdx under a base directory.
package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rentgear/catalog/pkg/rentcatalog"
	"github.com/rentgear/catalog/pkg/rentcatalog/frontmatter"
)

const fileExt = ".mdx"

// Store is a filesystem implementation of rentcatalog.MetadataStore
type Store struct {
	mu      sync.RWMutex
	baseDir string
}

// Config options for the filesystem metadata store
type Config struct {
	BaseDir string // Directory holding the {slug}.mdx documents
}

// New creates a new filesystem metadata store, creating the base
// directory if it does not exist.
func New(config Config) (*Store, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Store{baseDir: config.BaseDir}, nil
}

func (s *Store) path(slug string) string {
	return filepath.Join(s.baseDir, slug+fileExt)
}

// List enumerates every document under the base directory. Documents that
// cannot be read or parsed are reported as corrupt placeholders rather
// than omitted; only a failure to read the directory itself fails the
// call. Entries are returned sorted by slug.
func (s *Store) List(ctx context.Context) ([]rentcatalog.ListEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dirEntries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, &rentcatalog.StorageError{Store: "metadata/fs", Key: s.baseDir, Op: "list", Err: err}
	}

	entries := make([]rentcatalog.ListEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), fileExt) {
			continue
		}
		slug := strings.TrimSuffix(de.Name(), fileExt)

		entry := rentcatalog.ListEntry{Slug: slug}
		data, err := os.ReadFile(filepath.Join(s.baseDir, de.Name()))
		if err == nil {
			var fm rentcatalog.Frontmatter
			fm, _, err = frontmatter.Parse(data)
			if err == nil {
				entry.Name = fm.Name
				if entry.Name == "" {
					entry.Name = "Unnamed Product"
				}
			}
		}
		if err != nil {
			entry.Name = rentcatalog.CorruptEntryName
			entry.Corrupt = true
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })
	return entries, nil
}

// Get reads one document and parses it into a Product.
func (s *Store) Get(ctx context.Context, slug string) (*rentcatalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(slug))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", rentcatalog.ErrProductNotFound, slug)
	} else if err != nil {
		return nil, &rentcatalog.StorageError{Store: "metadata/fs", Key: slug, Op: "get", Err: err}
	}

	fm, body, err := frontmatter.Parse(data)
	if err != nil {
		return nil, &rentcatalog.StorageError{Store: "metadata/fs", Key: slug, Op: "parse", Err: err}
	}

	return &rentcatalog.Product{Slug: slug, Frontmatter: fm, Body: body}, nil
}

// Create persists a new document. O_EXCL makes the create atomic: two
// concurrent creates for the same slug cannot both succeed, with no
// separate existence check racing the write.
func (s *Store) Create(ctx context.Context, product *rentcatalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := frontmatter.Marshal(product.Frontmatter, product.Body)
	if err != nil {
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: product.Slug, Op: "marshal", Err: err}
	}

	f, err := os.OpenFile(s.path(product.Slug), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if os.IsExist(err) {
		return fmt.Errorf("%w: %s", rentcatalog.ErrSlugExists, product.Slug)
	} else if err != nil {
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: product.Slug, Op: "create", Err: err}
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: product.Slug, Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: product.Slug, Op: "close", Err: err}
	}

	return nil
}

// Update overwrites an existing document. The replacement is written to a
// temp file and renamed into place so a crashed update never leaves a
// half-written document behind.
func (s *Store) Update(ctx context.Context, product *rentcatalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(product.Slug)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", rentcatalog.ErrProductNotFound, product.Slug)
	} else if err != nil {
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: product.Slug, Op: "update", Err: err}
	}

	data, err := frontmatter.Marshal(product.Frontmatter, product.Body)
	if err != nil {
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: product.Slug, Op: "marshal", Err: err}
	}

	tmp, err := os.CreateTemp(s.baseDir, product.Slug+".*.tmp")
	if err != nil {
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: product.Slug, Op: "update", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: product.Slug, Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: product.Slug, Op: "close", Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: product.Slug, Op: "rename", Err: err}
	}

	return nil
}

// Delete removes the document for the slug.
func (s *Store) Delete(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(slug))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", rentcatalog.ErrProductNotFound, slug)
	} else if err != nil {
		return &rentcatalog.StorageError{Store: "metadata/fs", Key: slug, Op: "delete", Err: err}
	}
	return nil
}
