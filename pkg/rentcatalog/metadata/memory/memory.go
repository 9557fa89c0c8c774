// Package memory is an in-memory metadata backend, used by tests and
// throwaway environments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rentgear/catalog/pkg/rentcatalog"
)

// Store is an in-memory implementation of rentcatalog.MetadataStore
type Store struct {
	mu       sync.RWMutex
	products map[string]rentcatalog.Product
}

// New creates a new in-memory metadata store
func New() *Store {
	return &Store{products: make(map[string]rentcatalog.Product)}
}

func (s *Store) List(ctx context.Context) ([]rentcatalog.ListEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]rentcatalog.ListEntry, 0, len(s.products))
	for slug, product := range s.products {
		name := product.Frontmatter.Name
		if name == "" {
			name = "Unnamed Product"
		}
		entries = append(entries, rentcatalog.ListEntry{Slug: slug, Name: name})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })
	return entries, nil
}

func (s *Store) Get(ctx context.Context, slug string) (*rentcatalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, ok := s.products[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", rentcatalog.ErrProductNotFound, slug)
	}
	return &product, nil
}

func (s *Store) Create(ctx context.Context, product *rentcatalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.Slug]; exists {
		return fmt.Errorf("%w: %s", rentcatalog.ErrSlugExists, product.Slug)
	}
	s.products[product.Slug] = *product
	return nil
}

func (s *Store) Update(ctx context.Context, product *rentcatalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.Slug]; !exists {
		return fmt.Errorf("%w: %s", rentcatalog.ErrProductNotFound, product.Slug)
	}
	s.products[product.Slug] = *product
	return nil
}

func (s *Store) Delete(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[slug]; !exists {
		return fmt.Errorf("%w: %s", rentcatalog.ErrProductNotFound, slug)
	}
	delete(s.products, slug)
	return nil
}
