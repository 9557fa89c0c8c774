package rentcatalog

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrProductNotFound indicates no product exists for the given slug
	ErrProductNotFound = errors.New("product not found")

	// ErrImageNotFound indicates the named image file does not exist
	ErrImageNotFound = errors.New("image not found")

	// ErrSlugExists indicates the derived slug is already in use
	ErrSlugExists = errors.New("product with this slug already exists")

	// ErrInvalidProduct indicates missing or malformed required fields
	ErrInvalidProduct = errors.New("invalid product")

	// ErrEmptySlug indicates the name reduced to an empty identifier
	ErrEmptySlug = errors.New("name produces an empty slug")

	// ErrNoImagesAccepted indicates an upload batch contained no acceptable files
	ErrNoImagesAccepted = errors.New("no valid image files were provided")
)

// ProductError represents an error related to a product operation
type ProductError struct {
	Slug string
	Op   string
	Err  error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("product operation %s failed for slug %q: %v", e.Op, e.Slug, e.Err)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}

// StorageError represents an unexpected failure in a backing store. It is
// the 500-class error: surfaced to the caller, logged, never retried
// internally.
type StorageError struct {
	Store string
	Key   string
	Op    string
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %q on store %s: %v", e.Op, e.Key, e.Store, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
