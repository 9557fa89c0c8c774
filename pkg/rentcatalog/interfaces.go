package rentcatalog

import "context"

// MetadataStore persists product records, one per slug. Implementations
// must make Create atomic: a create for a slug that already exists fails
// with ErrSlugExists without a separate existence check racing the write.
type MetadataStore interface {
	// List enumerates all persisted records. Unreadable or unparsable
	// entries are reported as corrupt placeholders; List itself only
	// fails when the collection cannot be enumerated at all.
	List(ctx context.Context) ([]ListEntry, error)

	// Get reads a record. Returns ErrProductNotFound if absent.
	Get(ctx context.Context, slug string) (*Product, error)

	// Create persists a new record under product.Slug. Returns
	// ErrSlugExists if a record already exists for the slug.
	Create(ctx context.Context, product *Product) error

	// Update overwrites the entire record. Returns ErrProductNotFound if
	// the record does not exist.
	Update(ctx context.Context, product *Product) error

	// Delete removes the record. Returns ErrProductNotFound if the record
	// did not exist before the call.
	Delete(ctx context.Context, slug string) error
}

// ImageStore manages the image set for each slug. The set is only weakly
// tied to a product record: orphaned sets and products without a set are
// both valid states.
type ImageStore interface {
	// List returns the accepted image filenames for the slug, sorted
	// lexicographically ascending. A slug with no image set yields an
	// empty slice, not an error.
	List(ctx context.Context, slug string) ([]string, error)

	// Put writes a batch of files into the slug's set, creating the set
	// if absent. Files with unaccepted extensions are skipped silently;
	// accepted files overwrite same-named existing files. Returns the
	// accepted filenames, or ErrNoImagesAccepted when the whole batch
	// was rejected or empty.
	Put(ctx context.Context, slug string, files []ImageUpload) ([]string, error)

	// Delete removes one file from the set. Returns ErrImageNotFound if
	// the file does not exist.
	Delete(ctx context.Context, slug string, filename string) error

	// DeleteAll removes the entire set and reports whether it existed
	// before the call. Absence is not an error.
	DeleteAll(ctx context.Context, slug string) (bool, error)

	// Ensure creates an empty set for the slug if one does not exist.
	Ensure(ctx context.Context, slug string) error
}
