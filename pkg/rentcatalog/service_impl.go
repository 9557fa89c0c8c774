package rentcatalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/rentgear/catalog/pkg/rentcatalog/slug"
	"github.com/rentgear/catalog/pkg/rentcatalog/urlstrategy"
)

// service implements the Service interface
type service struct {
	metadata       MetadataStore
	images         ImageStore
	urls           urlstrategy.Strategy
	eventSink      EventSink
	validate       *validator.Validate
	editingEnabled bool
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithMetadataStore sets the metadata store for the service
func WithMetadataStore(store MetadataStore) Option {
	return func(s *service) {
		s.metadata = store
	}
}

// WithImageStore sets the image store for the service
func WithImageStore(store ImageStore) Option {
	return func(s *service) {
		s.images = store
	}
}

// WithURLStrategy sets the strategy used to build public image URLs
func WithURLStrategy(strategy urlstrategy.Strategy) Option {
	return func(s *service) {
		s.urls = strategy
	}
}

// WithEventSink sets the event sink for the service
func WithEventSink(sink EventSink) Option {
	return func(s *service) {
		s.eventSink = sink
	}
}

// WithEditingEnabled marks this deployment as development-like, permitting
// mutating operations at the HTTP boundary. The flag is explicit
// construction-time configuration, not ambient environment state read
// inside each operation.
func WithEditingEnabled(enabled bool) Option {
	return func(s *service) {
		s.editingEnabled = enabled
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		validate: validator.New(),
	}

	for _, option := range options {
		option(s)
	}

	if s.metadata == nil {
		return nil, fmt.Errorf("metadata store is required")
	}
	if s.images == nil {
		return nil, fmt.Errorf("image store is required")
	}
	if s.urls == nil {
		s.urls = urlstrategy.NewStaticPath("")
	}
	if s.eventSink == nil {
		s.eventSink = NewNoopEventSink()
	}

	return s, nil
}

func (s *service) EditingEnabled() bool {
	return s.editingEnabled
}

// Product operations

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	slugValue := slug.Make(req.Name)
	if slugValue == "" {
		return nil, fmt.Errorf("%w: %q", ErrEmptySlug, req.Name)
	}

	product := &Product{
		Slug:        slugValue,
		Frontmatter: req.frontmatter(),
		Body:        req.Body,
	}

	if err := s.metadata.Create(ctx, product); err != nil {
		if errors.Is(err, ErrSlugExists) {
			return nil, err
		}
		return nil, &ProductError{Slug: slugValue, Op: "create", Err: err}
	}

	// Eagerly create the empty image set so later uploads never hit a
	// missing-directory edge case. The metadata record is already
	// committed; a failure here leaves a dangling record, which readers
	// tolerate.
	if err := s.images.Ensure(ctx, slugValue); err != nil {
		slog.WarnContext(ctx, "failed to create image set for new product", "slug", slugValue, "error", err)
	}

	s.fireEvent(ctx, "product created", func(sink EventSink) error {
		return sink.ProductCreated(ctx, product)
	})

	return product, nil
}

func (s *service) GetProduct(ctx context.Context, slugValue string) (*Product, error) {
	product, err := s.metadata.Get(ctx, slugValue)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, &ProductError{Slug: slugValue, Op: "get", Err: err}
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, slugValue string, req UpdateProductRequest) (*Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	// The slug stays fixed even when the name changes: stable URLs win
	// over name/slug consistency.
	product := &Product{
		Slug:        slugValue,
		Frontmatter: req.frontmatter(),
		Body:        *req.Body,
	}

	if err := s.metadata.Update(ctx, product); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		return nil, &ProductError{Slug: slugValue, Op: "update", Err: err}
	}

	s.fireEvent(ctx, "product updated", func(sink EventSink) error {
		return sink.ProductUpdated(ctx, product)
	})

	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, slugValue string) (DeleteReport, error) {
	var report DeleteReport

	// Both deletions are attempted regardless of the other's outcome;
	// neither store blocks the other.
	metaErr := s.metadata.Delete(ctx, slugValue)
	if metaErr == nil {
		report.MetadataDeleted = true
	}

	existed, imgErr := s.images.DeleteAll(ctx, slugValue)
	report.ImagesDeleted = imgErr == nil && existed

	if metaErr != nil && !errors.Is(metaErr, ErrProductNotFound) {
		return report, &ProductError{Slug: slugValue, Op: "delete", Err: metaErr}
	}
	if imgErr != nil {
		return report, &ProductError{Slug: slugValue, Op: "delete images", Err: imgErr}
	}

	if !report.MetadataDeleted && !report.ImagesDeleted {
		return report, fmt.Errorf("%w: %s", ErrProductNotFound, slugValue)
	}

	s.fireEvent(ctx, "product deleted", func(sink EventSink) error {
		return sink.ProductDeleted(ctx, slugValue, report)
	})

	return report, nil
}

func (s *service) ListProducts(ctx context.Context) ([]ListEntry, error) {
	entries, err := s.metadata.List(ctx)
	if err != nil {
		return nil, &ProductError{Op: "list", Err: err}
	}
	return entries, nil
}

// Catalog reader

func (s *service) ListCatalog(ctx context.Context) ([]CatalogEntry, error) {
	entries, err := s.metadata.List(ctx)
	if err != nil {
		return nil, &ProductError{Op: "list catalog", Err: err}
	}

	catalog := make([]CatalogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Corrupt {
			continue
		}

		product, err := s.metadata.Get(ctx, entry.Slug)
		if err != nil {
			// The record disappeared or broke between List and Get; the
			// public catalog silently skips it.
			slog.WarnContext(ctx, "skipping unreadable product in catalog", "slug", entry.Slug, "error", err)
			continue
		}

		fm := product.Frontmatter
		if fm.Name == "" || fm.Description == "" || fm.Category == "" {
			continue
		}

		urls, err := s.imageURLs(ctx, entry.Slug)
		if err != nil {
			// An unreadable image set degrades to an empty one; the entry
			// is still listed.
			slog.WarnContext(ctx, "failed to list images for catalog entry", "slug", entry.Slug, "error", err)
			urls = []string{}
		}

		catalog = append(catalog, CatalogEntry{
			Slug:        product.Slug,
			Name:        fm.Name,
			Description: fm.Description,
			Category:    fm.Category,
			DailyPrice:  fm.DailyPrice,
			ImageURLs:   urls,
		})
	}

	return catalog, nil
}

// Image operations

func (s *service) ListImages(ctx context.Context, slugValue string) ([]string, error) {
	urls, err := s.imageURLs(ctx, slugValue)
	if err != nil {
		return nil, &ProductError{Slug: slugValue, Op: "list images", Err: err}
	}
	return urls, nil
}

func (s *service) UploadImages(ctx context.Context, slugValue string, files []ImageUpload) ([]string, error) {
	accepted, err := s.images.Put(ctx, slugValue, files)
	if err != nil {
		if errors.Is(err, ErrNoImagesAccepted) {
			return nil, err
		}
		return nil, &ProductError{Slug: slugValue, Op: "upload images", Err: err}
	}

	urls := make([]string, 0, len(accepted))
	for _, filename := range accepted {
		url, err := s.urls.ImageURL(ctx, slugValue, filename)
		if err != nil {
			return nil, &ProductError{Slug: slugValue, Op: "upload images", Err: err}
		}
		urls = append(urls, url)
	}

	s.fireEvent(ctx, "images uploaded", func(sink EventSink) error {
		return sink.ImagesUploaded(ctx, slugValue, accepted)
	})

	return urls, nil
}

func (s *service) DeleteImage(ctx context.Context, slugValue string, filename string) error {
	if err := s.images.Delete(ctx, slugValue, filename); err != nil {
		if errors.Is(err, ErrImageNotFound) {
			return err
		}
		return &ProductError{Slug: slugValue, Op: "delete image", Err: err}
	}

	s.fireEvent(ctx, "image deleted", func(sink EventSink) error {
		return sink.ImageDeleted(ctx, slugValue, filename)
	})

	return nil
}

func (s *service) imageURLs(ctx context.Context, slugValue string) ([]string, error) {
	filenames, err := s.images.List(ctx, slugValue)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(filenames))
	for _, filename := range filenames {
		url, err := s.urls.ImageURL(ctx, slugValue, filename)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *service) fireEvent(ctx context.Context, name string, fire func(EventSink) error) {
	if s.eventSink == nil {
		return
	}
	if err := fire(s.eventSink); err != nil {
		slog.WarnContext(ctx, "event sink failed", "event", name, "error", err)
	}
}
