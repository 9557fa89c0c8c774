package rentcatalog

import "context"

// Service is the product-level interface composing the metadata and image
// stores behind one API. It owns the cross-store consistency policy:
// eager image-set creation on product create, best-effort dual deletion,
// and the catalog join.
type Service interface {
	// Product operations
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, slug string) (*Product, error)
	UpdateProduct(ctx context.Context, slug string, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, slug string) (DeleteReport, error)
	ListProducts(ctx context.Context) ([]ListEntry, error)

	// Catalog reader (public, read-only)
	ListCatalog(ctx context.Context) ([]CatalogEntry, error)

	// Image operations; returned strings are public URLs
	ListImages(ctx context.Context, slug string) ([]string, error)
	UploadImages(ctx context.Context, slug string, files []ImageUpload) ([]string, error)
	DeleteImage(ctx context.Context, slug string, filename string) error

	// EditingEnabled reports whether mutating operations are permitted in
	// this deployment. Callers at the HTTP boundary must reject mutations
	// when it is false.
	EditingEnabled() bool
}
