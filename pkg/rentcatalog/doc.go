// Package rentcatalog is a file-backed content store for rental-equipment
// listings. Each product is identified by a slug derived from its display
// name and is persisted as a frontmatter document (structured fields plus
// free-form body) alongside an independent set of image files keyed by the
// same slug.
//
// The package exposes a Service interface composed from two pluggable
// stores: a MetadataStore for the product documents and an ImageStore for
// the image sets. Backends for both live in sub-packages (filesystem,
// in-memory, bbolt for metadata, S3-compatible for images). The two stores
// are deliberately loosely coupled: deleting a product is a best-effort
// operation across both, and readers tolerate orphaned image sets as well
// as products without an image directory.
package rentcatalog
