package rentcatalog

import (
	"io"
	"path/filepath"
	"strings"
)

// Frontmatter holds the structured fields of a product record. Field order
// matters for serialization: documents round-trip with fields in this order.
type Frontmatter struct {
	Name         string  `yaml:"name" json:"name"`
	Description  string  `yaml:"description" json:"description"`
	Category     string  `yaml:"category" json:"category"`
	DailyPrice   float64 `yaml:"dailyPrice" json:"dailyPrice"`
	WeekendPrice float64 `yaml:"weekendPrice" json:"weekendPrice"`
	WeeklyPrice  float64 `yaml:"weeklyPrice" json:"weeklyPrice"`
	Deposit      float64 `yaml:"deposit" json:"deposit"`
}

// Product is a full product record: the slug it is stored under, its
// structured fields, and the free-form body text. The slug is assigned at
// creation time and never changes, even when Name does.
type Product struct {
	Slug        string      `json:"slug"`
	Frontmatter Frontmatter `json:"frontmatter"`
	Body        string      `json:"content"`
}

// ListEntry is one row of the editor listing. Corrupt entries (documents
// present on disk but unreadable or unparsable) are reported with Corrupt
// set and a placeholder name rather than omitted, so operators can see
// them.
type ListEntry struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Corrupt bool   `json:"corrupt,omitempty"`
}

// CorruptEntryName is the placeholder name reported for unparsable records.
const CorruptEntryName = "Error Reading Product"

// CatalogEntry is one row of the public catalog listing: the join of a
// product's structured fields with its image URLs. A product with zero
// images is a valid entry with an empty ImageURLs slice.
type CatalogEntry struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	DailyPrice  float64  `json:"dailyPrice"`
	ImageURLs   []string `json:"imageUrls"`
}

// DeleteReport describes the outcome of a best-effort product deletion.
type DeleteReport struct {
	MetadataDeleted bool `json:"metadataDeleted"`
	ImagesDeleted   bool `json:"imagesDeleted"`
}

// ImageUpload is a single file in an upload batch. Filename is the original
// upload name and doubles as both identity and ordering key within the set.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// acceptedImageExts is the fixed set of extensions the image stores accept.
var acceptedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// IsAcceptedImage reports whether the filename carries an accepted image
// extension. The check is case-insensitive.
func IsAcceptedImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := acceptedImageExts[ext]
	return ok
}
