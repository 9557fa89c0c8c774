// Package urlstrategy decides how stored image files are exposed as
// public URLs. The storage layer deals in slugs and filenames only; a
// Strategy maps that pair to whatever URL shape the deployment serves
// images from.
package urlstrategy

import (
	"context"
	"fmt"
	"strings"
)

// Strategy generates the public URL for one image file.
type Strategy interface {
	ImageURL(ctx context.Context, slug, filename string) (string, error)
}

// StaticPath serves images from a fixed URL prefix, matching a static
// file server mounted over the image root: {prefix}/{slug}/{filename}.
type StaticPath struct {
	prefix string
}

// NewStaticPath creates a static-path strategy. An empty prefix defaults
// to "/images/products".
func NewStaticPath(prefix string) *StaticPath {
	if prefix == "" {
		prefix = "/images/products"
	}
	return &StaticPath{prefix: strings.TrimSuffix(prefix, "/")}
}

func (s *StaticPath) ImageURL(ctx context.Context, slug, filename string) (string, error) {
	if slug == "" || filename == "" {
		return "", fmt.Errorf("slug and filename are required")
	}
	return fmt.Sprintf("%s/%s/%s", s.prefix, slug, filename), nil
}

// CDN prefixes image paths with an absolute base URL, for deployments
// that front the image store with a CDN or object-store website endpoint.
type CDN struct {
	baseURL string
}

// NewCDN creates a CDN strategy rooted at baseURL.
func NewCDN(baseURL string) *CDN {
	return &CDN{baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *CDN) ImageURL(ctx context.Context, slug, filename string) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("CDN base URL not configured")
	}
	if slug == "" || filename == "" {
		return "", fmt.Errorf("slug and filename are required")
	}
	return fmt.Sprintf("%s/%s/%s", s.baseURL, slug, filename), nil
}
