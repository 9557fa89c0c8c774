// Package config builds a rentcatalog.Service from declarative settings:
// library defaults, functional options, then environment overrides.
package config

import (
	"errors"
	"fmt"

	"github.com/rentgear/catalog/pkg/rentcatalog"
	metabolt "github.com/rentgear/catalog/pkg/rentcatalog/metadata/bolt"
	metafs "github.com/rentgear/catalog/pkg/rentcatalog/metadata/fs"
	metamemory "github.com/rentgear/catalog/pkg/rentcatalog/metadata/memory"
	imagefs "github.com/rentgear/catalog/pkg/rentcatalog/images/fs"
	imagememory "github.com/rentgear/catalog/pkg/rentcatalog/images/memory"
	images3 "github.com/rentgear/catalog/pkg/rentcatalog/images/s3"
	"github.com/rentgear/catalog/pkg/rentcatalog/urlstrategy"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top
// of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:              "8080",
		Environment:       "development",
		MetadataBackend:   "fs",
		ImageBackend:      "fs",
		ProductsDir:       "./content/products",
		ImagesDir:         "./public/images/products",
		PublicImagePrefix: "/images/products",
		BoltPath:          "./data/catalog.db",
		EnableEventLog:    true,
	}
}

// ServerConfig represents server configuration for the catalog service
type ServerConfig struct {
	Port        string
	Environment string // development, production

	// Metadata storage
	MetadataBackend string // "fs", "memory", "bolt"
	ProductsDir     string // fs backend: directory of {slug}.mdx documents
	BoltPath        string // bolt backend: database file

	// Image storage
	ImageBackend      string // "fs", "memory", "s3"
	ImagesDir         string // fs backend: directory of per-slug image sets
	PublicImagePrefix string // URL prefix images are served under
	ImageCDNBaseURL   string // when set, image URLs are absolute under this base
	S3                S3Config

	// Server options
	EnableEventLog bool
}

// S3Config carries the settings for the S3 image backend.
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	UsePathStyle    bool
	KeyPrefix       string
	CreateBucket    bool
}

// EditingEnabled reports whether this configuration permits mutating
// operations: only development-like deployments may edit the catalog.
func (c *ServerConfig) EditingEnabled() bool {
	return c.Environment == "development"
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	switch c.MetadataBackend {
	case "fs":
		if c.ProductsDir == "" {
			return errors.New("products directory is required for the fs metadata backend")
		}
	case "bolt":
		if c.BoltPath == "" {
			return errors.New("database path is required for the bolt metadata backend")
		}
	case "memory":
	default:
		return fmt.Errorf("metadata backend must be 'fs', 'memory' or 'bolt', got %q", c.MetadataBackend)
	}

	switch c.ImageBackend {
	case "fs":
		if c.ImagesDir == "" {
			return errors.New("images directory is required for the fs image backend")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return errors.New("bucket is required for the s3 image backend")
		}
	case "memory":
	default:
		return fmt.Errorf("image backend must be 'fs', 'memory' or 's3', got %q", c.ImageBackend)
	}

	return nil
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService() (rentcatalog.Service, error) {
	metadata, err := c.buildMetadataStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata store: %w", err)
	}

	images, err := c.buildImageStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build image store: %w", err)
	}

	options := []rentcatalog.Option{
		rentcatalog.WithMetadataStore(metadata),
		rentcatalog.WithImageStore(images),
		rentcatalog.WithURLStrategy(c.buildURLStrategy()),
		rentcatalog.WithEditingEnabled(c.EditingEnabled()),
	}
	if c.EnableEventLog {
		options = append(options, rentcatalog.WithEventSink(rentcatalog.NewLogEventSink(nil)))
	}

	return rentcatalog.New(options...)
}

func (c *ServerConfig) buildMetadataStore() (rentcatalog.MetadataStore, error) {
	switch c.MetadataBackend {
	case "fs":
		return metafs.New(metafs.Config{BaseDir: c.ProductsDir})
	case "memory":
		return metamemory.New(), nil
	case "bolt":
		return metabolt.New(metabolt.Config{Path: c.BoltPath})
	default:
		return nil, fmt.Errorf("unsupported metadata backend: %s", c.MetadataBackend)
	}
}

func (c *ServerConfig) buildImageStore() (rentcatalog.ImageStore, error) {
	switch c.ImageBackend {
	case "fs":
		return imagefs.New(imagefs.Config{BaseDir: c.ImagesDir})
	case "memory":
		return imagememory.New(), nil
	case "s3":
		return images3.New(images3.Config{
			Region:                 c.S3.Region,
			Bucket:                 c.S3.Bucket,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               c.S3.Endpoint,
			UsePathStyle:           c.S3.UsePathStyle,
			KeyPrefix:              c.S3.KeyPrefix,
			CreateBucketIfNotExist: c.S3.CreateBucket,
		})
	default:
		return nil, fmt.Errorf("unsupported image backend: %s", c.ImageBackend)
	}
}

func (c *ServerConfig) buildURLStrategy() urlstrategy.Strategy {
	if c.ImageCDNBaseURL != "" {
		return urlstrategy.NewCDN(c.ImageCDNBaseURL)
	}
	return urlstrategy.NewStaticPath(c.PublicImagePrefix)
}
