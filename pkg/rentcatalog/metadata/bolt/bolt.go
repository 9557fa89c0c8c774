// Package bolt is a bbolt-backed metadata backend. It keeps the same
// frontmatter document format as the filesystem store but inside a single
// embedded database file, so metadata mutations are transactional. Image
// binaries stay outside; the repository-level delete report is unchanged.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"sort"

	bbolt "go.etcd.io/bbolt"

	"github.com/rentgear/catalog/pkg/rentcatalog"
	"github.com/rentgear/catalog/pkg/rentcatalog/frontmatter"
)

var productsBucket = []byte("products")

// Store is a bbolt implementation of rentcatalog.MetadataStore
type Store struct {
	db *bbolt.DB
}

// Config options for the bbolt metadata store
type Config struct {
	Path string // Database file path
}

// New opens (creating if necessary) the database file and its bucket.
func New(config Config) (*Store, error) {
	if config.Path == "" {
		return nil, errors.New("database path is required")
	}

	db, err := bbolt.Open(config.Path, 0644, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(productsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) List(ctx context.Context) ([]rentcatalog.ListEntry, error) {
	var entries []rentcatalog.ListEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(productsBucket).ForEach(func(k, v []byte) error {
			entry := rentcatalog.ListEntry{Slug: string(k)}
			fm, _, err := frontmatter.Parse(v)
			if err != nil {
				entry.Name = rentcatalog.CorruptEntryName
				entry.Corrupt = true
			} else {
				entry.Name = fm.Name
				if entry.Name == "" {
					entry.Name = "Unnamed Product"
				}
			}
			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, &rentcatalog.StorageError{Store: "metadata/bolt", Op: "list", Err: err}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Slug < entries[j].Slug })
	if entries == nil {
		entries = []rentcatalog.ListEntry{}
	}
	return entries, nil
}

func (s *Store) Get(ctx context.Context, slug string) (*rentcatalog.Product, error) {
	var product *rentcatalog.Product

	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(productsBucket).Get([]byte(slug))
		if data == nil {
			return fmt.Errorf("%w: %s", rentcatalog.ErrProductNotFound, slug)
		}
		fm, body, err := frontmatter.Parse(data)
		if err != nil {
			return &rentcatalog.StorageError{Store: "metadata/bolt", Key: slug, Op: "parse", Err: err}
		}
		product = &rentcatalog.Product{Slug: slug, Frontmatter: fm, Body: body}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Create inserts the record inside one write transaction, so the
// existence check and the insert cannot race another create.
func (s *Store) Create(ctx context.Context, product *rentcatalog.Product) error {
	data, err := frontmatter.Marshal(product.Frontmatter, product.Body)
	if err != nil {
		return &rentcatalog.StorageError{Store: "metadata/bolt", Key: product.Slug, Op: "marshal", Err: err}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(productsBucket)
		if bucket.Get([]byte(product.Slug)) != nil {
			return fmt.Errorf("%w: %s", rentcatalog.ErrSlugExists, product.Slug)
		}
		return bucket.Put([]byte(product.Slug), data)
	})
}

func (s *Store) Update(ctx context.Context, product *rentcatalog.Product) error {
	data, err := frontmatter.Marshal(product.Frontmatter, product.Body)
	if err != nil {
		return &rentcatalog.StorageError{Store: "metadata/bolt", Key: product.Slug, Op: "marshal", Err: err}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(productsBucket)
		if bucket.Get([]byte(product.Slug)) == nil {
			return fmt.Errorf("%w: %s", rentcatalog.ErrProductNotFound, product.Slug)
		}
		return bucket.Put([]byte(product.Slug), data)
	})
}

func (s *Store) Delete(ctx context.Context, slug string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(productsBucket)
		if bucket.Get([]byte(slug)) == nil {
			return fmt.Errorf("%w: %s", rentcatalog.ErrProductNotFound, slug)
		}
		return bucket.Delete([]byte(slug))
	})
}
