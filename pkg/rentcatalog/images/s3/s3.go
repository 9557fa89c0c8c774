// Package s3 is an S3-compatible image backend. Image sets live under one
// key prefix per slug ({prefix}{slug}/{filename}); there are no real
// directories, so Ensure is a no-op and an "empty set" is simply the
// absence of keys.
package s3

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/rentgear/catalog/pkg/rentcatalog"
)

// Config options for the S3 image store
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (MinIO needs this)
	KeyPrefix       string // Optional key prefix in front of {slug}/{filename}

	// MinIO/S3-compatible service options
	CreateBucketIfNotExist bool // Create bucket if it doesn't exist
}

// Store is an S3-compatible implementation of rentcatalog.ImageStore
type Store struct {
	client *s3.Client
	bucket string
	prefix string
	config Config
}

// New creates a new S3-compatible image store
func New(config Config) (*Store, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	prefix := config.KeyPrefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	store := &Store{
		client: client,
		bucket: config.Bucket,
		prefix: prefix,
		config: config,
	}

	if config.CreateBucketIfNotExist {
		if err := store.createBucketIfNotExists(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return store, nil
}

func (s *Store) setPrefix(slug string) string {
	return s.prefix + slug + "/"
}

func (s *Store) key(slug, filename string) string {
	return s.setPrefix(slug) + filename
}

// createBucketIfNotExists creates the bucket if it doesn't exist
func (s *Store) createBucketIfNotExists(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) &&
		!strings.Contains(err.Error(), "BadRequest") &&
		!strings.Contains(err.Error(), "NoSuchBucket") {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	createInput := &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	}
	if s.config.Region != "us-east-1" {
		createInput.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.config.Region),
		}
	}

	_, err = s.client.CreateBucket(ctx, createInput)
	if err != nil {
		if strings.Contains(err.Error(), "BucketAlreadyExists") ||
			strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// List enumerates the accepted image filenames under the slug's prefix,
// lexicographic ascending. A slug with no keys yields an empty slice.
func (s *Store) List(ctx context.Context, slug string) ([]string, error) {
	prefix := s.setPrefix(slug)
	filenames := []string{}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, &rentcatalog.StorageError{Store: "images/s3", Key: slug, Op: "list", Err: err}
		}
		for _, object := range page.Contents {
			filename := strings.TrimPrefix(aws.ToString(object.Key), prefix)
			// Skip "sub-directory" keys and anything without an accepted
			// extension.
			if filename == "" || strings.Contains(filename, "/") || !rentcatalog.IsAcceptedImage(filename) {
				continue
			}
			filenames = append(filenames, filename)
		}
	}

	sort.Strings(filenames)
	return filenames, nil
}

// Put uploads the batch under the slug's prefix. Same semantics as the
// filesystem store: silent skip of rejected extensions, last write wins,
// ErrNoImagesAccepted when nothing in the batch qualified.
func (s *Store) Put(ctx context.Context, slug string, files []rentcatalog.ImageUpload) ([]string, error) {
	uploader := manager.NewUploader(s.client)

	accepted := make([]string, 0, len(files))
	for _, file := range files {
		filename := path.Base(file.Filename)
		if !rentcatalog.IsAcceptedImage(filename) {
			continue
		}

		_, err := uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.key(slug, filename)),
			Body:   file.Reader,
		})
		if err != nil {
			return accepted, &rentcatalog.StorageError{Store: "images/s3", Key: s.key(slug, filename), Op: "put", Err: err}
		}
		accepted = append(accepted, filename)
	}

	if len(accepted) == 0 {
		return nil, rentcatalog.ErrNoImagesAccepted
	}
	return accepted, nil
}

// Delete removes one object. S3 deletes are idempotent, so existence is
// checked first to honor the not-found contract.
func (s *Store) Delete(ctx context.Context, slug string, filename string) error {
	key := s.key(slug, path.Base(filename))

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s/%s", rentcatalog.ErrImageNotFound, slug, filename)
		}
		return &rentcatalog.StorageError{Store: "images/s3", Key: key, Op: "delete", Err: err}
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &rentcatalog.StorageError{Store: "images/s3", Key: key, Op: "delete", Err: err}
	}
	return nil
}

// DeleteAll removes every key under the slug's prefix in batches and
// reports whether any existed.
func (s *Store) DeleteAll(ctx context.Context, slug string) (bool, error) {
	prefix := s.setPrefix(slug)
	existed := false

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return existed, &rentcatalog.StorageError{Store: "images/s3", Key: slug, Op: "delete all", Err: err}
		}
		if len(page.Contents) == 0 {
			continue
		}
		existed = true

		objects := make([]types.ObjectIdentifier, 0, len(page.Contents))
		for _, object := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: object.Key})
		}

		_, err = s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return existed, &rentcatalog.StorageError{Store: "images/s3", Key: slug, Op: "delete all", Err: err}
		}
	}

	return existed, nil
}

// Ensure is a no-op: object stores have no empty directories to create.
func (s *Store) Ensure(ctx context.Context, slug string) error {
	return nil
}

func isNotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey"
	}
	return false
}
