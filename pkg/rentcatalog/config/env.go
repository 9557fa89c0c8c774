package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// envConfig mirrors ServerConfig as environment variables. Empty values
// leave the corresponding setting untouched.
type envConfig struct {
	Port        string `env:"PORT"`
	Environment string `env:"ENVIRONMENT"`

	MetadataBackend string `env:"METADATA_BACKEND"`
	ProductsDir     string `env:"PRODUCTS_DIR"`
	BoltPath        string `env:"BOLT_PATH"`

	ImageBackend      string `env:"IMAGE_BACKEND"`
	ImagesDir         string `env:"IMAGES_DIR"`
	PublicImagePrefix string `env:"PUBLIC_IMAGE_PREFIX"`
	ImageCDNBaseURL   string `env:"IMAGE_CDN_BASE_URL"`

	S3Region          string `env:"S3_REGION"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	S3KeyPrefix       string `env:"S3_KEY_PREFIX"`
	S3CreateBucket    bool   `env:"S3_CREATE_BUCKET" env-default:"false"`
}

// WithEnv applies environment variable overrides:
//
//	PORT, ENVIRONMENT         - server port and runtime environment
//	METADATA_BACKEND          - "fs" (default), "memory", "bolt"
//	PRODUCTS_DIR, BOLT_PATH   - metadata backend locations
//	IMAGE_BACKEND             - "fs" (default), "memory", "s3"
//	IMAGES_DIR                - fs image root
//	PUBLIC_IMAGE_PREFIX       - URL prefix for served images
//	IMAGE_CDN_BASE_URL        - absolute base for image URLs (optional)
//	S3_*, AWS_*               - S3 image backend settings
func WithEnv() Option {
	return func(c *ServerConfig) error {
		var e envConfig
		if err := cleanenv.ReadEnv(&e); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}

		setString(&c.Port, e.Port)
		setString(&c.Environment, e.Environment)
		setString(&c.MetadataBackend, e.MetadataBackend)
		setString(&c.ProductsDir, e.ProductsDir)
		setString(&c.BoltPath, e.BoltPath)
		setString(&c.ImageBackend, e.ImageBackend)
		setString(&c.ImagesDir, e.ImagesDir)
		setString(&c.PublicImagePrefix, e.PublicImagePrefix)
		setString(&c.ImageCDNBaseURL, e.ImageCDNBaseURL)

		setString(&c.S3.Region, e.S3Region)
		setString(&c.S3.Bucket, e.S3Bucket)
		setString(&c.S3.AccessKeyID, e.S3AccessKeyID)
		setString(&c.S3.SecretAccessKey, e.S3SecretAccessKey)
		setString(&c.S3.Endpoint, e.S3Endpoint)
		setString(&c.S3.KeyPrefix, e.S3KeyPrefix)
		if e.S3UsePathStyle {
			c.S3.UsePathStyle = true
		}
		if e.S3CreateBucket {
			c.S3.CreateBucket = true
		}

		return nil
	}
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
