package rentcatalog

import (
	"context"
	"log/slog"
)

// EventSink receives notifications after store mutations succeed. Sink
// failures are logged and never fail the originating operation.
type EventSink interface {
	ProductCreated(ctx context.Context, product *Product) error
	ProductUpdated(ctx context.Context, product *Product) error
	ProductDeleted(ctx context.Context, slug string, report DeleteReport) error
	ImagesUploaded(ctx context.Context, slug string, filenames []string) error
	ImageDeleted(ctx context.Context, slug string, filename string) error
}

// NoopEventSink discards all events.
type NoopEventSink struct{}

func NewNoopEventSink() *NoopEventSink { return &NoopEventSink{} }

func (NoopEventSink) ProductCreated(context.Context, *Product) error            { return nil }
func (NoopEventSink) ProductUpdated(context.Context, *Product) error            { return nil }
func (NoopEventSink) ProductDeleted(context.Context, string, DeleteReport) error { return nil }
func (NoopEventSink) ImagesUploaded(context.Context, string, []string) error    { return nil }
func (NoopEventSink) ImageDeleted(context.Context, string, string) error        { return nil }

// LogEventSink writes one structured log line per event.
type LogEventSink struct {
	logger *slog.Logger
}

// NewLogEventSink creates a sink over logger; nil uses slog.Default.
func NewLogEventSink(logger *slog.Logger) *LogEventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEventSink{logger: logger}
}

func (s *LogEventSink) ProductCreated(ctx context.Context, product *Product) error {
	s.logger.InfoContext(ctx, "product created", "slug", product.Slug, "name", product.Frontmatter.Name)
	return nil
}

func (s *LogEventSink) ProductUpdated(ctx context.Context, product *Product) error {
	s.logger.InfoContext(ctx, "product updated", "slug", product.Slug, "name", product.Frontmatter.Name)
	return nil
}

func (s *LogEventSink) ProductDeleted(ctx context.Context, slug string, report DeleteReport) error {
	s.logger.InfoContext(ctx, "product deleted", "slug", slug,
		"metadata_deleted", report.MetadataDeleted, "images_deleted", report.ImagesDeleted)
	return nil
}

func (s *LogEventSink) ImagesUploaded(ctx context.Context, slug string, filenames []string) error {
	s.logger.InfoContext(ctx, "images uploaded", "slug", slug, "count", len(filenames))
	return nil
}

func (s *LogEventSink) ImageDeleted(ctx context.Context, slug string, filename string) error {
	s.logger.InfoContext(ctx, "image deleted", "slug", slug, "filename", filename)
	return nil
}
