package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"github.com/rentgear/catalog/pkg/rentcatalog"
	"github.com/rentgear/catalog/pkg/rentcatalog/api"
	"github.com/rentgear/catalog/pkg/rentcatalog/config"
)

func main() {
	var (
		port        = pflag.String("port", "", "server port (overrides PORT)")
		environment = pflag.String("environment", "", "runtime environment: development or production (overrides ENVIRONMENT)")
		productsDir = pflag.String("products-dir", "", "directory of product documents (overrides PRODUCTS_DIR)")
		imagesDir   = pflag.String("images-dir", "", "directory of product image sets (overrides IMAGES_DIR)")
	)
	pflag.Parse()

	cfg, err := config.Load(
		config.WithEnv(),
		withFlags(*port, *environment, *productsDir, *imagesDir),
	)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	svc, err := cfg.BuildService()
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: routes(svc, cfg),
	}

	go func() {
		slog.Info("Catalog server starting",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"editing_enabled", svc.EditingEnabled(),
			"metadata_backend", cfg.MetadataBackend,
			"image_backend", cfg.ImageBackend)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

func routes(svc rentcatalog.Service, cfg *config.ServerConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(api.RequestID)
	r.Use(api.RequestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/catalog", api.NewCatalogHandler(svc).Routes())

		// The whole editor surface only exists in development-like mode.
		r.Route("/editor", func(r chi.Router) {
			r.Use(api.RequireEditing(svc))
			r.Mount("/products", api.NewProductsHandler(svc).Routes())
		})
	})

	// With the filesystem image backend the public image URLs resolve to
	// a static file server over the image root.
	if cfg.ImageBackend == "fs" && cfg.ImageCDNBaseURL == "" {
		fileServer := http.StripPrefix(cfg.PublicImagePrefix, http.FileServer(http.Dir(cfg.ImagesDir)))
		r.Get(cfg.PublicImagePrefix+"/*", fileServer.ServeHTTP)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}

// withFlags applies non-empty command-line overrides on top of the
// environment configuration.
func withFlags(port, environment, productsDir, imagesDir string) config.Option {
	return func(c *config.ServerConfig) error {
		if port != "" {
			c.Port = port
		}
		if environment != "" {
			c.Environment = environment
		}
		if productsDir != "" {
			c.ProductsDir = productsDir
		}
		if imagesDir != "" {
			c.ImagesDir = imagesDir
		}
		return nil
	}
}
