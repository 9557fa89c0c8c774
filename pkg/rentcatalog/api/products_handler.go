package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/rentgear/catalog/pkg/rentcatalog"
)

// ProductsHandler exposes the editor's product CRUD endpoints.
type ProductsHandler struct {
	service rentcatalog.Service
}

func NewProductsHandler(service rentcatalog.Service) *ProductsHandler {
	return &ProductsHandler{service: service}
}

// Routes returns the router for the products endpoints, with the image
// endpoints nested per slug.
func (h *ProductsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{slug}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Mount("/images", NewImagesHandler(h.service).Routes())
	})
	return r
}

// List returns every persisted record, corrupt placeholders included.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListProducts(r.Context())
	if err != nil {
		slog.Error("Failed to list products", "error", err)
		writeErrorMessage(w, r, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}
	render.JSON(w, r, entries)
}

// Create validates the request, derives the slug, and persists the new
// record. The image set is created eagerly by the service.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req rentcatalog.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, r, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	product, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, rentcatalog.ErrInvalidProduct), errors.Is(err, rentcatalog.ErrEmptySlug):
			writeErrorMessage(w, r, http.StatusBadRequest, "Missing required fields")
		case errors.Is(err, rentcatalog.ErrSlugExists):
			writeErrorMessage(w, r, http.StatusConflict, "Product with this name (slug) already exists")
		default:
			slog.Error("Failed to create product", "error", err)
			writeErrorMessage(w, r, http.StatusInternalServerError, "Failed to create product")
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]string{
		"message": "Product created successfully",
		"slug":    product.Slug,
	})
}

// Get returns one record's frontmatter, body and slug.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.service.GetProduct(r.Context(), slug)
	if err != nil {
		if errors.Is(err, rentcatalog.ErrProductNotFound) {
			writeErrorMessage(w, r, http.StatusNotFound, "Product not found")
			return
		}
		slog.Error("Failed to get product", "slug", slug, "error", err)
		writeErrorMessage(w, r, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	render.JSON(w, r, product)
}

// Update replaces the whole persisted unit. The slug stays fixed even
// when the submitted name would derive a different one.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	var req rentcatalog.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, r, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), slug, req)
	if err != nil {
		switch {
		case errors.Is(err, rentcatalog.ErrInvalidProduct):
			writeErrorMessage(w, r, http.StatusBadRequest, "Missing required fields for update")
		case errors.Is(err, rentcatalog.ErrProductNotFound):
			writeErrorMessage(w, r, http.StatusNotFound, "Product not found, cannot update.")
		default:
			slog.Error("Failed to update product", "slug", slug, "error", err)
			writeErrorMessage(w, r, http.StatusInternalServerError, "Failed to update product")
		}
		return
	}

	render.JSON(w, r, map[string]string{
		"message": "Product updated successfully",
		"slug":    product.Slug,
	})
}

// Delete removes metadata and images best-effort; 404 only when neither
// existed.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	report, err := h.service.DeleteProduct(r.Context(), slug)
	if err != nil {
		if errors.Is(err, rentcatalog.ErrProductNotFound) {
			writeErrorMessage(w, r, http.StatusNotFound, "Product (metadata and image directory) not found.")
			return
		}
		slog.Error("Failed to delete product", "slug", slug, "error", err)
		writeErrorMessage(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product '%s'", slug))
		return
	}

	render.JSON(w, r, map[string]string{
		"message": fmt.Sprintf("Product '%s' deleted successfully (metadata: %t, images: %t)",
			slug, report.MetadataDeleted, report.ImagesDeleted),
	})
}

func writeErrorMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": message})
}
