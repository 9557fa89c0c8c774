package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/rentgear/catalog/pkg/rentcatalog"
)

// CatalogHandler exposes the public, read-only catalog listing. Unlike
// the editor listing it silently excludes incomplete or corrupt records.
type CatalogHandler struct {
	service rentcatalog.Service
}

func NewCatalogHandler(service rentcatalog.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Routes returns the router for the catalog endpoints
func (h *CatalogHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// List returns every complete product joined with its image URLs.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListCatalog(r.Context())
	if err != nil {
		slog.Error("Failed to list catalog", "error", err)
		writeErrorMessage(w, r, http.StatusInternalServerError, "Failed to retrieve catalog")
		return
	}
	render.JSON(w, r, entries)
}
