package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/rentgear/catalog/pkg/rentcatalog"
)

// UploadFieldName is the fixed multipart field carrying image files.
const UploadFieldName = "images"

// maxUploadMemory bounds the in-memory portion of a multipart parse;
// larger files spill to temp files.
const maxUploadMemory = 32 << 20

// ImagesHandler exposes the per-slug image set endpoints. It is mounted
// under /{slug}/images by the products handler.
type ImagesHandler struct {
	service rentcatalog.Service
}

func NewImagesHandler(service rentcatalog.Service) *ImagesHandler {
	return &ImagesHandler{service: service}
}

// Routes returns the router for the image endpoints
func (h *ImagesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Upload)
	r.Delete("/", h.Delete)
	return r
}

// List returns the public URLs of the slug's images, lexicographically
// ordered. A slug with no image set yields an empty array, not an error.
func (h *ImagesHandler) List(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	urls, err := h.service.ListImages(r.Context(), slug)
	if err != nil {
		slog.Error("Failed to list images", "slug", slug, "error", err)
		writeErrorMessage(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve images for %s", slug))
		return
	}

	render.JSON(w, r, urls)
}

// Upload accepts a multipart batch under the fixed field name. Files with
// rejected extensions are skipped; the call fails only when nothing in
// the batch was accepted.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeErrorMessage(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[UploadFieldName]
	if len(headers) == 0 {
		writeErrorMessage(w, r, http.StatusBadRequest, "No files provided")
		return
	}

	files := make([]rentcatalog.ImageUpload, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			slog.Error("Failed to open uploaded file", "slug", slug, "filename", header.Filename, "error", err)
			writeErrorMessage(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to upload images for %s", slug))
			return
		}
		defer f.Close()
		files = append(files, rentcatalog.ImageUpload{Filename: header.Filename, Reader: f})
	}

	urls, err := h.service.UploadImages(r.Context(), slug, files)
	if err != nil {
		if errors.Is(err, rentcatalog.ErrNoImagesAccepted) {
			writeErrorMessage(w, r, http.StatusBadRequest, "No valid image files were uploaded.")
			return
		}
		slog.Error("Failed to upload images", "slug", slug, "error", err)
		writeErrorMessage(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to upload images for %s", slug))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, map[string]any{
		"message":           "Images uploaded successfully",
		"uploadedFilePaths": urls,
	})
}

// Delete removes one image by filename, passed as a query parameter.
func (h *ImagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeErrorMessage(w, r, http.StatusBadRequest, "Filename query parameter is required")
		return
	}

	if err := h.service.DeleteImage(r.Context(), slug, filename); err != nil {
		if errors.Is(err, rentcatalog.ErrImageNotFound) {
			writeErrorMessage(w, r, http.StatusNotFound, fmt.Sprintf("Image '%s' not found for product '%s'", filename, slug))
			return
		}
		slog.Error("Failed to delete image", "slug", slug, "filename", filename, "error", err)
		writeErrorMessage(w, r, http.StatusInternalServerError, fmt.Sprintf("Failed to delete image '%s'", filename))
		return
	}

	render.JSON(w, r, map[string]string{
		"message": fmt.Sprintf("Image '%s' deleted successfully from product '%s'", filename, slug),
	})
}
