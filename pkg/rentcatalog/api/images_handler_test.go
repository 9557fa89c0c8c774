package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentgear/catalog/pkg/rentcatalog"
	"github.com/rentgear/catalog/pkg/rentcatalog/api"
)

func multipartUpload(t *testing.T, fieldName string, filenames ...string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range filenames {
		part, err := writer.CreateFormFile(fieldName, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func setupProduct(t *testing.T) (rentcatalog.Service, http.Handler) {
	t.Helper()
	svc := newTestService(t)
	router := api.NewProductsHandler(svc).Routes()
	rec := doJSON(t, router, http.MethodPost, "/", createPayload("Leaf Blower"))
	require.Equal(t, http.StatusCreated, rec.Code)
	return svc, router
}

func TestUploadImagesEndpoint(t *testing.T) {
	_, router := setupProduct(t)

	t.Run("accepted files become public urls", func(t *testing.T) {
		body, contentType := multipartUpload(t, api.UploadFieldName, "b.png", "a.jpg")
		req := httptest.NewRequest(http.MethodPost, "/leaf-blower/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		out := decodeBody(t, rec)
		assert.Equal(t, "Images uploaded successfully", out["message"])
		assert.ElementsMatch(t, []any{
			"/images/products/leaf-blower/a.jpg",
			"/images/products/leaf-blower/b.png",
		}, out["uploadedFilePaths"])
	})

	t.Run("rejected extensions are skipped", func(t *testing.T) {
		body, contentType := multipartUpload(t, api.UploadFieldName, "photo.png", "doc.pdf")
		req := httptest.NewRequest(http.MethodPost, "/leaf-blower/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, []any{"/images/products/leaf-blower/photo.png"}, decodeBody(t, rec)["uploadedFilePaths"])
	})

	t.Run("nothing accepted", func(t *testing.T) {
		body, contentType := multipartUpload(t, api.UploadFieldName, "doc.pdf")
		req := httptest.NewRequest(http.MethodPost, "/leaf-blower/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No valid image files were uploaded.", decodeBody(t, rec)["error"])
	})

	t.Run("no files in the batch", func(t *testing.T) {
		body, contentType := multipartUpload(t, api.UploadFieldName)
		req := httptest.NewRequest(http.MethodPost, "/leaf-blower/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No files provided", decodeBody(t, rec)["error"])
	})

	t.Run("wrong field name", func(t *testing.T) {
		body, contentType := multipartUpload(t, "files", "a.jpg")
		req := httptest.NewRequest(http.MethodPost, "/leaf-blower/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No files provided", decodeBody(t, rec)["error"])
	})
}

func TestListImagesEndpoint(t *testing.T) {
	_, router := setupProduct(t)

	t.Run("empty image set", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/leaf-blower/images", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("sorted urls", func(t *testing.T) {
		body, contentType := multipartUpload(t, api.UploadFieldName, "c.webp", "a.jpg")
		req := httptest.NewRequest(http.MethodPost, "/leaf-blower/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodGet, "/leaf-blower/images", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var urls []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &urls))
		assert.Equal(t, []string{
			"/images/products/leaf-blower/a.jpg",
			"/images/products/leaf-blower/c.webp",
		}, urls)
	})
}

func TestDeleteImageEndpoint(t *testing.T) {
	_, router := setupProduct(t)

	body, contentType := multipartUpload(t, api.UploadFieldName, "a.jpg")
	req := httptest.NewRequest(http.MethodPost, "/leaf-blower/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("missing filename parameter", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/leaf-blower/images", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Filename query parameter is required", decodeBody(t, rec)["error"])
	})

	t.Run("deleted", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/leaf-blower/images?filename=a.jpg", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Image 'a.jpg' deleted successfully from product 'leaf-blower'", decodeBody(t, rec)["message"])
	})

	t.Run("already gone", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/leaf-blower/images?filename=a.jpg", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Image 'a.jpg' not found for product 'leaf-blower'", decodeBody(t, rec)["error"])
	})
}
