package http

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ayush2735/claynest-web-craft/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxImageSize = 10 << 20

type ImageStore interface {
	Upload(ctx context.Context, originalName string, r io.Reader) (string, error)
	Open(ctx context.Context, name string) (*storage.Image, error)
}

type ImageHandler struct {
	images  ImageStore
	timeout time.Duration
	logger  *zap.Logger
}

func NewImageHandler(images ImageStore, timeout time.Duration, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{
		images:  images,
		timeout: timeout,
		logger:  logger,
	}
}

type UploadResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (h *ImageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	img, err := h.images.Open(ctx, chi.URLParam(r, "name"))
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	defer img.Close()

	w.Header().Set("Content-Type", img.ContentType)
	if img.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(img.Size, 10))
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, img); err != nil {
		h.logger.Warn("image stream interrupted", zap.String("name", img.Name), zap.Error(err))
	}
}

// Upload stores the multipart "file" field and returns its public URL.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	name, err := h.images.Upload(ctx, header.Filename, file)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	h.logger.Info("image uploaded", zap.String("name", name), zap.Int64("size", header.Size))
	respondJSON(w, http.StatusCreated, UploadResponse{Name: name, URL: storage.PublicURL(name)})
}
