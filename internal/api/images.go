package api

import (
	"context"
	"log/slog"
	"net/http"

	"storyweave/pkg/model"
)

// PhotoSearcher finds a stock photo for a phrase and provides a static
// result for when even the search plumbing fails.
type PhotoSearcher interface {
	Search(ctx context.Context, phrase string) (*model.ImageResult, error)
	ErrorFallback(phrase string) *model.ImageResult
}

// ImageHandler handles ad-hoc photo lookups for the frontend.
type ImageHandler struct {
	photos PhotoSearcher
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(photos PhotoSearcher) *ImageHandler {
	return &ImageHandler{photos: photos}
}

// HandleGetImage serves one photo result for the subject. The endpoint
// always answers 200 with an image; provider failures degrade to the
// configured fallback.
// GET /api/image/{subject}
func (h *ImageHandler) HandleGetImage(w http.ResponseWriter, r *http.Request) {
	subject := r.PathValue("subject")
	if subject == "" {
		writeError(w, http.StatusBadRequest, "No subject provided")
		return
	}

	img, err := h.photos.Search(r.Context(), subject)
	if err != nil {
		slog.Warn("Image search failed, serving error fallback", "subject", subject, "error", err)
		img = h.photos.ErrorFallback(subject)
	}

	writeJSON(w, http.StatusOK, img)
}
