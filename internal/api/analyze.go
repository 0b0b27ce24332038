package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"storyweave/pkg/journey"
	"storyweave/pkg/model"
)

const defaultMaxUploadBytes = 20 << 20 // 20 MiB

// Analyzer turns an uploaded image into a Journey.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, data []byte, mediaType string) (*model.Journey, error)
}

// AnalyzeHandler handles the image upload and analysis endpoint.
type AnalyzeHandler struct {
	journeys       Analyzer
	maxUploadBytes int64
}

// NewAnalyzeHandler creates a new AnalyzeHandler. maxUploadBytes <= 0
// selects the default limit.
func NewAnalyzeHandler(journeys Analyzer, maxUploadBytes int64) *AnalyzeHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &AnalyzeHandler{
		journeys:       journeys,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleAnalyze accepts a multipart upload and responds with the Journey.
// POST /api/analyze, field name "file".
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "Image too large")
			return
		}
		writeError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded image")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "No image file provided")
		return
	}

	mediaType := header.Header.Get("Content-Type")
	slog.Info("Analyzing upload", "filename", header.Filename, "bytes", len(data), "type", mediaType)

	j, err := h.journeys.AnalyzeImage(r.Context(), data, mediaType)
	if err != nil {
		var refused *journey.ContentRefusedError
		if errors.As(err, &refused) {
			writeError(w, http.StatusInternalServerError, refused.Error())
			return
		}
		slog.Error("Analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to analyze image")
		return
	}

	writeJSON(w, http.StatusOK, j)
}
