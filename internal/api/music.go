package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"storyweave/pkg/model"
)

// MusicGenerator requests a soundtrack for a journey subject.
type MusicGenerator interface {
	Generate(ctx context.Context, subject, narrative string) *model.MusicResult
}

// MusicHandler handles soundtrack generation requests.
type MusicHandler struct {
	music MusicGenerator
}

// NewMusicHandler creates a new MusicHandler.
func NewMusicHandler(music MusicGenerator) *MusicHandler {
	return &MusicHandler{music: music}
}

// musicRequest is the generate-music request body.
type musicRequest struct {
	Subject   string `json:"subject"`
	Narrative string `json:"narrative"`
}

// HandleGenerate kicks off soundtrack generation for a subject.
// POST /api/generate-music
func (h *MusicHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req musicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Subject = strings.TrimSpace(req.Subject)
	if req.Subject == "" {
		writeError(w, http.StatusBadRequest, "No subject provided")
		return
	}

	res := h.music.Generate(r.Context(), req.Subject, req.Narrative)
	writeJSON(w, http.StatusOK, res)
}
