package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"storyweave/pkg/version"
)

// NewServer creates and configures the HTTP server. staticDir is the SPA
// build output; when it does not exist the server is API-only. shutdown
// triggers a graceful stop of the whole process.
func NewServer(addr, staticDir string, analyze *AnalyzeHandler, images *ImageHandler, music *MusicHandler, stats *StatsHandler, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("GET /api/version", handleVersion)
	mux.Handle("GET /api/stats", stats)

	mux.HandleFunc("POST /api/analyze", analyze.HandleAnalyze)
	mux.HandleFunc("GET /api/image/{subject}", images.HandleGetImage)
	mux.HandleFunc("POST /api/generate-music", music.HandleGenerate)

	mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Graceful shutdown initiated via API")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Shutting down...")); err != nil {
			slog.Error("Failed to write shutdown response", "error", err)
		}
		// Call shutdown in a goroutine to allow the response to flush
		go func() {
			time.Sleep(100 * time.Millisecond)
			shutdown()
		}()
	})

	// Static frontend serving (SPA)
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		spaFS := &spaFileSystem{root: http.Dir(staticDir)}
		mux.Handle("/", http.FileServer(spaFS))
	} else {
		slog.Warn("Static directory missing, running API-only", "dir", staticDir)
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	}

	return &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprintf(w, `{"version": "%s"}`, version.Version); err != nil {
		slog.Error("Failed to write version response", "error", err)
	}
}
