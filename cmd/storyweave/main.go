package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"storyweave/internal/api"
	"storyweave/pkg/cache"
	"storyweave/pkg/config"
	"storyweave/pkg/db"
	"storyweave/pkg/journey"
	"storyweave/pkg/llm"
	"storyweave/pkg/llm/gemini"
	"storyweave/pkg/llm/mock"
	"storyweave/pkg/logging"
	"storyweave/pkg/music"
	"storyweave/pkg/photos"
	"storyweave/pkg/request"
	"storyweave/pkg/tracker"
	"storyweave/pkg/version"
)

var initConfig = flag.Bool("init-config", false, "Generate default config file and exit")

const configPath = "configs/storyweave.yaml"

func main() {
	flag.Parse()

	// Handle --init-config flag
	if *initConfig {
		if err := config.GenerateDefault(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated: " + configPath)
		return
	}

	if err := run(context.Background(), configPath); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Credentials may live in a local .env during development
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env")
	}

	appCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&appCfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("StoryWeave Started", "version", version.Version)

	tr := tracker.New()
	responseCache, closeDB := initCache(appCfg)
	defer closeDB()

	reqClient := request.New(responseCache, tr, time.Duration(appCfg.Request.Timeout))

	provider, closeProvider, err := initProvider(appCfg, tr)
	if err != nil {
		return err
	}
	defer closeProvider()

	if err := provider.HealthCheck(ctx); err != nil {
		slog.Warn("Generation provider health check failed, analysis may degrade", "error", err)
	}

	photoClient := photos.New(reqClient, tr, appCfg.Photos)
	musicClient := music.New(reqClient, appCfg.Music)
	journeySvc := journey.NewService(provider, photoClient, appCfg.Journey)

	return runServer(ctx, appCfg, journeySvc, photoClient, musicClient, tr)
}

// initCache opens the response cache database. A broken database is not
// fatal; the app runs uncached.
func initCache(cfg *config.Config) (cache.Cacher, func()) {
	dbConn, err := db.Init(cfg.DB.Path)
	if err != nil {
		slog.Warn("Cache database unavailable, running without cache", "path", cfg.DB.Path, "error", err)
		return cache.NullCache{}, func() {}
	}

	if err := dbConn.PruneCache(30 * 24 * time.Hour); err != nil {
		slog.Warn("Cache pruning failed", "error", err)
	}

	return cache.NewSQLiteCache(dbConn), func() { dbConn.Close() }
}

func initProvider(cfg *config.Config, tr *tracker.Tracker) (llm.Provider, func(), error) {
	switch cfg.LLM.Provider {
	case "mock":
		slog.Warn("Using mock generation provider, responses are canned")
		return mock.New(""), func() {}, nil
	case "", "gemini":
		client, err := gemini.NewClient(cfg.LLM, cfg.Log.LLM.Path, tr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize gemini provider: %w", err)
		}
		return client, client.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.LLM.Provider)
}

func runServer(ctx context.Context, cfg *config.Config, journeySvc *journey.Service, photoClient *photos.Client, musicClient *music.Client, tr *tracker.Tracker) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	shutdownFunc := func() { quit <- syscall.SIGTERM }

	srv := api.NewServer(cfg.Server.Address, cfg.Server.StaticDir,
		api.NewAnalyzeHandler(journeySvc, cfg.Journey.MaxUploadBytes),
		api.NewImageHandler(photoClient),
		api.NewMusicHandler(musicClient),
		api.NewStatsHandler(tr),
		shutdownFunc,
	)

	srv.Handler = loggingMiddleware(srv.Handler)
	return runServerLifecycle(ctx, srv, quit)
}

func runServerLifecycle(ctx context.Context, srv *http.Server, quit chan os.Signal) error {
	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()
	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.RequestLogger.Info("Request Processed", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
