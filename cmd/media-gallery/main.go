package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/handlers"
	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/memory"
	"media-gallery/internal/metrics"
	"media-gallery/internal/middleware"
	"media-gallery/internal/startup"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
)

const (
	staticDir       = "./static"
	shutdownTimeout = 30 * time.Second
)

func main() {
	startTime := time.Now()

	memResult := memory.ConfigureFromEnv()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}
	startup.LogMemoryConfig(memResult)

	if config.MetricsEnabled {
		metrics.InitializeMetrics()
		metrics.SetAppInfo(startup.Version, startup.Commit, startup.GoVersion)
		filesystem.SetObserver(metrics.NewFilesystemObserver())
	}

	rendererStart := time.Now()
	h, root, err := buildHandlers(afero.NewOsFs(), config)
	if err != nil {
		startup.LogFatal("Failed to initialize thumbnail renderer: %v", err)
	}
	startup.LogRendererInit(config, root, time.Since(rendererStart))

	router := setupRouter(h, staticDir)
	startup.LogHTTPRoutes(router, config.LogStaticFiles, config.LogHealthChecks)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	router.Use(middleware.Logger(loggingConfig))
	if config.MetricsEnabled {
		router.Use(middleware.Metrics(middleware.DefaultMetricsConfig()))
	}

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metricsSrv = newMetricsServer(h, config.MetricsPort)
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Metrics server error: %v", err)
			}
		}()
	}

	go handleShutdown(srv, metricsSrv)

	startup.LogServerStarted(startup.ServerConfig{
		Port:            config.Port,
		MetricsPort:     config.MetricsPort,
		MetricsEnabled:  config.MetricsEnabled,
		StartupDuration: time.Since(startTime),
	})
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		startup.LogFatal("Server error: %v", err)
	}
}

// buildHandlers wires the media root, placeholder set, classifier and
// renderer. Placeholder overrides are read from the host filesystem, never
// through the media root.
func buildHandlers(hostFs afero.Fs, config *startup.Config) (*handlers.Handlers, *filesystem.Root, error) {
	base := filesystem.NewRetryFs(hostFs, filesystem.DefaultRetryConfig())
	root := filesystem.NewRoot(base, config.MediaDir, config.PathMode)

	placeholders, err := media.LoadPlaceholders(hostFs, config.PlaceholderDir)
	if err != nil {
		return nil, nil, err
	}

	renderer, err := media.NewRenderer(root.Fs(), placeholders, media.RendererConfig{
		MaxSize: config.MaxThumbnailSize,
	})
	if err != nil {
		return nil, nil, err
	}

	classifier := media.NewClassifier(media.NewMimeDetector(root.Fs()))

	h := handlers.New(root, classifier, renderer, handlers.Options{
		DefaultThumbnailSize: config.DefaultThumbnailSize,
		RenderWorkers:        config.RenderWorkers,
	})
	return h, root, nil
}

func setupRouter(h *handlers.Handlers, static string) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// Thumbnails; /thumbnail.php is kept for old bookmarks and embeds
	r.HandleFunc("/thumbnail", h.GetThumbnail).Methods("GET", "HEAD")
	r.HandleFunc("/thumbnail.php", h.GetThumbnail).Methods("GET", "HEAD")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/files", h.ListFiles).Methods("GET")
	api.HandleFunc("/search", h.Search).Methods("GET")
	api.HandleFunc("/file/{path:.*}", h.GetFile).Methods("GET", "HEAD")
	api.HandleFunc("/classify/{path:.*}", h.Classify).Methods("GET")

	r.PathPrefix("/").Handler(http.FileServer(http.Dir(static)))

	return r
}

func newMetricsServer(h *handlers.Handlers, port string) *http.Server {
	mr := http.NewServeMux()
	mr.Handle("/metrics", h.MetricsHandler())
	mr.HandleFunc("/healthz", h.LivenessCheck)

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
}

func handleShutdown(srv, metricsSrv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	// In-flight renders finish before Shutdown returns
	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
