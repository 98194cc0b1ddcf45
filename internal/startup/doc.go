// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// Configuration is read from environment variables by [LoadConfig]. Before
// that, KEY=VALUE pairs from the file named by ENV_FILE (default ".env") are
// merged in with godotenv; variables already present in the environment win
// and a missing file is ignored.
//
//   - MEDIA_DIR: Path to the media root (default: /media)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable or disable the metrics server (default: true)
//   - PATH_MODE: "contained" or "legacy" thumbnail path handling (default: contained)
//   - PLACEHOLDER_DIR: Directory with picture.png, play.png and folder.png overrides
//   - DEFAULT_THUMBNAIL_SIZE: Bounding box used when size is absent (default: 250)
//   - MAX_THUMBNAIL_SIZE: Upper bound on the size parameter (default: 2048)
//   - THUMBNAIL_WORKERS: Concurrent renders (default: GOMAXPROCS, at most 16)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_STATIC_FILES: Log static file requests (default: false)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// # Build Information
//
// Version, Commit and BuildTime are injected via ldflags and exposed via
// [GetBuildInfo]:
//
//	go build -ldflags "-X media-gallery/internal/startup.Version=1.2.0"
//
// # Lifecycle Logging
//
// Startup output is grouped into sections separated by rules: banner, system
// information, configuration, directory setup, memory, thumbnail renderer,
// HTTP routes (debug level) and the server endpoints. Shutdown gets matching
// [LogShutdownInitiated] and [LogShutdownComplete] bookends.
package startup
