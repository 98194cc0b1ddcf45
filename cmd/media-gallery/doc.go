// Package main provides the entry point for the Media Gallery server.
//
// Media Gallery serves a browsable view of a media directory. Its core is the
// /thumbnail endpoint, which classifies a file by content and renders a
// bounded JPEG preview, substituting placeholder artwork for videos,
// folders and anything that cannot be decoded.
//
// # Application Lifecycle
//
//  1. Memory Configuration: sets GOMEMLIMIT from MEMORY_LIMIT when present
//  2. Configuration Loading: optional .env file, then environment variables
//  3. Renderer Initialization: media root, placeholders, classifier, renderer
//  4. HTTP Server Setup: routes, logging and metrics middleware
//  5. Graceful Shutdown: SIGINT/SIGTERM stop both servers with a 30s timeout
//
// # HTTP Server
//
// The main server (PORT, default 8080) exposes:
//
//   - /thumbnail and /thumbnail.php: JPEG thumbnails
//   - /api/files: paged directory listings
//   - /api/search: name search below a folder
//   - /api/file/{path}: raw media files with range support
//   - /api/classify/{path}: content classification
//   - /healthz, /livez, /readyz, /version
//   - everything else from ./static
//
// When METRICS_ENABLED is true a second server on METRICS_PORT (default 9090)
// serves Prometheus metrics at /metrics.
//
// # Environment Variables
//
//   - MEDIA_DIR: root directory containing media files (default: /media)
//   - PATH_MODE: contained (default) or legacy
//   - PLACEHOLDER_DIR: directory with picture.png, play.png, folder.png overrides
//   - DEFAULT_THUMBNAIL_SIZE / MAX_THUMBNAIL_SIZE: 250 / 2048
//   - THUMBNAIL_WORKERS: concurrent renders (default: one per CPU, max 16)
//   - PORT, METRICS_PORT, METRICS_ENABLED
//   - LOG_LEVEL, DEBUG, LOG_STATIC_FILES, LOG_HEALTH_CHECKS
//   - MEMORY_LIMIT, MEMORY_RATIO, GOMEMLIMIT
//   - ENV_FILE: .env file to preload (default: .env)
//
// # Related Packages
//
//   - [media-gallery/internal/media]: classifier, renderer, placeholders, listings
//   - [media-gallery/internal/handlers]: HTTP request handlers
//   - [media-gallery/internal/filesystem]: media root resolution and NFS retries
//   - [media-gallery/internal/middleware]: access logging and metrics
//   - [media-gallery/internal/startup]: configuration and startup logging
package main
