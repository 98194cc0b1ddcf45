package startup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/memory"
	"media-gallery/internal/workers"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// maxRenderWorkers caps the automatic render concurrency on large hosts.
const maxRenderWorkers = 16

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// RouteInfo contains information about a registered route
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Config holds all application configuration
type Config struct {
	MediaDir        string
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	LogStaticFiles  bool
	LogHealthChecks bool

	// PathMode controls how the thumbnail file parameter is joined onto MediaDir.
	PathMode filesystem.PathMode

	// PlaceholderDir optionally overrides the embedded placeholder images.
	PlaceholderDir string

	DefaultThumbnailSize int
	MaxThumbnailSize     int
	RenderWorkers        int
}

// LoadConfig loads and validates configuration from the environment, after
// merging in the optional .env file named by ENV_FILE.
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	envFile := getEnv("ENV_FILE", ".env")
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	config, err := configFromEnv()
	if err != nil {
		return nil, err
	}

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Media directory (absolute): %s", config.MediaDir)

	// The media directory is mounted, never created; a missing one is only a warning
	if err := checkDirectory(config.MediaDir, "media"); err != nil {
		logging.Warn("  Media directory issue: %v", err)
	}

	if config.PlaceholderDir != "" {
		if err := checkDirectory(config.PlaceholderDir, "placeholder"); err != nil {
			return nil, fmt.Errorf("placeholder directory error: %w", err)
		}
	}

	return config, nil
}

// loadEnvFile merges KEY=VALUE pairs from path into the environment.
// Variables that are already set win. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("  No env file at %s", path)
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	logging.Info("  Loaded env file:     %s", path)
	return nil
}

// configFromEnv builds a Config from environment variables alone.
func configFromEnv() (*Config, error) {
	mediaDir := getEnv("MEDIA_DIR", "/media")
	port := getEnv("PORT", "8080")
	metricsPort := getEnv("METRICS_PORT", "9090")
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)
	logStaticFiles := getEnvBool("LOG_STATIC_FILES", false)
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", true)
	pathModeStr := getEnv("PATH_MODE", string(filesystem.PathModeContained))
	placeholderDir := getEnv("PLACEHOLDER_DIR", "")
	maxSize := getEnvInt("MAX_THUMBNAIL_SIZE", media.MaxThumbnailSize)
	defaultSize := getEnvInt("DEFAULT_THUMBNAIL_SIZE", media.DefaultThumbnailSize)
	renderWorkers := workers.ForCPU(maxRenderWorkers)

	logging.Info("  MEDIA_DIR:              %s", mediaDir)
	logging.Info("  PORT:                   %s", port)
	logging.Info("  METRICS_PORT:           %s", metricsPort)
	logging.Info("  METRICS_ENABLED:        %v", metricsEnabled)
	logging.Info("  PATH_MODE:              %s", pathModeStr)
	logging.Info("  PLACEHOLDER_DIR:        %s", displayOrDefault(placeholderDir, "(embedded)"))
	logging.Info("  DEFAULT_THUMBNAIL_SIZE: %d", defaultSize)
	logging.Info("  MAX_THUMBNAIL_SIZE:     %d", maxSize)
	logging.Info("  THUMBNAIL_WORKERS:      %d", renderWorkers)
	logging.Info("  LOG_STATIC_FILES:       %v", logStaticFiles)
	logging.Info("  LOG_HEALTH_CHECKS:      %v", logHealthChecks)
	logging.Info("  LOG_LEVEL:              %s", logging.GetLevel())

	pathMode, err := filesystem.ParsePathMode(pathModeStr)
	if err != nil {
		return nil, err
	}
	if pathMode == filesystem.PathModeLegacy {
		logging.Warn("  PATH_MODE=legacy: thumbnail paths are not confined to MEDIA_DIR")
	}

	if maxSize < 1 || maxSize > media.MaxThumbnailSize {
		logging.Warn("  Invalid MAX_THUMBNAIL_SIZE, using default: %d", media.MaxThumbnailSize)
		maxSize = media.MaxThumbnailSize
	}
	if defaultSize < 1 || defaultSize > maxSize {
		logging.Warn("  Invalid DEFAULT_THUMBNAIL_SIZE, using: %d", min(media.DefaultThumbnailSize, maxSize))
		defaultSize = min(media.DefaultThumbnailSize, maxSize)
	}

	mediaDir, err = filepath.Abs(mediaDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media directory path: %w", err)
	}

	return &Config{
		MediaDir:             mediaDir,
		Port:                 port,
		MetricsPort:          metricsPort,
		MetricsEnabled:       metricsEnabled,
		LogStaticFiles:       logStaticFiles,
		LogHealthChecks:      logHealthChecks,
		PathMode:             pathMode,
		PlaceholderDir:       placeholderDir,
		DefaultThumbnailSize: defaultSize,
		MaxThumbnailSize:     maxSize,
		RenderWorkers:        renderWorkers,
	}, nil
}

func displayOrDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// LogMemoryConfig logs the outcome of memory.ConfigureFromEnv
func LogMemoryConfig(result memory.ConfigResult) {
	logging.Info("------------------------------------------------------------")
	logging.Info("MEMORY")
	logging.Info("------------------------------------------------------------")
	if !result.Configured {
		logging.Info("  GOMEMLIMIT: not configured (set MEMORY_LIMIT to enable)")
		logging.Info("")
		return
	}
	logging.Info("  GOMEMLIMIT:      %s (source: %s)", memory.FormatBytes(result.GoMemLimit), result.Source)
	if result.ContainerLimit > 0 {
		logging.Info("  Container limit: %s (ratio %.2f)", memory.FormatBytes(result.ContainerLimit), result.Ratio)
	}
	logging.Info("")
}

// LogRendererInit logs thumbnail renderer initialization
func LogRendererInit(config *Config, root *filesystem.Root, duration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("THUMBNAIL RENDERER")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Path mode:       %s", root.Mode())
	logging.Info("  Placeholders:    %s", displayOrDefault(config.PlaceholderDir, "embedded"))
	logging.Info("  Default size:    %d", config.DefaultThumbnailSize)
	logging.Info("  Max size:        %d", config.MaxThumbnailSize)
	logging.Info("  Render workers:  %d", config.RenderWorkers)
	logging.Info("  JPEG quality:    %d", media.ThumbnailQuality)
	logging.Info("  [OK] Renderer ready in %v", duration)
}

// GetRoutes extracts all registered routes from a mux.Router
func GetRoutes(router *mux.Router) ([]RouteInfo, error) {
	var routes []RouteInfo

	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			// Prefix-only routes (static file server)
			pathTemplate, err = route.GetPathRegexp()
			if err != nil {
				return nil
			}
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"*"}
		}

		for _, method := range methods {
			routes = append(routes, RouteInfo{
				Method: method,
				Path:   pathTemplate,
				Name:   route.GetName(),
			})
		}

		return nil
	})

	return routes, err
}

// LogHTTPRoutes logs all registered HTTP routes dynamically
func LogHTTPRoutes(router *mux.Router, logStaticFiles, logHealthChecks bool) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("HTTP SERVER SETUP")
	logging.Info("------------------------------------------------------------")

	if logging.IsDebugEnabled() {
		routes, err := GetRoutes(router)
		if err != nil {
			logging.Warn("error walking routes: %v", err)
		}

		logging.Debug("  Registered routes (%d total):", len(routes))
		logging.Debug("")

		groups := make(map[string][]RouteInfo)
		for _, route := range routes {
			prefix := getRouteGroup(route.Path)
			groups[prefix] = append(groups[prefix], route)
		}

		groupKeys := make([]string, 0, len(groups))
		for k := range groups {
			groupKeys = append(groupKeys, k)
		}
		sort.Strings(groupKeys)

		for _, group := range groupKeys {
			if group != "" {
				logging.Debug("  [%s]", group)
			} else {
				logging.Debug("  [root]")
			}

			for _, route := range groups[group] {
				logging.Debug("    %-6s %s", route.Method, route.Path)
			}
			logging.Debug("")
		}
	}

	logging.Info("  HTTP logging enabled")
	if logStaticFiles {
		logging.Info("    Static file logging: ON")
	} else {
		logging.Info("    Static file logging: OFF (set LOG_STATIC_FILES=true to enable)")
	}
	if logHealthChecks {
		logging.Info("    Health check logging: ON")
	} else {
		logging.Info("    Health check logging: OFF (set LOG_HEALTH_CHECKS=true to enable)")
	}
}

// getRouteGroup extracts a group name from a route path
func getRouteGroup(path string) string {
	path = strings.TrimPrefix(path, "/")

	parts := strings.SplitN(path, "/", 2)
	first := parts[0]

	if first == "api" && len(parts) > 1 {
		subParts := strings.SplitN(parts[1], "/", 2)
		return "api/" + subParts[0]
	}

	return first
}

// ServerConfig holds configuration for the server startup log
type ServerConfig struct {
	Port            string
	MetricsPort     string
	MetricsEnabled  bool
	StartupDuration time.Duration
}

// LogServerStarted logs successful server start with all endpoint information
func LogServerStarted(config ServerConfig) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", config.StartupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Application:   http://0.0.0.0:%s", config.Port)
	logging.Info("    Thumbnails:    http://0.0.0.0:%s/thumbnail?file=/path&size=250", config.Port)
	if config.MetricsEnabled {
		logging.Info("    Metrics:       http://0.0.0.0:%s/metrics", config.MetricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func printBanner() {
	banner := `
------------------------------------------------------------
    __  ___         ___          ______      ____
   /  |/  /__  ____/ (_)___ _   / ____/___ _/ / /__  _______  __
  / /|_/ / _ \/ __  / / __ '/  / / __/ __ '/ / / _ \/ ___/ / / /
 / /  / /  __/ /_/ / / /_/ /  / /_/ / /_/ / / /  __/ /  / /_/ /
/_/  /_/\___/\__,_/_/\__,_/   \____/\__,_/_/_/\___/_/   \__, /
                                                       /____/
------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

// checkDirectory verifies that path is an existing directory.
func checkDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	logging.Debug("    [OK] Directory exists")

	if logging.IsDebugEnabled() {
		entries, err := os.ReadDir(path)
		if err == nil {
			fileCount, dirCount := 0, 0
			for _, e := range entries {
				if e.IsDir() {
					dirCount++
				} else {
					fileCount++
				}
			}
			logging.Debug("    Contents: %d files, %d directories (top level)", fileCount, dirCount)
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		logging.Warn("Invalid integer value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
