package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Classifier metrics
var (
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_classifications_total",
			Help: "Total number of content classifications by resulting category",
		},
		[]string{"category"},
	)

	ClassificationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_gallery_classification_detect_errors_total",
			Help: "Content type detections that failed (missing, unreadable or directory)",
		},
	)
)

// Thumbnail metrics
var (
	// ThumbnailRendersTotal counts renders by classified category and by the
	// raster actually used ("image", "default", "video", "folder").
	ThumbnailRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_thumbnail_renders_total",
			Help: "Total number of thumbnails rendered",
		},
		[]string{"category", "source"},
	)

	ThumbnailRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_thumbnail_render_duration_seconds",
			Help:    "Thumbnail render phase duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"phase"}, // "decode", "resize", "encode"
	)

	ThumbnailFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_thumbnail_fallbacks_total",
			Help: "Image renders that fell back to the default placeholder, by reason",
		},
		[]string{"reason"},
	)

	ThumbnailImageDecodeByFormat = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_thumbnail_image_decode_total",
			Help: "Image decodes attempted by detected format and status",
		},
		[]string{"format", "status"},
	)

	ThumbnailBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_gallery_thumbnail_bytes",
			Help:    "Size of encoded thumbnails in bytes",
			Buckets: prometheus.ExponentialBuckets(1024, 2, 10),
		},
	)

	ThumbnailRendersInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_gallery_thumbnail_renders_in_progress",
			Help: "Number of thumbnail renders currently holding a worker slot",
		},
	)
)

// Scanner metrics
var (
	ScannerOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_scanner_operations_total",
			Help: "Total number of directory listing operations",
		},
		[]string{"operation", "status"},
	)

	ScannerOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_scanner_operation_duration_seconds",
			Help:    "Directory listing duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	ScannerItemsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_gallery_scanner_items_returned",
			Help:    "Number of items returned by directory listings",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"operation"},
	)
)

// Filesystem retry metrics
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_attempts_total",
			Help: "Retries issued after an NFS stale file handle error",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_success_total",
			Help: "Operations that succeeded after at least one retry",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_retry_failures_total",
			Help: "Operations that still failed after all retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_gallery_filesystem_stale_errors_total",
			Help: "NFS stale file handle errors observed",
		},
		[]string{"operation"},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_gallery_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
