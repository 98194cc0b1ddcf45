// Package metrics provides Prometheus instrumentation for the media gallery.
//
// All metrics are prefixed with "media_gallery_" and registered with promauto
// on the default registry, which handlers expose through promhttp.
//
// # Metric Categories
//
// ## HTTP Metrics
//   - HTTPRequestsTotal: requests by method, normalized path and status
//   - HTTPRequestDuration: request duration by method and path
//   - HTTPRequestsInFlight: requests currently being served
//
// ## Classifier Metrics
//   - ClassificationsTotal: classifications by category (image/video/other)
//   - ClassificationErrors: content type detections that failed
//
// ## Thumbnail Metrics
//   - ThumbnailRendersTotal: renders by category and raster source
//   - ThumbnailRenderDuration: decode, resize and encode phase timings
//   - ThumbnailFallbacksTotal: default placeholder substitutions by reason
//   - ThumbnailImageDecodeByFormat: decodes by format and status
//   - ThumbnailBytes: encoded thumbnail sizes
//   - ThumbnailRendersInProgress: renders holding a worker slot
//
// ## Scanner and Filesystem Metrics
//   - ScannerOperationsTotal, ScannerOperationDuration, ScannerItemsReturned
//   - FilesystemRetry*: NFS stale handle retry behavior
//
// Call InitializeMetrics once at startup so every labelled series exists
// before the first scrape.
package metrics
