package metrics

// Label values shared with the media package. Kept here so InitializeMetrics
// can export every series from the first scrape.
var (
	categories      = []string{"image", "video", "other"}
	sources         = []string{"image", "default", "video", "folder"}
	renderPhases    = []string{"decode", "resize", "encode"}
	fallbackReasons = []string{"generic_format", "decode_error", "zero_dimension", "too_large", "open_error"}
	imageFormats    = []string{"jpeg", "png", "bmp"}
	retryOps        = []string{"stat", "open"}
	scannerOps      = []string{"get_directory", "search"}
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, c := range categories {
		ClassificationsTotal.WithLabelValues(c)
		for _, s := range sources {
			ThumbnailRendersTotal.WithLabelValues(c, s)
		}
	}

	for _, p := range renderPhases {
		ThumbnailRenderDuration.WithLabelValues(p)
	}

	for _, r := range fallbackReasons {
		ThumbnailFallbacksTotal.WithLabelValues(r)
	}

	for _, f := range imageFormats {
		ThumbnailImageDecodeByFormat.WithLabelValues(f, "success")
		ThumbnailImageDecodeByFormat.WithLabelValues(f, "error")
	}

	for _, op := range retryOps {
		FilesystemRetryAttempts.WithLabelValues(op)
		FilesystemRetrySuccess.WithLabelValues(op)
		FilesystemRetryFailures.WithLabelValues(op)
		FilesystemStaleErrors.WithLabelValues(op)
	}

	for _, op := range scannerOps {
		ScannerOperationsTotal.WithLabelValues(op, "success")
		ScannerOperationsTotal.WithLabelValues(op, "error")
		ScannerOperationDuration.WithLabelValues(op)
	}
}
