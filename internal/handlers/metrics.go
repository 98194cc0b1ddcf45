package handlers

import (
	"net/http"

	"media-gallery/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// promErrorLog routes scrape errors into the application log.
type promErrorLog struct{}

func (promErrorLog) Println(v ...interface{}) {
	logging.Warn("metrics: %v", v)
}

// MetricsHandler serves the default registry. A collector that fails during a
// scrape is logged and skipped instead of failing the whole scrape, and
// OpenMetrics is offered to scrapers that ask for it.
func (h *Handlers) MetricsHandler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
			ErrorLog:          promErrorLog{},
			ErrorHandling:     promhttp.ContinueOnError,
			EnableOpenMetrics: true,
		}),
	)
}
