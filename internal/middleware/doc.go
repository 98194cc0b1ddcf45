// Package middleware provides HTTP middleware for the media gallery.
//
// Logger writes one access line per request in W3C Extended Log Format with
// user-controlled fields sanitized against log injection. Thumbnail handlers
// call NoteRender so the line also records the classified category and the
// raster the thumbnail came from. Static assets and health checks can be left
// out of the log.
//
// Metrics records Prometheus request counters and latencies, labelling each
// request with its route template so that per-file URLs do not explode label
// cardinality.
package middleware
