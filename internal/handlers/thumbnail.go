package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/metrics"
	"media-gallery/internal/middleware"
)

// GetThumbnail renders a thumbnail for ?file=<path>&size=<n>.
//
// The response is always 200 with a JPEG body. A missing file parameter
// resolves to the media root itself and gets the folder placeholder. A
// missing or non-numeric size uses the default; values below 1 are clamped
// to 1 by the renderer. Sizes above the renderer's MaxSize (MAX_THUMBNAIL_SIZE,
// at most 2048) are capped to it, so size=99999 on a 2:1 image yields
// 2048x1024. The cap bounds the memory of a single resize.
func (h *Handlers) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mediaPath := query.Get("file")
	size := parseThumbnailSize(query.Get("size"), h.defaultSize)

	if err := h.limiter.Acquire(r.Context()); err != nil {
		logging.Debug("Thumbnail: client went away while waiting for a render slot: %s", mediaPath)
		return
	}
	metrics.ThumbnailRendersInProgress.Inc()
	defer func() {
		metrics.ThumbnailRendersInProgress.Dec()
		h.limiter.Release()
	}()

	resolved := h.root.Resolve(mediaPath)
	class := h.classifier.Classify(resolved)
	thumb := h.renderer.Render(media.ThumbnailRequest{Path: resolved, TargetSize: size}, class)

	middleware.NoteRender(r, string(class.Category), string(thumb.Source))

	logging.Debug("Thumbnail: %q -> %s (%s/%s) %dx%d, %d bytes",
		mediaPath, resolved, class.Category, thumb.Source, thumb.Width, thumb.Height, len(thumb.Data))

	w.Header().Set("Content-Type", thumb.MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(len(thumb.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(thumb.Data); err != nil {
		logging.Debug("Thumbnail: failed to write response for %s: %v", mediaPath, err)
	}
}

// parseThumbnailSize parses the size query parameter. Anything that is not
// a base-10 integer yields def. Non-positive integers pass through.
func parseThumbnailSize(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
