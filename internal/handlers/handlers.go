package handlers

import (
	"time"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/media"
	"media-gallery/internal/workers"
)

// Options tunes the handlers.
type Options struct {
	// DefaultThumbnailSize is used when the size parameter is absent or
	// not a number. Zero means media.DefaultThumbnailSize.
	DefaultThumbnailSize int

	// RenderWorkers bounds concurrent thumbnail renders. Zero means one per CPU.
	RenderWorkers int
}

// Handlers holds the dependencies shared by all HTTP handlers.
type Handlers struct {
	root        *filesystem.Root
	classifier  *media.Classifier
	renderer    *media.Renderer
	scanner     *media.Scanner
	limiter     *workers.Limiter
	defaultSize int
	startTime   time.Time
}

// New creates the handlers. The classifier and renderer must read from
// root.Fs().
func New(root *filesystem.Root, classifier *media.Classifier, renderer *media.Renderer, opts Options) *Handlers {
	defaultSize := opts.DefaultThumbnailSize
	if defaultSize <= 0 {
		defaultSize = media.DefaultThumbnailSize
	}

	renderWorkers := opts.RenderWorkers
	if renderWorkers <= 0 {
		renderWorkers = workers.ForCPU(0)
	}

	return &Handlers{
		root:        root,
		classifier:  classifier,
		renderer:    renderer,
		scanner:     media.NewScanner(root),
		limiter:     workers.NewLimiter(renderWorkers),
		defaultSize: defaultSize,
		startTime:   time.Now(),
	}
}
