package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"time"

	"media-gallery/internal/logging"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metrics"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
)

const (
	// DefaultThumbnailSize is the bounding box side used when a request
	// carries no usable size.
	DefaultThumbnailSize = 250

	// MaxThumbnailSize caps the bounding box side so a single request cannot
	// allocate an arbitrarily large destination raster.
	MaxThumbnailSize = 2048

	// ThumbnailQuality is the JPEG quality of every encoded thumbnail.
	ThumbnailQuality = 75

	// ThumbnailMIMEType is the content type of every thumbnail.
	ThumbnailMIMEType = "image/jpeg"
)

// Source records which raster a thumbnail was rendered from.
type Source string

const (
	SourceImage   Source = "image"
	SourceDefault Source = "default"
	SourceVideo   Source = "video"
	SourceFolder  Source = "folder"
)

// ThumbnailRequest is one render call: a path already resolved against the
// media root and the requested bounding box side.
type ThumbnailRequest struct {
	Path       string
	TargetSize int
}

// Thumbnail is an encoded thumbnail.
type Thumbnail struct {
	Data     []byte
	MIMEType string
	Width    int
	Height   int
	Source   Source
}

// FitDimensions scales sw x sh to fit a target x target box, preserving the
// aspect ratio. The longer side becomes target and the shorter one is
// floored, with both sides at least 1. ok is false when the source has no
// area.
func FitDimensions(sw, sh, target int) (w, h int, ok bool) {
	if sw <= 0 || sh <= 0 {
		return 0, 0, false
	}
	target = min(max(target, 1), MaxThumbnailSize)

	// Integer form of target/aspect and target*aspect, floored.
	if sw > sh {
		w = target
		h = int(int64(target) * int64(sh) / int64(sw))
	} else {
		h = target
		w = int(int64(target) * int64(sw) / int64(sh))
	}

	return max(w, 1), max(h, 1), true
}

// RendererConfig holds the tunables of a Renderer.
type RendererConfig struct {
	// MaxSize caps the requested target size. Zero means MaxThumbnailSize.
	MaxSize int
	// MaxPixels rejects source images with more pixels. Zero means MaxImagePixels.
	MaxPixels int
}

// Renderer turns a classified path into a JPEG thumbnail. It holds no
// per-request state and is safe for concurrent use.
type Renderer struct {
	fs           afero.Fs
	placeholders *PlaceholderSet
	maxSize      int
	maxPixels    int

	// fallback is the default placeholder encoded once at construction and
	// returned whenever encoding a thumbnail fails.
	fallback *Thumbnail
}

// NewRenderer creates a Renderer reading source images from fsys.
func NewRenderer(fsys afero.Fs, placeholders *PlaceholderSet, cfg RendererConfig) (*Renderer, error) {
	if placeholders == nil {
		return nil, errors.New("renderer requires a placeholder set")
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 || maxSize > MaxThumbnailSize {
		maxSize = MaxThumbnailSize
	}
	maxPixels := cfg.MaxPixels
	if maxPixels <= 0 {
		maxPixels = MaxImagePixels
	}

	r := &Renderer{
		fs:           fsys,
		placeholders: placeholders,
		maxSize:      maxSize,
		maxPixels:    maxPixels,
	}

	src := placeholders.For(PlaceholderDefault)
	b := src.Bounds()
	w, h, _ := FitDimensions(b.Dx(), b.Dy(), DefaultThumbnailSize)
	data, err := encodeJPEG(imaging.Resize(src, w, h, imaging.Linear))
	if err != nil {
		return nil, fmt.Errorf("encode fallback thumbnail: %w", err)
	}
	r.fallback = &Thumbnail{
		Data:     data,
		MIMEType: ThumbnailMIMEType,
		Width:    w,
		Height:   h,
		Source:   SourceDefault,
	}

	return r, nil
}

// MaxSize returns the effective upper bound for target sizes.
func (r *Renderer) MaxSize() int {
	return r.maxSize
}

// Render produces the thumbnail for req. It never fails: any problem with the
// source falls back to a placeholder.
func (r *Renderer) Render(req ThumbnailRequest, class Classification) *Thumbnail {
	target := min(max(req.TargetSize, 1), r.maxSize)

	src, source := r.selectSource(req.Path, class)
	b := src.Bounds()
	w, h, ok := FitDimensions(b.Dx(), b.Dy(), target)
	if !ok {
		logging.Warn("Thumbnail source for %s has no area, using default placeholder", req.Path)
		metrics.ThumbnailFallbacksTotal.WithLabelValues("zero_dimension").Inc()
		src, source = r.placeholders.For(PlaceholderDefault), SourceDefault
		b = src.Bounds()
		w, h, _ = FitDimensions(b.Dx(), b.Dy(), target)
	}

	start := time.Now()
	dst := imaging.Resize(src, w, h, imaging.Linear)
	metrics.ThumbnailRenderDuration.WithLabelValues("resize").Observe(time.Since(start).Seconds())

	start = time.Now()
	data, err := encodeJPEG(dst)
	metrics.ThumbnailRenderDuration.WithLabelValues("encode").Observe(time.Since(start).Seconds())
	if err != nil {
		logging.Error("Thumbnail encode failed for %s: %v", req.Path, err)
		metrics.ThumbnailRendersTotal.WithLabelValues(string(class.Category), string(SourceDefault)).Inc()
		return r.fallback
	}

	logging.Debug("Thumbnail %s: %s source %dx%d -> %dx%d (%d bytes)",
		req.Path, source, b.Dx(), b.Dy(), w, h, len(data))
	metrics.ThumbnailRendersTotal.WithLabelValues(string(class.Category), string(source)).Inc()
	metrics.ThumbnailBytes.Observe(float64(len(data)))

	return &Thumbnail{
		Data:     data,
		MIMEType: ThumbnailMIMEType,
		Width:    w,
		Height:   h,
		Source:   source,
	}
}

// selectSource picks the raster for a classification: the decoded image for
// decodable images, otherwise the placeholder for the category.
func (r *Renderer) selectSource(path string, class Classification) (image.Image, Source) {
	switch class.Category {
	case mediatypes.CategoryImage:
		img, err := r.decodeSource(path, class.Format)
		if err != nil {
			reason := fallbackReason(err)
			logging.Debug("Thumbnail %s: default placeholder (%s): %v", path, reason, err)
			metrics.ThumbnailFallbacksTotal.WithLabelValues(reason).Inc()
			return r.placeholders.For(PlaceholderDefault), SourceDefault
		}
		return img, SourceImage
	case mediatypes.CategoryVideo:
		return r.placeholders.For(PlaceholderVideo), SourceVideo
	default:
		return r.placeholders.For(PlaceholderFolder), SourceFolder
	}
}

func (r *Renderer) decodeSource(path string, format mediatypes.ImageFormat) (image.Image, error) {
	if _, ok := imageCodecs[format]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	start := time.Now()
	img, err := loadImageConstrained(r.fs, path, format, r.maxPixels)
	metrics.ThumbnailRenderDuration.WithLabelValues("decode").Observe(time.Since(start).Seconds())

	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.ThumbnailImageDecodeByFormat.WithLabelValues(string(format), status).Inc()

	return img, err
}

func fallbackReason(err error) string {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return "generic_format"
	case errors.Is(err, ErrZeroDimension):
		return "zero_dimension"
	case errors.Is(err, ErrImageTooLarge):
		return "too_large"
	case errors.As(err, &pathErr):
		return "open_error"
	default:
		return "decode_error"
	}
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(ThumbnailQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
