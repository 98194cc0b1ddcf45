package handlers

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/media"

	"github.com/spf13/afero"
)

// mp4Header is enough of an ISO BMFF file for content sniffing.
var mp4Header = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm',
	0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'm', 'p', '4', '1',
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(w, h), nil); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(w, h)); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	return img
}

// newTestHandlers builds handlers over an in-memory media tree rooted at
// /media, with an image outside the root at /secret.jpg.
func newTestHandlers(t *testing.T, mode filesystem.PathMode, opts Options) *Handlers {
	t.Helper()

	fs := afero.NewMemMapFs()
	files := map[string][]byte{
		"/media/wide.jpg":        encodeJPEG(t, 800, 400),
		"/media/tall.png":        encodePNG(t, 300, 600),
		"/media/clip.mp4":        mp4Header,
		"/media/notes.txt":       []byte("hello gallery\n"),
		"/media/album/cover.jpg": encodeJPEG(t, 64, 64),
		"/secret.jpg":            encodeJPEG(t, 40, 20),
	}
	for name, data := range files {
		if err := afero.WriteFile(fs, name, data, 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	return newHandlersForFs(t, fs, "/media", mode, opts)
}

func newHandlersForFs(t *testing.T, fs afero.Fs, dir string, mode filesystem.PathMode, opts Options) *Handlers {
	t.Helper()

	root := filesystem.NewRoot(fs, dir, mode)

	placeholders, err := media.LoadPlaceholders(nil, "")
	if err != nil {
		t.Fatalf("LoadPlaceholders() error = %v", err)
	}
	renderer, err := media.NewRenderer(root.Fs(), placeholders, media.RendererConfig{})
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	classifier := media.NewClassifier(media.NewMimeDetector(root.Fs()))

	return New(root, classifier, renderer, opts)
}

func TestNewDefaults(t *testing.T) {
	h := newTestHandlers(t, filesystem.PathModeContained, Options{})

	if h.defaultSize != media.DefaultThumbnailSize {
		t.Errorf("defaultSize = %d, want %d", h.defaultSize, media.DefaultThumbnailSize)
	}
	if h.limiter.Capacity() < 1 {
		t.Errorf("limiter capacity = %d, want >= 1", h.limiter.Capacity())
	}

	h = newTestHandlers(t, filesystem.PathModeContained, Options{DefaultThumbnailSize: 120, RenderWorkers: 3})
	if h.defaultSize != 120 {
		t.Errorf("defaultSize = %d, want 120", h.defaultSize)
	}
	if h.limiter.Capacity() != 3 {
		t.Errorf("limiter capacity = %d, want 3", h.limiter.Capacity())
	}
}
