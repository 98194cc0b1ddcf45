package media

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"media-gallery/internal/logging"

	"github.com/spf13/afero"
)

//go:embed assets/*.png
var embeddedAssets embed.FS

// PlaceholderKind names one of the fixed placeholder rasters.
type PlaceholderKind int

const (
	// PlaceholderDefault stands in for images that cannot be decoded.
	PlaceholderDefault PlaceholderKind = iota
	// PlaceholderVideo is used for every video.
	PlaceholderVideo
	// PlaceholderFolder is used for directories, missing paths and other content.
	PlaceholderFolder
)

var placeholderFiles = map[PlaceholderKind]string{
	PlaceholderDefault: "picture.png",
	PlaceholderVideo:   "play.png",
	PlaceholderFolder:  "folder.png",
}

// String returns the asset file name for the kind.
func (k PlaceholderKind) String() string {
	if name, ok := placeholderFiles[k]; ok {
		return name
	}
	return fmt.Sprintf("PlaceholderKind(%d)", int(k))
}

// PlaceholderSet holds the decoded placeholder rasters. It is immutable after
// LoadPlaceholders returns and may be shared across goroutines.
type PlaceholderSet struct {
	images map[PlaceholderKind]image.Image
}

// LoadPlaceholders decodes the three placeholders. When dir is not empty, a
// file with the same name in dir on fs replaces the embedded asset.
func LoadPlaceholders(fs afero.Fs, dir string) (*PlaceholderSet, error) {
	set := &PlaceholderSet{images: make(map[PlaceholderKind]image.Image, len(placeholderFiles))}

	for kind, name := range placeholderFiles {
		data, source, err := readPlaceholder(fs, dir, name)
		if err != nil {
			return nil, err
		}

		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode placeholder %s: %w", source, err)
		}

		b := img.Bounds()
		if b.Dx() <= 0 || b.Dy() <= 0 {
			return nil, fmt.Errorf("placeholder %s: %w", source, ErrZeroDimension)
		}

		logging.Debug("Loaded placeholder %s from %s (%dx%d)", name, source, b.Dx(), b.Dy())
		set.images[kind] = img
	}

	return set, nil
}

func readPlaceholder(fs afero.Fs, dir, name string) ([]byte, string, error) {
	if dir != "" && fs != nil {
		p := filepath.Join(dir, name)
		data, err := afero.ReadFile(fs, p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, p, fmt.Errorf("read placeholder %s: %w", p, err)
		}
	}

	data, err := embeddedAssets.ReadFile("assets/" + name)
	if err != nil {
		return nil, "", fmt.Errorf("read embedded placeholder %s: %w", name, err)
	}
	return data, "embedded", nil
}

// For returns the raster for kind. Unknown kinds get the default placeholder.
func (s *PlaceholderSet) For(kind PlaceholderKind) image.Image {
	if img, ok := s.images[kind]; ok {
		return img
	}
	return s.images[PlaceholderDefault]
}
