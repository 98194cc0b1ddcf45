package media

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"media-gallery/internal/logging"
	"media-gallery/internal/mediatypes"

	"github.com/spf13/afero"
	"golang.org/x/image/bmp"
)

// MaxImagePixels is the maximum total pixels (width * height) we'll decode.
// A 20MP image uses ~80MB in RGBA.
const MaxImagePixels = 20_000_000

var (
	// ErrImageTooLarge is returned when an image exceeds the pixel limit.
	ErrImageTooLarge = errors.New("image exceeds pixel limit")
	// ErrZeroDimension is returned for images with a zero or negative side.
	ErrZeroDimension = errors.New("image has zero dimension")
	// ErrUnsupportedFormat is returned for formats without a decoder.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

type imageCodec struct {
	decode       func(io.Reader) (image.Image, error)
	decodeConfig func(io.Reader) (image.Config, error)
}

// Only these three formats are ever decoded; everything else under image/*
// gets the default placeholder.
var imageCodecs = map[mediatypes.ImageFormat]imageCodec{
	mediatypes.FormatJPEG: {decode: jpeg.Decode, decodeConfig: jpeg.DecodeConfig},
	mediatypes.FormatPNG:  {decode: png.Decode, decodeConfig: png.DecodeConfig},
	mediatypes.FormatBMP:  {decode: bmp.Decode, decodeConfig: bmp.DecodeConfig},
}

// ImageDimensions holds image width and height
type ImageDimensions struct {
	Width  int
	Height int
}

// GetImageDimensions returns image dimensions without fully decoding the image
func GetImageDimensions(fs afero.Fs, path string, format mediatypes.ImageFormat) (*ImageDimensions, error) {
	codec, ok := imageCodecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeImageFile(file, path)

	config, err := codec.decodeConfig(file)
	if err != nil {
		return nil, err
	}

	return &ImageDimensions{Width: config.Width, Height: config.Height}, nil
}

// loadImageConstrained decodes path with the decoder for format. The header is
// read first so that oversized or degenerate images are rejected before any
// pixel buffer is allocated.
func loadImageConstrained(fs afero.Fs, path string, format mediatypes.ImageFormat, maxPixels int) (image.Image, error) {
	codec, ok := imageCodecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer closeImageFile(file, path)

	config, err := codec.decodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", format, err)
	}

	width, height := config.Width, config.Height
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrZeroDimension, width, height)
	}
	if maxPixels > 0 && int64(width)*int64(height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, width, height)
	}

	logging.Debug("Image %s dimensions: %dx%d (%d pixels)", path, width, height, width*height)

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", path, err)
	}

	img, err := codec.decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return img, nil
}

func closeImageFile(file afero.File, path string) {
	if err := file.Close(); err != nil {
		logging.Warn("failed to close image file %s: %v", path, err)
	}
}
