package media

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"media-gallery/internal/mediatypes"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// encodeTestImage returns a w x h gradient encoded in format.
func encodeTestImage(t *testing.T, format mediatypes.ImageFormat, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case mediatypes.FormatJPEG:
		err = jpeg.Encode(&buf, img, nil)
	case mediatypes.FormatPNG:
		err = png.Encode(&buf, img)
	case mediatypes.FormatBMP:
		err = bmp.Encode(&buf, img)
	default:
		t.Fatalf("cannot encode test image as %q", format)
	}
	require.NoError(t, err)

	return buf.Bytes()
}

func writeTestImage(t *testing.T, fs afero.Fs, path string, format mediatypes.ImageFormat, w, h int) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, encodeTestImage(t, format, w, h), 0o644))
}

// mp4Header is enough of an ISO BMFF file for content sniffing.
var mp4Header = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm',
	0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'm', 'p', '4', '1',
}

func decodeThumbnail(t *testing.T, thumb *Thumbnail) image.Image {
	t.Helper()

	img, err := jpeg.Decode(bytes.NewReader(thumb.Data))
	require.NoError(t, err, "thumbnail is not a valid JPEG")
	return img
}

func mustPlaceholders(t *testing.T) *PlaceholderSet {
	t.Helper()

	set, err := LoadPlaceholders(nil, "")
	require.NoError(t, err)
	return set
}
