package media

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedPlaceholders(t *testing.T) {
	set := mustPlaceholders(t)

	tests := []struct {
		kind         PlaceholderKind
		wantW, wantH int
	}{
		{kind: PlaceholderDefault, wantW: 200, wantH: 160},
		{kind: PlaceholderVideo, wantW: 256, wantH: 256},
		{kind: PlaceholderFolder, wantW: 256, wantH: 192},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			b := set.For(tt.kind).Bounds()
			assert.Equal(t, tt.wantW, b.Dx())
			assert.Equal(t, tt.wantH, b.Dy())
		})
	}
}

func TestPlaceholderUnknownKindFallsBackToDefault(t *testing.T) {
	set := mustPlaceholders(t)

	assert.Same(t, set.For(PlaceholderDefault), set.For(PlaceholderKind(42)))
	assert.Equal(t, "PlaceholderKind(42)", PlaceholderKind(42).String())
}

func TestLoadPlaceholdersOverride(t *testing.T) {
	fs := afero.NewMemMapFs()

	custom := image.NewRGBA(image.Rect(0, 0, 40, 10))
	custom.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, custom))
	require.NoError(t, afero.WriteFile(fs, "/brand/play.png", buf.Bytes(), 0o644))

	set, err := LoadPlaceholders(fs, "/brand")
	require.NoError(t, err)

	assert.Equal(t, 40, set.For(PlaceholderVideo).Bounds().Dx())
	assert.Equal(t, 10, set.For(PlaceholderVideo).Bounds().Dy())
	// Files missing from the override directory keep the embedded asset.
	assert.Equal(t, 200, set.For(PlaceholderDefault).Bounds().Dx())
	assert.Equal(t, 256, set.For(PlaceholderFolder).Bounds().Dx())
}

func TestLoadPlaceholdersRejectsBadOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/brand/folder.png", []byte("not a png"), 0o644))

	_, err := LoadPlaceholders(fs, "/brand")
	assert.Error(t, err)
}
