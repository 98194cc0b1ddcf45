package media

import (
	"errors"
	"os"
	"testing"

	"media-gallery/internal/mediatypes"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDetector struct {
	mock.Mock
}

func (m *mockDetector) DetectContentType(path string) (string, error) {
	args := m.Called(path)
	return args.String(0), args.Error(1)
}

func TestClassifyByContentType(t *testing.T) {
	tests := []struct {
		name   string
		mime   string
		err    error
		want   mediatypes.Category
		format mediatypes.ImageFormat
	}{
		{name: "jpeg", mime: "image/jpeg", want: mediatypes.CategoryImage, format: mediatypes.FormatJPEG},
		{name: "png", mime: "image/png", want: mediatypes.CategoryImage, format: mediatypes.FormatPNG},
		{name: "bmp", mime: "image/bmp", want: mediatypes.CategoryImage, format: mediatypes.FormatBMP},
		{name: "legacy bmp alias", mime: "image/x-ms-bmp", want: mediatypes.CategoryImage, format: mediatypes.FormatBMP},
		{name: "gif is generic", mime: "image/gif", want: mediatypes.CategoryImage, format: mediatypes.FormatGeneric},
		{name: "webp is generic", mime: "image/webp", want: mediatypes.CategoryImage, format: mediatypes.FormatGeneric},
		{name: "mp4", mime: "video/mp4", want: mediatypes.CategoryVideo},
		{name: "webm", mime: "video/webm", want: mediatypes.CategoryVideo},
		{name: "text", mime: "text/plain; charset=utf-8", want: mediatypes.CategoryOther},
		{name: "pdf", mime: "application/pdf", want: mediatypes.CategoryOther},
		{name: "detector error", err: os.ErrNotExist, want: mediatypes.CategoryOther},
		{name: "directory", err: ErrIsDirectory, want: mediatypes.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := &mockDetector{}
			detector.On("DetectContentType", "/some/file").Return(tt.mime, tt.err).Once()

			got := NewClassifier(detector).Classify("/some/file")

			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, tt.format, got.Format)
			if tt.err != nil {
				assert.Empty(t, got.MIMEType)
			} else {
				assert.Equal(t, tt.mime, got.MIMEType)
			}
			detector.AssertExpectations(t)
		})
	}
}

func TestMimeDetector(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeTestImage(t, fs, "/photo.jpg", mediatypes.FormatJPEG, 16, 8)
	writeTestImage(t, fs, "/image.png", mediatypes.FormatPNG, 16, 8)
	writeTestImage(t, fs, "/bitmap.bmp", mediatypes.FormatBMP, 16, 8)
	// Extensions are deliberately misleading: only content counts.
	writeTestImage(t, fs, "/really-a-png.mp4", mediatypes.FormatPNG, 4, 4)
	require.NoError(t, afero.WriteFile(fs, "/clip.bin", mp4Header, 0o644))
	require.NoError(t, afero.WriteFile(fs, "/notes.jpg", []byte("just some text\n"), 0o644))
	require.NoError(t, fs.MkdirAll("/album", 0o755))

	classifier := NewClassifier(NewMimeDetector(fs))

	tests := []struct {
		path   string
		want   mediatypes.Category
		format mediatypes.ImageFormat
	}{
		{path: "/photo.jpg", want: mediatypes.CategoryImage, format: mediatypes.FormatJPEG},
		{path: "/image.png", want: mediatypes.CategoryImage, format: mediatypes.FormatPNG},
		{path: "/bitmap.bmp", want: mediatypes.CategoryImage, format: mediatypes.FormatBMP},
		{path: "/really-a-png.mp4", want: mediatypes.CategoryImage, format: mediatypes.FormatPNG},
		{path: "/clip.bin", want: mediatypes.CategoryVideo},
		{path: "/notes.jpg", want: mediatypes.CategoryOther},
		{path: "/album", want: mediatypes.CategoryOther},
		{path: "/missing.jpg", want: mediatypes.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := classifier.Classify(tt.path)
			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, tt.format, got.Format)
		})
	}
}

func TestMimeDetectorErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/album", 0o755))
	detector := NewMimeDetector(fs)

	_, err := detector.DetectContentType("/album")
	assert.True(t, errors.Is(err, ErrIsDirectory), "directory error = %v", err)

	_, err = detector.DetectContentType("/nope")
	assert.True(t, errors.Is(err, os.ErrNotExist), "missing file error = %v", err)
}
