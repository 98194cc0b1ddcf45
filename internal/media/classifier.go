package media

import (
	"errors"
	"fmt"

	"media-gallery/internal/logging"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metrics"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

// ErrIsDirectory is returned by MimeDetector for directories, which have no
// content to sniff.
var ErrIsDirectory = errors.New("path is a directory")

// Detector reports the content type of a path by inspecting its bytes.
type Detector interface {
	DetectContentType(path string) (string, error)
}

// MimeDetector sniffs content types with mimetype over an afero filesystem.
type MimeDetector struct {
	fs afero.Fs
}

// NewMimeDetector returns a Detector reading from fs.
func NewMimeDetector(fs afero.Fs) *MimeDetector {
	return &MimeDetector{fs: fs}
}

// DetectContentType implements Detector.
func (d *MimeDetector) DetectContentType(path string) (string, error) {
	f, err := d.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close %s: %v", path, err)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrIsDirectory
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect %s: %w", path, err)
	}
	return mtype.String(), nil
}

// Classification is the outcome of classifying one path.
type Classification struct {
	Category mediatypes.Category    `json:"category"`
	Format   mediatypes.ImageFormat `json:"format,omitempty"`
	MIMEType string                 `json:"mimeType,omitempty"`
}

// Classifier maps a path to a Category by its sniffed content type.
// It never fails: anything whose type cannot be detected is CategoryOther.
type Classifier struct {
	detector Detector
}

// NewClassifier creates a Classifier backed by detector.
func NewClassifier(detector Detector) *Classifier {
	return &Classifier{detector: detector}
}

// Classify detects the content type of path and returns its classification.
func (c *Classifier) Classify(path string) Classification {
	mime, err := c.detector.DetectContentType(path)
	if err != nil {
		logging.Debug("Classify %s: detection failed: %v", path, err)
		metrics.ClassificationErrors.Inc()
		metrics.ClassificationsTotal.WithLabelValues(string(mediatypes.CategoryOther)).Inc()
		return Classification{Category: mediatypes.CategoryOther}
	}

	class := Classification{
		Category: mediatypes.CategoryForMIME(mime),
		MIMEType: mime,
	}
	if class.Category == mediatypes.CategoryImage {
		class.Format = mediatypes.FormatForMIME(mime)
	}

	metrics.ClassificationsTotal.WithLabelValues(string(class.Category)).Inc()
	return class
}
