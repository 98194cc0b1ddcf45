package mediatypes

import "strings"

// Category is the content classification of a path under the media root.
// It is derived from sniffed content, never from the file name.
type Category string

const (
	// CategoryImage is any content detected as image/*.
	CategoryImage Category = "image"
	// CategoryVideo is any content detected as video/*.
	CategoryVideo Category = "video"
	// CategoryOther covers directories, missing paths and every other type.
	CategoryOther Category = "other"
)

// ImageFormat selects the decoder used for an image.
type ImageFormat string

const (
	// FormatJPEG is decoded with image/jpeg.
	FormatJPEG ImageFormat = "jpeg"
	// FormatPNG is decoded with image/png.
	FormatPNG ImageFormat = "png"
	// FormatBMP is decoded with golang.org/x/image/bmp.
	FormatBMP ImageFormat = "bmp"
	// FormatGeneric is any other image subtype; it is rendered with the
	// default placeholder instead of being decoded.
	FormatGeneric ImageFormat = "generic"
)

// FileType is the display type of a directory listing entry.
type FileType string

const (
	// FileTypeFolder represents a directory.
	FileTypeFolder FileType = "folder"
	// FileTypeImage represents an image file.
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video file.
	FileTypeVideo FileType = "video"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// SortField specifies which field to sort by.
type SortField string

// SortOrder specifies the direction of sorting.
type SortOrder string

const (
	// SortByName sorts results by filename.
	SortByName SortField = "name"
	// SortByDate sorts results by modification time.
	SortByDate SortField = "date"
	// SortBySize sorts results by file size.
	SortBySize SortField = "size"
	// SortByType sorts results by file type.
	SortByType SortField = "type"

	// SortAsc sorts in ascending order.
	SortAsc SortOrder = "asc"
	// SortDesc sorts in descending order.
	SortDesc SortOrder = "desc"
)

// ImageExtensions maps file extensions to whether they look like images.
// Only used for listing hints; thumbnails classify by content.
var ImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
	".svg":  true,
	".tiff": true,
	".tif":  true,
}

// VideoExtensions maps file extensions to whether they look like videos.
var VideoExtensions = map[string]bool{
	".mp4":  true,
	".avi":  true,
	".mkv":  true,
	".mov":  true,
	".wmv":  true,
	".flv":  true,
	".webm": true,
	".mpeg": true,
	".mpg":  true,
	".3gp":  true,
}

// baseMIME strips parameters and normalizes case: "Image/PNG; x=y" -> "image/png".
func baseMIME(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

// CategoryForMIME maps a detected content type to a Category.
func CategoryForMIME(mime string) Category {
	m := baseMIME(mime)
	switch {
	case strings.HasPrefix(m, "image/"):
		return CategoryImage
	case strings.HasPrefix(m, "video/"):
		return CategoryVideo
	default:
		return CategoryOther
	}
}

// FormatForMIME returns the decoder format for an image content type.
// Non-image types return an empty format.
func FormatForMIME(mime string) ImageFormat {
	m := baseMIME(mime)
	switch m {
	case "image/jpeg", "image/pjpeg":
		return FormatJPEG
	case "image/png":
		return FormatPNG
	case "image/bmp", "image/x-ms-bmp", "image/x-bmp":
		return FormatBMP
	}
	if strings.HasPrefix(m, "image/") {
		return FormatGeneric
	}
	return ""
}

// GetFileType returns the listing FileType for a lowercase extension
// including the leading dot (e.g. ".jpg").
func GetFileType(ext string) FileType {
	if ImageExtensions[ext] {
		return FileTypeImage
	}
	if VideoExtensions[ext] {
		return FileTypeVideo
	}
	return FileTypeOther
}
