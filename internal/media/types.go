package media

import (
	"time"

	"media-gallery/internal/mediatypes"
)

// MediaFile represents a file or folder in a directory listing.
type MediaFile struct {
	Name         string              `json:"name"`
	Path         string              `json:"path"`
	Type         mediatypes.FileType `json:"type"`
	Size         int64               `json:"size"`
	ModTime      time.Time           `json:"modTime"`
	MimeType     string              `json:"mimeType,omitempty"`
	ThumbnailURL string              `json:"thumbnailUrl"`
	ItemCount    int                 `json:"itemCount,omitempty"` // For folders: number of visible entries inside
}

// Pagination describes which slice of a result set a response carries.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalItems int  `json:"totalItems"`
	HasMore    bool `json:"hasMore"`
	NextPage   int  `json:"nextPage,omitempty"`
}

// DirectoryListing represents the contents of a directory.
type DirectoryListing struct {
	Path       string      `json:"path"`
	Name       string      `json:"name"`
	Parent     string      `json:"parent,omitempty"`
	Breadcrumb []PathPart  `json:"breadcrumb"`
	Items      []MediaFile `json:"items"`
	Pagination
}

// SearchResult holds the entries below Path whose names contain Query.
type SearchResult struct {
	Path       string      `json:"path"`
	Query      string      `json:"query"`
	Breadcrumb []PathPart  `json:"breadcrumb"`
	Items      []MediaFile `json:"items"`
	Pagination
}

// PathPart represents a single component of a breadcrumb path.
type PathPart struct {
	Name string `json:"name"`
	Path string `json:"path"`
}
