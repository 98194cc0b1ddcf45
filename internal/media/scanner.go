package media

import (
	"cmp"
	"errors"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/mediatypes"
	"media-gallery/internal/metrics"

	"github.com/spf13/afero"
)

// RootName is the display name of the media root in listings.
const RootName = "Media"

// Page size bounds for listings and search results.
const (
	DefaultPageSize = 25
	MaxPageSize     = 500
)

// ErrEmptyQuery is returned by Search when no query is given.
var ErrEmptyQuery = errors.New("search query is empty")

// ListOptions controls sorting, filtering and paging of a listing.
type ListOptions struct {
	SortField  mediatypes.SortField
	SortOrder  mediatypes.SortOrder
	FilterType string

	// Page is 1-based. Zero or negative means the first page.
	Page int
	// PageSize of zero or less means DefaultPageSize; it is capped at MaxPageSize.
	PageSize int
}

// Scanner lists directories under the media root.
type Scanner struct {
	root *filesystem.Root
}

// NewScanner creates a new Scanner instance.
func NewScanner(root *filesystem.Root) *Scanner {
	return &Scanner{root: root}
}

// GetDirectory returns one page of the contents of a directory. Folders
// sort ahead of files and are paged together with them.
func (s *Scanner) GetDirectory(relativePath string, opts ListOptions) (listing *DirectoryListing, err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.ScannerOperationsTotal.WithLabelValues("get_directory", status).Inc()
		metrics.ScannerOperationDuration.WithLabelValues("get_directory").Observe(time.Since(start).Seconds())
	}()

	relativePath, err = normalizePath(relativePath)
	if err != nil {
		return nil, err
	}

	fullPath, err := s.validatePath(relativePath)
	if err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(s.root.Fs(), fullPath)
	if err != nil {
		return nil, err
	}

	items := s.processEntries(entries, relativePath, fullPath, opts.FilterType)

	sortItems(items, opts.SortField, opts.SortOrder)

	listing = buildListing(relativePath, items)
	listing.Items, listing.Pagination = paginate(items, opts.Page, opts.PageSize)

	metrics.ScannerItemsReturned.WithLabelValues("get_directory").Observe(float64(len(listing.Items)))

	return listing, nil
}

// Search walks the tree below relativePath and returns every visible folder
// and file whose name contains query, ignoring case. Hidden entries and
// everything inside hidden folders are skipped. Results are sorted by name
// with folders first.
func (s *Scanner) Search(relativePath, query string, page, pageSize int) (result *SearchResult, err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.ScannerOperationsTotal.WithLabelValues("search", status).Inc()
		metrics.ScannerOperationDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	}()

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, ErrEmptyQuery
	}

	relativePath, err = normalizePath(relativePath)
	if err != nil {
		return nil, err
	}
	fullPath, err := s.validatePath(relativePath)
	if err != nil {
		return nil, err
	}

	var items []MediaFile
	err = afero.Walk(s.root.Fs(), fullPath, func(walkPath string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are left out of the results
			return nil
		}
		if walkPath == fullPath {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.Contains(strings.ToLower(info.Name()), needle) {
			return nil
		}

		entryPath := strings.TrimPrefix(strings.TrimPrefix(walkPath, fullPath), "/")
		if relativePath != "" {
			entryPath = relativePath + "/" + entryPath
		}
		items = append(items, s.newItem(info, entryPath, walkPath))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortItems(items, mediatypes.SortByName, mediatypes.SortAsc)

	result = &SearchResult{
		Path:       relativePath,
		Query:      query,
		Breadcrumb: buildBreadcrumb(relativePath),
	}
	result.Items, result.Pagination = paginate(items, page, pageSize)

	metrics.ScannerItemsReturned.WithLabelValues("search").Observe(float64(len(result.Items)))

	return result, nil
}

// paginate returns the requested page of items with its Pagination.
// A page past the end yields no items.
func paginate(items []MediaFile, page, pageSize int) ([]MediaFile, Pagination) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, MaxPageSize)

	p := Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(items),
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []MediaFile{}, p
	}
	end := min(start+pageSize, len(items))

	if end < len(items) {
		p.HasMore = true
		p.NextPage = page + 1
	}
	return items[start:end], p
}

// normalizePath cleans a listing path to "a/b" form. Paths that climb above
// the root are rejected in every path mode.
func normalizePath(relativePath string) (string, error) {
	p := path.Clean(strings.TrimPrefix(relativePath, "/"))
	if p == "." {
		return "", nil
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", os.ErrPermission
	}
	return p, nil
}

// validatePath ensures the path exists and is a directory
func (s *Scanner) validatePath(relativePath string) (string, error) {
	fullPath := s.root.Resolve("/" + relativePath)

	info, err := s.root.Fs().Stat(fullPath)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", os.ErrInvalid
	}

	return fullPath, nil
}

// processEntries converts directory entries to MediaFile items
func (s *Scanner) processEntries(entries []os.FileInfo, relativePath, fullPath, filterType string) []MediaFile {
	items := make([]MediaFile, 0, len(entries))

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		entryPath := entry.Name()
		if relativePath != "" {
			entryPath = relativePath + "/" + entry.Name()
		}

		item := s.newItem(entry, entryPath, path.Join(fullPath, entry.Name()))
		if shouldIncludeItem(item, filterType) {
			items = append(items, item)
		}
	}

	return items
}

// newItem builds the listing entry for info. fsPath is the entry's path on
// the root filesystem, used to count folder contents.
func (s *Scanner) newItem(info os.FileInfo, entryPath, fsPath string) MediaFile {
	var item MediaFile
	if info.IsDir() {
		item = MediaFile{
			Name:      info.Name(),
			Path:      entryPath,
			Type:      mediatypes.FileTypeFolder,
			ModTime:   info.ModTime(),
			ItemCount: s.countDirItems(fsPath),
		}
	} else {
		ext := strings.ToLower(path.Ext(info.Name()))
		item = MediaFile{
			Name:     info.Name(),
			Path:     entryPath,
			Type:     mediatypes.GetFileType(ext),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			MimeType: mimeTypeForExt(ext),
		}
	}
	item.ThumbnailURL = ThumbnailURL(entryPath)
	return item
}

// ThumbnailURL returns the thumbnail endpoint URL for a root-relative path.
func ThumbnailURL(relativePath string) string {
	return "/thumbnail?file=" + url.QueryEscape("/"+relativePath)
}

// shouldIncludeItem checks if an item passes the filter
func shouldIncludeItem(item MediaFile, filterType string) bool {
	if filterType == "" {
		return true
	}
	return item.Type == mediatypes.FileTypeFolder || string(item.Type) == filterType
}

// buildListing constructs the DirectoryListing response
func buildListing(relativePath string, items []MediaFile) *DirectoryListing {
	var parent string
	dirName := RootName
	if relativePath != "" {
		parent = path.Dir(relativePath)
		if parent == "." {
			parent = ""
		}
		dirName = path.Base(relativePath)
	}

	return &DirectoryListing{
		Path:       relativePath,
		Name:       dirName,
		Parent:     parent,
		Breadcrumb: buildBreadcrumb(relativePath),
		Items:      items,
	}
}

func (s *Scanner) countDirItems(dir string) int {
	entries, err := afero.ReadDir(s.root.Fs(), dir)
	if err != nil {
		return 0
	}

	count := 0
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), ".") {
			count++
		}
	}
	return count
}

func buildBreadcrumb(relativePath string) []PathPart {
	breadcrumb := []PathPart{
		{Name: RootName, Path: ""},
	}

	if relativePath == "" {
		return breadcrumb
	}

	currentPath := ""
	for _, part := range strings.Split(relativePath, "/") {
		if part == "" {
			continue
		}
		if currentPath == "" {
			currentPath = part
		} else {
			currentPath = currentPath + "/" + part
		}
		breadcrumb = append(breadcrumb, PathPart{
			Name: part,
			Path: currentPath,
		})
	}

	return breadcrumb
}

func sortItems(items []MediaFile, sortField mediatypes.SortField, sortOrder mediatypes.SortOrder) {
	slices.SortStableFunc(items, func(a, b MediaFile) int {
		// Folders come first in either order
		aFolder := a.Type == mediatypes.FileTypeFolder
		bFolder := b.Type == mediatypes.FileTypeFolder
		if aFolder != bFolder {
			if aFolder {
				return -1
			}
			return 1
		}

		c := compareItems(a, b, sortField)
		if sortOrder == mediatypes.SortDesc {
			return -c
		}
		return c
	})
}

// compareItems orders two entries ascending by field. Equal keys compare
// as 0 so the stable sort keeps directory order for them in both directions.
func compareItems(a, b MediaFile, sortField mediatypes.SortField) int {
	switch sortField {
	case mediatypes.SortByDate:
		return a.ModTime.Compare(b.ModTime)
	case mediatypes.SortBySize:
		return cmp.Compare(a.Size, b.Size)
	case mediatypes.SortByType:
		if c := cmp.Compare(a.Type, b.Type); c != 0 {
			return c
		}
	}
	return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

var extMimeTypes = map[string]string{
	".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png",
	".gif": "image/gif", ".bmp": "image/bmp", ".webp": "image/webp",
	".svg": "image/svg+xml", ".tiff": "image/tiff", ".tif": "image/tiff",
	".mp4": "video/mp4", ".mkv": "video/x-matroska", ".avi": "video/x-msvideo",
	".mov": "video/quicktime", ".wmv": "video/x-ms-wmv", ".flv": "video/x-flv",
	".webm": "video/webm", ".mpeg": "video/mpeg", ".mpg": "video/mpeg",
	".3gp": "video/3gpp",
}

func mimeTypeForExt(ext string) string {
	return extMimeTypes[ext]
}
