package handlers

import (
	"errors"
	"net/http"
	"os"
	"path"
	"strconv"

	"media-gallery/internal/logging"
	"media-gallery/internal/media"
	"media-gallery/internal/mediatypes"

	"github.com/gorilla/mux"
)

// ListFiles returns one page of the directory listing for
// ?path=&sort=&order=&type=&page=&pageSize=.
func (h *Handlers) ListFiles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sortField := mediatypes.SortField(query.Get("sort"))
	if sortField == "" {
		sortField = mediatypes.SortByName
	}
	sortOrder := mediatypes.SortOrder(query.Get("order"))
	if sortOrder != mediatypes.SortDesc {
		sortOrder = mediatypes.SortAsc
	}

	listing, err := h.scanner.GetDirectory(query.Get("path"), media.ListOptions{
		SortField:  sortField,
		SortOrder:  sortOrder,
		FilterType: query.Get("type"),
		Page:       queryInt(query.Get("page")),
		PageSize:   queryInt(query.Get("pageSize")),
	})
	if err != nil {
		status := statusForFSError(err)
		logging.Debug("ListFiles %q: %v", query.Get("path"), err)
		writeJSONError(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, listing)
}

// Search finds folders and files below ?path= whose names contain ?query=.
// Results are paged with page and pageSize like ListFiles.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	result, err := h.scanner.Search(query.Get("path"), query.Get("query"),
		queryInt(query.Get("page")), queryInt(query.Get("pageSize")))
	if err != nil {
		status := statusForFSError(err)
		if errors.Is(err, media.ErrEmptyQuery) {
			status = http.StatusBadRequest
		}
		logging.Debug("Search %q in %q: %v", query.Get("query"), query.Get("path"), err)
		writeJSONError(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, result)
}

// queryInt parses an optional integer parameter; anything unparsable is 0,
// which the scanner treats as its default.
func queryInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// GetFile serves the raw bytes of a file under the media root. Range
// requests are handled by http.ServeContent.
func (h *Handlers) GetFile(w http.ResponseWriter, r *http.Request) {
	filePath := h.resolveVar(r)

	f, err := h.root.Fs().Open(filePath)
	if err != nil {
		http.Error(w, "File not found", statusForFSError(err))
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warn("failed to close %s: %v", filePath, err)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "Failed to access file", statusForFSError(err))
		return
	}
	if info.IsDir() {
		http.Error(w, "Path is a directory", http.StatusBadRequest)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// ClassifyResponse is the body of the classify endpoint.
type ClassifyResponse struct {
	Path string `json:"path"`
	media.Classification
}

// Classify reports how the thumbnail path would classify a file, so the
// viewer can choose between inline image, video player and gallery.
func (h *Handlers) Classify(w http.ResponseWriter, r *http.Request) {
	mediaPath := "/" + mux.Vars(r)["path"]
	class := h.classifier.Classify(h.resolveVar(r))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	writeJSON(w, ClassifyResponse{
		Path:           path.Clean(mediaPath),
		Classification: class,
	})
}

// resolveVar cleans the {path} route variable before resolving it, so these
// endpoints stay inside the media root in every path mode.
func (h *Handlers) resolveVar(r *http.Request) string {
	return h.root.Resolve(path.Clean("/" + mux.Vars(r)["path"]))
}

func statusForFSError(err error) int {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, os.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, os.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
