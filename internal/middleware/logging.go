package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"media-gallery/internal/logging"
)

const serviceName = "MediaGallery/1.0"

// w3cFields is the #Fields directive. x-category and x-source carry the
// thumbnail classification and the raster it was rendered from; they are "-"
// for every other request.
const w3cFields = "date time c-ip cs-method cs-uri-stem cs-uri-query sc-status sc-bytes time-taken sc(Content-Type) x-category x-source cs(User-Agent)"

// statusRecorder captures the status code and body size of a response.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
	wrote  bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.wrote {
		return
	}
	rw.status = code
	rw.wrote = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wrote = true
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += int64(n)
	return n, err
}

// renderNote is filled in by the thumbnail handler and read back when the
// access line is written.
type renderNote struct {
	category string
	source   string
}

type renderNoteKey struct{}

// NoteRender records the outcome of a thumbnail render on the request so the
// access log can report it. It is a no-op when the request did not pass
// through Logger.
func NoteRender(r *http.Request, category, source string) {
	if note, ok := r.Context().Value(renderNoteKey{}).(*renderNote); ok {
		note.category = category
		note.source = source
	}
}

// LoggingConfig holds configuration for the logging middleware
type LoggingConfig struct {
	// StaticExtensions identify static asset requests by path suffix.
	StaticExtensions []string
	LogStaticFiles   bool
	LogHealthChecks  bool
}

// DefaultLoggingConfig logs API, thumbnail and health requests but not the
// viewer page's static assets.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		StaticExtensions: []string{".css", ".js", ".ico", ".html", ".svg", ".woff", ".woff2", ".ttf"},
		LogHealthChecks:  true,
	}
}

var healthCheckPaths = map[string]bool{
	"/healthz": true,
	"/livez":   true,
	"/readyz":  true,
}

func (c LoggingConfig) skip(path string) bool {
	if healthCheckPaths[path] {
		return !c.LogHealthChecks
	}
	if c.LogStaticFiles {
		return false
	}
	if path == "/" {
		return true
	}
	lower := strings.ToLower(path)
	for _, ext := range c.StaticExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Logger returns middleware that writes one W3C Extended Log Format line per
// request. The #Software and #Fields directives are written when the
// middleware is created.
func Logger(config LoggingConfig) func(http.Handler) http.Handler {
	logging.Println("#Software: " + serviceName)
	logging.Println("#Fields: " + w3cFields)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.skip(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			note := &renderNote{}
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), renderNoteKey{}, note)))

			logging.Println(formatAccessLine(r, rec, note, start, time.Since(start)))
		})
	}
}

func formatAccessLine(r *http.Request, rec *statusRecorder, note *renderNote, start time.Time, took time.Duration) string {
	ts := start.UTC()
	return fmt.Sprintf("%s %s %s %s %s %s %d %d %d %s %s %s %s",
		ts.Format("2006-01-02"),
		ts.Format("15:04:05"),
		w3cValue(clientIP(r)),
		w3cValue(r.Method),
		w3cValue(r.URL.Path),
		w3cValue(r.URL.RawQuery),
		rec.status,
		rec.bytes,
		took.Milliseconds(),
		w3cValue(rec.Header().Get("Content-Type")),
		w3cValue(note.category),
		w3cValue(note.source),
		w3cValue(r.UserAgent()),
	)
}

// w3cValue makes s safe for a single log field. Line breaks become spaces
// and other control characters are dropped, so a request cannot forge log
// lines or emit terminal escapes. Empty values are "-"; values containing
// spaces or quotes are quoted with "" escaping.
func w3cValue(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r':
			return ' '
		case r == '\t':
			return r
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)

	if s == "" {
		return "-"
	}
	if strings.ContainsAny(s, " \t\"") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// clientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
