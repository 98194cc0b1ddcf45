// Package handlers provides the HTTP handlers of the media gallery.
//
// It includes handlers for:
//   - Thumbnails (/thumbnail and the /thumbnail.php alias)
//   - Directory listing, raw file access and content classification
//   - Health, readiness, liveness and version endpoints
//   - The Prometheus metrics endpoint
//
// The thumbnail handler never fails: every request gets a 200 with a JPEG
// body, falling back to placeholder art when the path is not a decodable
// image.
package handlers
