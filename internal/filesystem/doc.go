/*
Package filesystem owns access to the media root.

# Media root

A Root turns the untrusted "file" request parameter into a path on an
afero.Fs. Two modes exist:

  - contained (default): the path is cleaned against "/" and served from an
    afero.BasePathFs rooted at MEDIA_DIR, so "../../etc/passwd" resolves to
    "/etc/passwd" inside the media root.
  - legacy: the path is appended to MEDIA_DIR as-is, the way the original
    gallery built paths. ".." segments escape the root. Only use this behind
    a proxy that already normalizes paths.

	root := filesystem.NewRoot(afero.NewOsFs(), "/media", filesystem.PathModeContained)
	p := root.Resolve("/holiday/../beach.jpg") // "/beach.jpg"
	f, err := root.Fs().Open(p)

# NFS retries

RetryFs wraps any afero.Fs and retries Stat and Open on ESTALE with
exponential backoff (defaults: 3 retries, 50ms initial, 500ms cap). Other
errors fail immediately. Retry metrics go through the Observer set with
SetObserver; the metrics package provides the Prometheus implementation.
*/
package filesystem
