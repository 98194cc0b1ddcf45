package filesystem

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// PathMode controls how a request path is joined onto the media root.
type PathMode string

const (
	// PathModeContained cleans the request path and serves it from a
	// base-path filesystem rooted at the media directory, so ".." segments
	// can never leave the root.
	PathModeContained PathMode = "contained"

	// PathModeLegacy concatenates the request path onto the media root
	// verbatim. ".." segments are honored and can escape the root.
	PathModeLegacy PathMode = "legacy"
)

// ParsePathMode parses the PATH_MODE setting. Empty means contained.
func ParsePathMode(s string) (PathMode, error) {
	switch PathMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PathModeContained:
		return PathModeContained, nil
	case PathModeLegacy:
		return PathModeLegacy, nil
	default:
		return "", fmt.Errorf("unknown path mode %q (want %q or %q)", s, PathModeContained, PathModeLegacy)
	}
}

// Root is the media root: the directory every MediaPath is resolved against.
type Root struct {
	dir  string
	mode PathMode
	fs   afero.Fs
}

// NewRoot builds a Root over base. In contained mode the returned Fs is a
// BasePathFs, and resolved paths are relative to dir; in legacy mode the
// Fs is base itself and resolved paths are full paths.
func NewRoot(base afero.Fs, dir string, mode PathMode) *Root {
	dir = filepath.Clean(dir)

	fs := base
	if mode != PathModeLegacy {
		mode = PathModeContained
		fs = afero.NewBasePathFs(base, dir)
	}

	return &Root{
		dir:  dir,
		mode: mode,
		fs:   fs,
	}
}

// Fs returns the filesystem that resolved paths refer to.
func (r *Root) Fs() afero.Fs {
	return r.fs
}

// Dir returns the cleaned media root directory.
func (r *Root) Dir() string {
	return r.dir
}

// Mode returns the path mode in effect.
func (r *Root) Mode() PathMode {
	return r.mode
}

// Resolve turns an untrusted MediaPath into a path on Fs().
func (r *Root) Resolve(mediaPath string) string {
	if r.mode == PathModeLegacy {
		return r.dir + mediaPath
	}
	return path.Clean("/" + filepath.ToSlash(mediaPath))
}
