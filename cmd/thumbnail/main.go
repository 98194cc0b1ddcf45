package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"media-gallery/internal/filesystem"
	"media-gallery/internal/logging"
	"media-gallery/internal/media"

	"github.com/spf13/afero"
	"golang.org/x/term"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: file descriptors fit in int
	os.Exit(run(afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr, stdoutTTY))
}

// run renders one thumbnail and returns the process exit code.
func run(hostFs afero.Fs, args []string, stdout, stderr io.Writer, stdoutTTY bool) int {
	fset := flag.NewFlagSet("thumbnail", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() { printUsage(fset) }

	rootDir := fset.String("root", envOr("MEDIA_DIR", "."), "media root directory")
	size := fset.Int("size", media.DefaultThumbnailSize, "bounding box in pixels")
	out := fset.String("o", "", "write the JPEG to this file instead of stdout")
	mode := fset.String("mode", string(filesystem.PathModeContained), "path mode: contained or legacy")
	placeholderDir := fset.String("placeholders", "", "directory with placeholder overrides")
	verbose := fset.Bool("v", false, "debug logging")

	if err := fset.Parse(args); err != nil {
		return exitUsage
	}
	if fset.NArg() != 1 {
		printUsage(fset)
		return exitUsage
	}
	file := fset.Arg(0)

	if *verbose {
		logging.SetLevel(logging.LevelDebug)
	} else {
		logging.SetLevel(logging.LevelWarn)
	}

	if *out == "" && stdoutTTY {
		fmt.Fprintln(stderr, "Error: refusing to write JPEG data to a terminal; use -o or redirect stdout")
		return exitUsage
	}

	pathMode, err := filesystem.ParsePathMode(*mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: unknown path mode %q\n", sanitizeArg(*mode))
		return exitUsage
	}

	dir, err := filepath.Abs(*rootDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid root: %v\n", err)
		return exitError
	}
	root := filesystem.NewRoot(hostFs, dir, pathMode)

	placeholders, err := media.LoadPlaceholders(hostFs, *placeholderDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	renderer, err := media.NewRenderer(root.Fs(), placeholders, media.RendererConfig{})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	classifier := media.NewClassifier(media.NewMimeDetector(root.Fs()))

	resolved := root.Resolve(file)
	class := classifier.Classify(resolved)
	thumb := renderer.Render(media.ThumbnailRequest{Path: resolved, TargetSize: *size}, class)

	if *out != "" {
		if err := afero.WriteFile(hostFs, *out, thumb.Data, 0o644); err != nil {
			fmt.Fprintf(stderr, "Error: failed to write %s: %v\n", *out, err)
			return exitError
		}
	} else if _, err := stdout.Write(thumb.Data); err != nil {
		fmt.Fprintf(stderr, "Error: failed to write output: %v\n", err)
		return exitError
	}

	fmt.Fprintf(stderr, "%s: %s via %s, %dx%d, %d bytes\n",
		sanitizeArg(file), class.Category, thumb.Source, thumb.Width, thumb.Height, len(thumb.Data))
	return exitOK
}

// sanitizeArg replaces control characters in user input before it is echoed.
func sanitizeArg(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '_'
		}
		return r
	}, s)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printUsage(fset *flag.FlagSet) {
	w := fset.Output()
	fmt.Fprintln(w, "Media Gallery Thumbnail Renderer")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage: thumbnail [flags] FILE")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "FILE is resolved against -root exactly like the file parameter of /thumbnail.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Flags:")
	fset.PrintDefaults()
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MEDIA_DIR - default for -root")
}
