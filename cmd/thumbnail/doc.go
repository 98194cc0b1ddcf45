// Command thumbnail renders a single thumbnail from the command line using the
// same classifier and renderer as the gallery server.
//
// Usage:
//
//	thumbnail [-root DIR] [-size N] [-o out.jpg] [-mode contained|legacy] FILE
//
// FILE is interpreted like the file query parameter of /thumbnail: it is
// resolved against the media root, and anything that is not a decodable
// JPEG, PNG or BMP yields the matching placeholder. The JPEG is written to
// stdout unless -o is given. Writing binary data to an interactive terminal
// is refused.
//
// A one-line summary (category, raster source, dimensions, size) goes to
// stderr.
//
// Environment:
//
//	MEDIA_DIR - default for -root
package main
