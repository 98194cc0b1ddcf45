// Package mediatypes holds the dependency-free types shared by the media,
// handlers and metrics packages.
//
// Two vocabularies live here. Category and ImageFormat describe what the
// content classifier found by sniffing a file:
//
//	mediatypes.CategoryForMIME("image/png")  // CategoryImage
//	mediatypes.FormatForMIME("image/png")    // FormatPNG
//	mediatypes.FormatForMIME("image/webp")   // FormatGeneric
//
// FileType, SortField and SortOrder describe directory listing entries, whose
// type is guessed from the extension because sniffing every entry of a large
// folder would be too slow:
//
//	mediatypes.GetFileType(".mp4") // FileTypeVideo
package mediatypes
