// Package media classifies paths under the media root and renders
// thumbnails for them.
//
// Classification is by content: the Classifier sniffs the leading bytes of a
// file and maps the detected MIME type to image, video or other. The file name
// and extension are never consulted.
//
// The Renderer turns a classified path into a JPEG that fits a square
// bounding box with the source aspect ratio preserved:
//   - JPEG, PNG and BMP images are decoded and resampled bilinearly
//   - other images, and images that fail to decode, use the default placeholder
//   - videos use the play placeholder
//   - directories, missing paths and everything else use the folder placeholder
//
// Rendering never fails. Thumbnails are neither cached nor written to disk.
//
// The Scanner produces directory listings for the gallery views.
package media
