package mediatypes

import (
	"testing"
)

func TestCategoryForMIME(t *testing.T) {
	tests := []struct {
		mime string
		want Category
	}{
		{"image/jpeg", CategoryImage},
		{"image/png", CategoryImage},
		{"image/webp", CategoryImage},
		{"IMAGE/GIF", CategoryImage},
		{"video/mp4", CategoryVideo},
		{"video/quicktime", CategoryVideo},
		{"text/plain; charset=utf-8", CategoryOther},
		{"application/octet-stream", CategoryOther},
		{"inode/directory", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			if got := CategoryForMIME(tt.mime); got != tt.want {
				t.Errorf("CategoryForMIME(%q) = %v, want %v", tt.mime, got, tt.want)
			}
		})
	}
}

func TestFormatForMIME(t *testing.T) {
	tests := []struct {
		mime string
		want ImageFormat
	}{
		{"image/jpeg", FormatJPEG},
		{"image/png", FormatPNG},
		{"image/bmp", FormatBMP},
		{"image/x-ms-bmp", FormatBMP},
		{"image/png; foo=bar", FormatPNG},
		{"image/gif", FormatGeneric},
		{"image/webp", FormatGeneric},
		{"image/svg+xml", FormatGeneric},
		{"video/mp4", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			if got := FormatForMIME(tt.mime); got != tt.want {
				t.Errorf("FormatForMIME(%q) = %q, want %q", tt.mime, got, tt.want)
			}
		})
	}
}

func TestGetFileType(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want FileType
	}{
		{name: "JPEG image", ext: ".jpg", want: FileTypeImage},
		{name: "BMP image", ext: ".bmp", want: FileTypeImage},
		{name: "MP4 video", ext: ".mp4", want: FileTypeVideo},
		{name: "3GP video", ext: ".3gp", want: FileTypeVideo},
		{name: "Unknown extension", ext: ".xyz", want: FileTypeOther},
		{name: "Empty extension", ext: "", want: FileTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetFileType(tt.ext); got != tt.want {
				t.Errorf("GetFileType(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}
