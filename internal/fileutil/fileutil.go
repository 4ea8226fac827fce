// Package fileutil provides filename and media-type helpers for files staged
// for gateway upload.
package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

var typesByExtension = map[string][]string{
	"video": {
		"avi", "wmv", "mpeg", "mp4", "m4v", "mov", "asf", "flv", "f4v", "rmvb", "rm", "3gp",
	},
	"music": {
		"mp3", "wav", "wma", "mp2", "flac", "midi", "ra", "ape", "aac", "cda",
	},
	"image": {
		"jpeg", "jpg", "png", "gif", "bmp", "tiff", "webp", "heif",
	},
	"application": {
		"rar", "zip", "7z", "xz", "gz", "exe", "dmg",
	},
}

// Title returns the file name without its extension.
func Title(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Name returns the file name including its extension.
func Name(path string) string {
	return filepath.Base(path)
}

// Extension returns the extension without the leading dot, or "".
func Extension(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// TypeByExtension classifies a path as video, music, image, application or
// unknown.
func TypeByExtension(path string) string {
	ext := strings.ToLower(Extension(path))
	if ext == "" {
		return "unknown"
	}
	for kind, exts := range typesByExtension {
		for _, e := range exts {
			if e == ext {
				return kind
			}
		}
	}
	return "unknown"
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// HalfFID returns the second half of a 64-character file id, or "" when the
// fid is malformed.
func HalfFID(fid string) string {
	if len(fid) != 64 {
		return ""
	}
	return fid[32:]
}
