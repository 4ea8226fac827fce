package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameParts(t *testing.T) {
	tests := []struct {
		path      string
		wantTitle string
		wantName  string
		wantExt   string
	}{
		{"/tmp/video.mp4", "video", "video.mp4", "mp4"},
		{"photo.JPG", "photo", "photo.JPG", "JPG"},
		{"archive.tar.gz", "archive.tar", "archive.tar.gz", "gz"},
		{"/var/data/noext", "noext", "noext", ""},
		{"dir/.hidden", ".hidden", ".hidden", "hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.wantTitle, Title(tt.path))
			assert.Equal(t, tt.wantName, Name(tt.path))
			assert.Equal(t, tt.wantExt, Extension(tt.path))
		})
	}
}

func TestTypeByExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"clip.mp4", "video"},
		{"song.FLAC", "music"},
		{"pic.jpeg", "image"},
		{"bundle.zip", "application"},
		{"notes.txt", "unknown"},
		{"noext", "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeByExtension(tt.path), tt.path)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	assert.True(t, Exists(path))
	assert.False(t, Exists(filepath.Join(dir, "missing")))
	assert.False(t, Exists(dir)) // directories do not count
}

func TestHalfFID(t *testing.T) {
	fid := strings.Repeat("a", 32) + strings.Repeat("b", 32)
	assert.Equal(t, strings.Repeat("b", 32), HalfFID(fid))

	assert.Empty(t, HalfFID("short"))
	assert.Empty(t, HalfFID(strings.Repeat("a", 65)))
}
