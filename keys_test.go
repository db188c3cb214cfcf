package edgekit_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/sagarc03/edgekit"
	"github.com/stretchr/testify/assert"
)

func TestUploadKey(t *testing.T) {
	t.Parallel()

	key := edgekit.UploadKey("photo.PNG")

	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.Regexp(t, regexp.MustCompile(`^uploads/\d+-[0-9a-z]{6}\.PNG$`), key)
}

func TestUploadKey_NoExtension(t *testing.T) {
	t.Parallel()

	key := edgekit.UploadKey("README")

	// Extension slot stays, matching the source format even when empty.
	assert.Regexp(t, regexp.MustCompile(`^uploads/\d+-[0-9a-z]{6}\.$`), key)
}

func TestUploadKey_Unique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for range 50 {
		key := edgekit.UploadKey("a.txt")
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestRawUploadKey(t *testing.T) {
	t.Parallel()

	key := edgekit.RawUploadKey("notes.txt")
	assert.Regexp(t, regexp.MustCompile(`^uploads/\d+-notes\.txt$`), key)
}

func TestMediaKey(t *testing.T) {
	t.Parallel()

	key := edgekit.MediaKey("beach day.jpg")
	assert.Regexp(t, regexp.MustCompile(`^\d+-beach day\.jpg$`), key)
}

func TestIsValidKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		valid bool
	}{
		{"simple key", "uploads/123-abc.png", true},
		{"key with spaces", "1700000000000-beach day.jpg", true},
		{"nested key", "a/b/c.txt", true},
		{"dots inside filename", "uploads/my..file.png", true},
		{"empty", "", false},
		{"root", "/", false},
		{"dot", ".", false},
		{"absolute", "/etc/passwd", false},
		{"trailing slash", "uploads/", false},
		{"empty segment", "uploads//x.png", false},
		{"traversal segment", "uploads/../secret", false},
		{"dot segment", "uploads/./x.png", false},
		{"backslash", `uploads\x.png`, false},
		{"control character", "uploads/a\x01b", false},
		{"null byte", "uploads/a\x00b", false},
		{"invalid utf8", "uploads/\xff.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.valid, edgekit.IsValidKey(tt.key))
		})
	}
}
