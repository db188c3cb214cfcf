package edgekit

import (
	"crypto/rand"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"
)

// UploadPrefix is the key namespace for file uploads.
const UploadPrefix = "uploads/"

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// randomToken returns n random base36 characters.
func randomToken(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = base36[int(b)%len(base36)]
	}
	return string(buf)
}

// UploadKey derives a unique key for a multipart upload:
// uploads/<unix-millis>-<6-char-base36>.<original-extension>.
// Uniqueness comes from the timestamp+token composition and is not
// checked against the store.
func UploadKey(filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	return fmt.Sprintf("%s%d-%s.%s", UploadPrefix, time.Now().UnixMilli(), randomToken(6), ext)
}

// RawUploadKey derives the key for a raw-body upload:
// uploads/<unix-millis>-<filename>.
func RawUploadKey(filename string) string {
	return fmt.Sprintf("%s%d-%s", UploadPrefix, time.Now().UnixMilli(), filename)
}

// MediaKey derives the key for a media upload:
// <unix-millis>-<original-filename>.
func MediaKey(filename string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filename)
}

// IsValidKey validates an object key. A key must:
//   - be non-empty, relative, and not end with "/"
//   - contain no ".." or "." segments and no empty segments
//   - contain no backslash, null byte, or control characters
//   - be valid UTF-8
//
// Unlike filesystem paths, spaces are allowed: media keys embed
// user-supplied filenames verbatim.
func IsValidKey(k string) bool {
	if k == "" || k == "/" || k == "." {
		return false
	}

	if k[0] == '/' || strings.HasSuffix(k, "/") {
		return false
	}

	if strings.Contains(k, "//") {
		return false
	}

	if strings.Contains(k, "\\") {
		return false
	}

	if !utf8.ValidString(k) {
		return false
	}

	for _, seg := range strings.Split(k, "/") {
		if seg == "." || seg == ".." {
			return false
		}
	}

	for _, r := range k {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}

	return true
}
