// Package internal holds helpers shared by the database backends: the
// opaque list cursor codec and LIKE-pattern escaping.
package internal

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Cursor is a keyset pagination position: the (uploaded_at, key) pair
// of the last item on the previous page. It round-trips through an
// opaque base64url token so callers cannot depend on its layout.
type Cursor struct {
	UploadedAt time.Time
	Key        string
}

// EncodeCursor packs a position into an opaque token.
func EncodeCursor(uploadedAt time.Time, key string) string {
	raw := uploadedAt.UTC().Format(time.RFC3339Nano) + "|" + key
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor unpacks a token produced by EncodeCursor. An empty token
// decodes to the zero Cursor (first page).
func DecodeCursor(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode cursor: invalid encoding: %w", err)
	}

	ts, key, found := strings.Cut(string(raw), "|")
	if !found {
		return Cursor{}, fmt.Errorf("decode cursor: invalid format: missing separator")
	}

	if key == "" {
		return Cursor{}, fmt.Errorf("decode cursor: empty key")
	}

	uploadedAt, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Cursor{}, fmt.Errorf("decode cursor: invalid timestamp: %w", err)
	}

	return Cursor{UploadedAt: uploadedAt, Key: key}, nil
}

// EscapeLikePattern escapes %, _ and \ so a prefix can be used in a
// LIKE ... ESCAPE '\' clause without matching as a pattern.
func EscapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
