// Package storage is the selfie blob store: backends accept an object body
// and hand back a stable public URL that gets persisted on the attendance
// record.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

type Provider interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) (url string, err error)
}

// SelfieKey builds the object key for an uploaded selfie:
// selfies/<unix-timestamp>_<original filename>.
func SelfieKey(now time.Time, filename string) string {
	return fmt.Sprintf("selfies/%d_%s", now.Unix(), sanitizeFilename(filename))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "selfie"
	}
	return b.String()
}
