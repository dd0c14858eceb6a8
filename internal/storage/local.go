package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider writes objects under a root directory; development only.
type LocalProvider struct {
	RootPath string
	BaseURL  string
}

func NewLocalProvider(root, baseURL string) *LocalProvider {
	_ = os.MkdirAll(root, 0755)
	return &LocalProvider{
		RootPath: root,
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

func (l *LocalProvider) Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) (string, error) {
	path := filepath.Join(l.RootPath, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", l.BaseURL, key), nil
}
