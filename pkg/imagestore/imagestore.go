package imagestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is the port for product image storage. Implementations return a URL
// on upload; the rest of the system only ever hands that URL back to Delete.
type Store interface {
	Upload(data []byte, filename string) (string, error)
	Delete(url string) error
}

// Local stores images on the local filesystem and serves them under baseURL.
type Local struct {
	dir     string
	baseURL string
}

// NewLocal creates the storage directory if needed.
func NewLocal(dir, baseURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Local{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (l *Local) Upload(data []byte, filename string) (string, error) {
	name := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return l.baseURL + "/" + name, nil
}

func (l *Local) Delete(url string) error {
	name := filepath.Base(url)
	// Refuse anything that does not look like one of our generated names.
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return fmt.Errorf("unrecognized image url %q", url)
	}
	return os.Remove(filepath.Join(l.dir, name))
}
