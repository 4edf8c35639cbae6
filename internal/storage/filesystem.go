package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxImageBytes caps uploaded images.
const MaxImageBytes = 5 << 20

var (
	ErrTooLarge        = errors.New("storage: file exceeds 5 MiB")
	ErrUnsupportedType = errors.New("storage: only jpeg, png, webp and gif images are accepted")
	ErrEmpty           = errors.New("storage: file is empty")
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// FileStore keeps uploaded images on the local filesystem and hands out the
// public URL they are served under.
type FileStore struct {
	basePath string
	baseURL  string
	now      func() time.Time
}

// NewFileStore initializes a FileStore rooted at basePath. Files are served
// under baseURL.
func NewFileStore(basePath, baseURL string) (*FileStore, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("storage: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure base path: %w", err)
	}
	return &FileStore{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}, nil
}

// BasePath returns the configured root directory.
func (s *FileStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

// Stored describes a persisted upload.
type Stored struct {
	Key         string
	URL         string
	ContentType string
	Size        int
}

// SaveImage sniffs data, rejects anything but the accepted image types and
// writes it under images/<owner>/<yyyy>/<mm>/.
func (s *FileStore) SaveImage(ctx context.Context, ownerID string, data []byte) (*Stored, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data) > MaxImageBytes {
		return nil, ErrTooLarge
	}
	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedType
	}
	now := s.now().UTC()
	key := path.Join("images", ownerID, now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
	cleanKey, err := s.Write(ctx, key, data)
	if err != nil {
		return nil, err
	}
	return &Stored{Key: cleanKey, URL: s.URL(cleanKey), ContentType: contentType, Size: len(data)}, nil
}

// URL returns the public address of key.
func (s *FileStore) URL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}

// Write persists the provided bytes at the given relative key and returns the
// canonicalized storage key. Keys are cleaned to prevent directory traversal.
func (s *FileStore) Write(ctx context.Context, key string, data []byte) (string, error) {
	if s == nil {
		return "", errors.New("storage: no store configured")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cleanKey, err := sanitizeKey(key)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(cleanKey))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: ensure directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write file: %w", err)
	}
	return cleanKey, nil
}

// Handler serves stored files read-only. Directory listings are refused.
func (s *FileStore) Handler() http.Handler {
	fs := http.FileServer(http.Dir(s.basePath))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		fs.ServeHTTP(w, r)
	})
}

// sanitizeKey normalizes a key and prevents escaping the storage root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("storage: key is required")
	}
	key = strings.ReplaceAll(key, "\\", "/")
	key = strings.TrimPrefix(key, "./")
	key = strings.TrimLeft(key, "/")
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New("storage: invalid key")
	}
	return cleaned, nil
}
