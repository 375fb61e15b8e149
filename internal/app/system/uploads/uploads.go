// internal/app/system/uploads/uploads.go

// Package uploads persists proof-of-residence images on local disk and
// serves them back under a URL prefix. It enforces the intake form's
// upload contract: jpg/jpeg/png only (case-sensitive extension match, as
// the original service did) and at most 4 MiB.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxImageSize is the largest accepted upload.
const MaxImageSize = 4 << 20 // 4 MiB

var (
	ErrInvalidFormat = errors.New("image must be jpg, jpeg or png")
	ErrTooLarge      = errors.New("image exceeds the 4 MiB limit")
)

var allowedExtensions = []string{".jpg", ".jpeg", ".png"}

// Store writes uploaded images under a local directory and returns
// references of the form "<urlPrefix>/<stored name>".
type Store struct {
	dir       string
	urlPrefix string
}

// New creates a Store rooted at dir. The directory is created lazily on
// the first successful validation.
func New(dir, urlPrefix string) *Store {
	return &Store{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Save validates and persists one uploaded image and returns its
// reference. size is the declared upload size (from the multipart
// header); nothing is written to disk when validation fails.
func (s *Store) Save(name string, r io.Reader, size int64) (string, error) {
	if !hasAllowedExtension(name) {
		return "", ErrInvalidFormat
	}
	if size > MaxImageSize {
		return "", ErrTooLarge
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// Timestamp prefix plus a short uuid keeps names collision-resistant
	// even for same-millisecond uploads of the same file.
	stored := fmt.Sprintf("%d-%s-%s",
		time.Now().UnixMilli(), uuid.New().String()[:8], sanitizeFilename(name))
	dest := filepath.Join(s.dir, stored)

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	// Guard against a lying size header: copy at most one byte past the
	// limit and drop the file if it is reached.
	n, err := io.Copy(f, io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if n > MaxImageSize {
		_ = os.Remove(dest)
		return "", ErrTooLarge
	}

	return s.urlPrefix + "/" + stored, nil
}

// Handler serves the stored images so the saved references resolve.
func (s *Store) Handler() http.Handler {
	return http.StripPrefix(s.urlPrefix+"/", http.FileServer(http.Dir(s.dir)))
}

func hasAllowedExtension(name string) bool {
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// sanitizeFilename removes or replaces characters that could be
// problematic in filenames, keeping just the base name.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)

	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
