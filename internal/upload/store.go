// Package upload persists uploaded images on disk and hands back the
// reference path stored in the database and served under /uploads/.
package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/xid"
)

// MaxImageSize is the upload cap: 10MB per image.
const MaxImageSize = 10 << 20

// Store writes images beneath a base directory, one subdirectory per user:
//
//	{base}/users/{userID}/{field}-{xid}{ext}
//
// The returned reference path is relative to the base and always uses
// forward slashes, so it can be stored and served as a URL path.
type Store struct {
	baseDir string
}

// NewStore creates the base directory if needed and returns a Store.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: creating base dir %s: %w", baseDir, err)
	}
	return &Store{baseDir: baseDir}, nil
}

// BaseDir returns the directory the store writes under, for the static
// file server mount.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// Save streams src to a new file for the given user and returns the
// reference path. field names the upload kind (profileImage, bannerImage,
// postImage) and ext is the original filename's extension.
func (s *Store) Save(userID int64, field, ext string, src io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, "users", fmt.Sprintf("%d", userID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("upload: creating user dir: %w", err)
	}

	name := field + "-" + xid.New().String() + strings.ToLower(ext)
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("upload: creating file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("upload: writing file: %w", err)
	}

	return fmt.Sprintf("uploads/users/%d/%s", userID, name), nil
}
