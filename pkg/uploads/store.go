// Package uploads stores user supplied files on local disk under
// randomized names and serves them back through the /uploads static route.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// imageExtensions is the allow-list for uploaded images.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// AllowedImage reports whether the filename carries an accepted image
// extension.
func AllowedImage(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Store writes uploads under a base directory.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// BaseDir returns the directory uploads are written to.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// SaveImage persists an uploaded image into subDir under a random name and
// returns the relative path suitable for the /uploads static route.
func (s *Store) SaveImage(file *multipart.FileHeader, subDir string) (string, error) {
	if !AllowedImage(file.Filename) {
		return "", fmt.Errorf("file type %q is not allowed, expected png, jpg, jpeg, gif or webp", filepath.Ext(file.Filename))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext

	dir := filepath.Join(s.baseDir, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(subDir, name)), nil
}

// Remove deletes a stored file by its relative path. Missing files are not
// an error so cleanup paths can call it unconditionally.
func (s *Store) Remove(relPath string) error {
	if relPath == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(relPath)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
