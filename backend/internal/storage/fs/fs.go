package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage is the local media store: original upload files plus the derived
// thumbnails generated on demand. Paths handed out are relative to the root
// so they can be cooked into URLs by the caller.
type Storage struct {
	rootPath string
}

func New(rootPath string) (*Storage, error) {
	// filepath.Clean keeps "media/../" style roots from escaping.
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media root %s: %w", p, err)
	}
	if err := os.MkdirAll(filepath.Join(p, "optimized"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create optimized dir: %w", err)
	}

	return &Storage{rootPath: p}, nil
}

// Read opens a stored file by its relative path.
func (s *Storage) Read(relativePath string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.rootPath, filepath.Clean("/"+relativePath))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("media file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open media file: %w", err)
	}
	return file, nil
}

// SaveOptimized writes a derived thumbnail and returns its relative path.
// The name is fully determined by (upload, width, height, extension), so a
// concurrent writer producing the same thumbnail lands on the same file.
func (s *Storage) SaveOptimized(uploadId int64, width, height int, extension string, data io.Reader) (string, error) {
	cleanExt := filepath.Clean(extension)
	relativePath := filepath.Join("optimized", fmt.Sprintf("%d_%dx%d%s", uploadId, width, height, cleanExt))
	fullPath := filepath.Join(s.rootPath, relativePath)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create thumbnail file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, data); err != nil {
		os.Remove(fullPath) // best effort
		return "", fmt.Errorf("failed to write thumbnail file: %w", err)
	}

	return relativePath, nil
}
