package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on the local file system. Files are served
// back by the API under publicBaseURL.
type LocalStorage struct {
	basePath      string
	publicBaseURL string
}

// NewLocalStorage creates the base directory if needed and returns a LocalStorage.
func NewLocalStorage(basePath, publicBaseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{
		basePath:      basePath,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// resolve joins path under basePath and refuses anything that escapes it.
func (s *LocalStorage) resolve(path string) (string, error) {
	full := filepath.Join(s.basePath, filepath.FromSlash(path))
	rel, err := filepath.Rel(s.basePath, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage path %q", path)
	}
	return full, nil
}

func (s *LocalStorage) Save(ctx context.Context, path string, content io.Reader, contentType string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(file, content); err != nil {
		_ = file.Close()
		_ = os.Remove(fullPath)
		return fmt.Errorf("failed to write file content: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(fullPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

func (s *LocalStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, path string) error {
	fullPath, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) URL(path string) string {
	return s.publicBaseURL + "/" + strings.TrimLeft(path, "/")
}
