package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"atelier-rental-backend/internal/logger"
)

// LocalStorageService stores files on the local filesystem under a base
// directory and serves them through the API's /files routes.
type LocalStorageService struct {
	baseDir string
	baseURL string
}

func NewLocalStorageService(baseURL, baseDir string) (*LocalStorageService, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorageService{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// cleanKey rejects path traversal and absolute keys.
func (s *LocalStorageService) cleanKey(key string) (string, error) {
	clean := filepath.Clean(key)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}
	return filepath.Join(s.baseDir, clean), nil
}

func (s *LocalStorageService) SaveFile(ctx context.Context, key string, reader io.Reader) (int64, error) {
	path, err := s.cleanKey(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, reader)
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	logger.Debug("Stored file", "key", key, "bytes", n)
	return n, nil
}

func (s *LocalStorageService) ReadFile(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.cleanKey(key)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *LocalStorageService) DeleteFile(ctx context.Context, key string) error {
	path, err := s.cleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *LocalStorageService) FileExists(ctx context.Context, key string) (bool, int64, error) {
	path, err := s.cleanKey(key)
	if err != nil {
		return false, 0, err
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *LocalStorageService) PublicURL(key string) string {
	return fmt.Sprintf("%s/files/%s", s.baseURL, key)
}
