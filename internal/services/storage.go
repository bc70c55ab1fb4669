package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StorageService archives uploaded resumes on disk for later inspection.
// Archiving is best-effort; analysis runs from the in-memory upload either
// way.
type StorageService interface {
	SaveResume(data []byte) (string, error)
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveResume(data []byte) (string, error) {
	filename := fmt.Sprintf("resume_%s.pdf", uuid.New().String())
	filePath := filepath.Join(s.uploadPath, filename)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save resume: %w", err)
	}

	return filePath, nil
}
