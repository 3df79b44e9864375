package domain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/visqa/internal/ports"
)

type ArchiveService struct {
	client ports.S3Client
}

// NewArchiveService — зеркало артефактов сессии в S3.
func NewArchiveService(client ports.S3Client) *ArchiveService {
	return &ArchiveService{client: client}
}

// ObjectKey — путь в бакете
func (s *ArchiveService) ObjectKey(sessionID, filename string) string {
	date := time.Now().Format("2006-01-02")
	clean := filepath.Base(filename)
	return fmt.Sprintf("sessions/%s/%s/%s", sessionID, date, clean)
}

func (s *ArchiveService) SaveFile(ctx context.Context, sessionID, filePath, contentType string) (string, error) {
	if sessionID == "" {
		return "", fmt.Errorf("sessionID required")
	}

	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat artifact: %w", err)
	}

	key := s.ObjectKey(sessionID, filePath)
	return s.client.PutObject(ctx, key, f, info.Size(), contentType)
}
