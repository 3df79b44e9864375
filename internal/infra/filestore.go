package infra

import (
	"fmt"
	"os"
	"path/filepath"
)

// Фиксированные имена: новая запись/ответ перезаписывают старые,
// файлы в scratch-директории не накапливаются.
const (
	recordedAudioName = "recorded_audio.wav"
	answerAudioName   = "answer_audio.mp3"
)

// FileStore — scratch-директория для артефактов одной сессии.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "temp_files"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) Dir() string {
	return f.dir
}

// SaveImage кладёт картинку под её же (очищенным) именем.
func (f *FileStore) SaveImage(filename string, data []byte) (string, error) {
	clean := filepath.Base(filename)
	if clean == "" || clean == "." || clean == string(filepath.Separator) {
		return "", fmt.Errorf("invalid image filename %q", filename)
	}

	path := filepath.Join(f.dir, clean)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

func (f *FileStore) SaveRecording(data []byte) (string, error) {
	path := filepath.Join(f.dir, recordedAudioName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write recording: %w", err)
	}
	return path, nil
}

func (f *FileStore) AnswerAudioPath() string {
	return filepath.Join(f.dir, answerAudioName)
}

func (f *FileStore) Resolve(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Cleanup выносит всё содержимое, но оставляет саму директорию.
func (f *FileStore) Cleanup() error {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(f.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}
