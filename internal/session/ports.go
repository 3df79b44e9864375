package session

import "context"

// === Интерфейсы внешних сервисов ===

type STTClient interface {
	Transcribe(ctx context.Context, filePath string) (string, error) // голос → текст
}

type VQAClient interface {
	Answer(ctx context.Context, imagePath, question string) (string, error) // картинка + вопрос → ответ
}

type TTSClient interface {
	Synthesize(ctx context.Context, text, outPath string) error // текст → голос (сохраняет файл)
}

// FileStore — локальное хранилище артефактов сессии.
type FileStore interface {
	SaveImage(filename string, data []byte) (string, error)
	SaveRecording(data []byte) (string, error)
	AnswerAudioPath() string
	Resolve(path string) bool
	Cleanup() error
}

// Archive — опциональное зеркало артефактов в S3. Может быть nil.
type Archive interface {
	SaveFile(ctx context.Context, sessionID, filePath, contentType string) (string, error)
}
