package ports

import (
	"context"

	"github.com/Vovarama1992/visqa/internal/session"
)

// SessionService — workflow одной сессии целиком: каждая операция
// завершается (вместе с вложенными удалёнными вызовами) до того,
// как состояние считается установившимся.
type SessionService interface {
	Snapshot() session.Session
	UploadImage(ctx context.Context, data []byte, filename string) (session.Session, error)
	CaptureAudio(ctx context.Context, data []byte) (session.Session, error)
	EditTranscript(text string) session.Session
	AskQuestion(ctx context.Context) (session.Session, error)
	Reset() (session.Session, error)
}
