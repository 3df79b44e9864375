package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"strings"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"

	"github.com/Vovarama1992/visqa/internal/ai"
)

// Service — оркестратор сессии: картинка → запись → транскрипт → ответ.
// Один workflow-шаг за раз, промежуточные состояния видны через Snapshot.
type Service struct {
	stt     STTClient
	vqa     VQAClient
	tts     TTSClient
	store   FileStore
	archive Archive // может быть nil

	opMu    sync.Mutex   // один шаг за раз
	stateMu sync.RWMutex // только чтение/запись sess
	sess    Session
}

func NewService(stt STTClient, vqa VQAClient, tts TTSClient, store FileStore, archive Archive) *Service {
	return &Service{
		stt:     stt,
		vqa:     vqa,
		tts:     tts,
		store:   store,
		archive: archive,
		sess: Session{
			ID:    uuid.NewString(),
			State: StateEmpty,
		},
	}
}

// Snapshot возвращает копию текущего состояния сессии.
func (s *Service) Snapshot() Session {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.sess
}

func (s *Service) mutate(fn func(*Session)) Session {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	fn(&s.sess)
	return s.sess
}

// UploadImage сохраняет картинку и сбрасывает хвост сессии,
// но только если контент реально поменялся: повторная загрузка той же
// картинки не должна убивать вопрос, который пользователь уже готовит.
func (s *Service) UploadImage(ctx context.Context, data []byte, filename string) (Session, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return s.Snapshot(), fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	sum := xxh3.Hash(data)

	cur := s.Snapshot()
	if cur.ImagePath != "" && cur.ImageSum == sum && s.store.Resolve(cur.ImagePath) {
		log.Printf("[session] same image re-uploaded, keeping state id=%s", cur.ID)
		return cur, nil
	}

	path, err := s.store.SaveImage(filename, data)
	if err != nil {
		return s.Snapshot(), fmt.Errorf("save image: %w", err)
	}

	snap := s.mutate(func(sess *Session) {
		sess.ImagePath = path
		sess.ImageName = filepath.Base(filename)
		sess.ImageSum = sum
		sess.AudioPath = ""
		sess.Transcript = ""
		sess.AnswerText = ""
		sess.AnswerAudioPath = ""
		sess.State = StateImageReady
	})

	s.archiveFile(ctx, path, imageContentType(filename))
	return snap, nil
}

// CaptureAudio сохраняет запись вопроса и синхронно гонит её в STT.
// Ошибки распознавания не блокируют workflow: в транскрипт кладётся маркер.
func (s *Service) CaptureAudio(ctx context.Context, data []byte) (Session, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	cur := s.Snapshot()
	if cur.ImagePath == "" || !s.store.Resolve(cur.ImagePath) {
		return cur, ErrNoImage
	}

	path, err := s.store.SaveRecording(data)
	if err != nil {
		return s.Snapshot(), fmt.Errorf("save recording: %w", err)
	}

	// новый раунд вопроса: старый ответ и его аудио больше не валидны
	s.mutate(func(sess *Session) {
		sess.AudioPath = path
		sess.AnswerText = ""
		sess.AnswerAudioPath = ""
		sess.State = StateAudioCaptured
	})

	text, err := s.stt.Transcribe(ctx, path)
	var transcript string
	switch {
	case errors.Is(err, ai.ErrEmptyTranscript):
		log.Printf("[session] transcription parse error: %v", err)
		transcript = MarkerTranscriptionParse
	case err != nil:
		log.Printf("[session] transcription failed: %v", err)
		transcript = MarkerTranscriptionFailed
	default:
		transcript = text
	}

	snap := s.mutate(func(sess *Session) {
		sess.Transcript = transcript
		sess.State = StateTranscribed
	})
	return snap, nil
}

// EditTranscript — пользовательская правка транскрипта, без валидации.
func (s *Service) EditTranscript(text string) Session {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	return s.mutate(func(sess *Session) {
		sess.Transcript = text
		sess.State = StateTranscribed
	})
}

// AskQuestion выполняет шаг "спросить": VLM, затем озвучка ответа.
// При непройденном guard'е сессия не меняется.
func (s *Service) AskQuestion(ctx context.Context) (Session, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	cur := s.Snapshot()
	if !askAllowed(cur, s.store) {
		return cur, ErrPreconditionNotMet
	}

	s.mutate(func(sess *Session) {
		sess.State = StateAnswering
	})

	answer, err := s.vqa.Answer(ctx, cur.ImagePath, cur.Transcript)
	if err != nil {
		log.Printf("[session] vqa failed: %v", err)
		return s.mutate(func(sess *Session) {
			sess.AnswerText = fmt.Sprintf("Sorry, an error occurred: %v", err)
			sess.AnswerAudioPath = ""
			sess.State = StateTranscribed
		}), nil
	}

	// ответ есть, но аудио к нему ещё нет
	s.mutate(func(sess *Session) {
		sess.AnswerText = answer
		sess.AnswerAudioPath = ""
	})

	outPath := s.store.AnswerAudioPath()
	if err := s.tts.Synthesize(ctx, answer, outPath); err != nil {
		log.Printf("[session] tts failed: %v", err)
		return s.mutate(func(sess *Session) {
			sess.State = StateTranscribed
		}), nil
	}

	snap := s.mutate(func(sess *Session) {
		sess.AnswerAudioPath = outPath
		sess.State = StateAnswered
	})

	s.archiveFile(ctx, outPath, "audio/mpeg")
	return snap, nil
}

// Reset освобождает все ссылки и чистит scratch-директорию.
func (s *Service) Reset() (Session, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.store.Cleanup(); err != nil {
		return s.Snapshot(), fmt.Errorf("cleanup scratch dir: %w", err)
	}

	snap := s.mutate(func(sess *Session) {
		*sess = Session{
			ID:    uuid.NewString(),
			State: StateEmpty,
		}
	})
	return snap, nil
}

func askAllowed(sess Session, store FileStore) bool {
	if sess.ImagePath == "" || !store.Resolve(sess.ImagePath) {
		return false
	}
	if strings.TrimSpace(sess.Transcript) == "" {
		return false
	}
	if sess.Transcript == MarkerTranscriptionFailed || sess.Transcript == MarkerTranscriptionParse {
		return false
	}
	return true
}

// archiveFile — best effort: зеркало в S3 не должно ломать workflow.
func (s *Service) archiveFile(ctx context.Context, path, contentType string) {
	if s.archive == nil {
		return
	}
	url, err := s.archive.SaveFile(ctx, s.Snapshot().ID, path, contentType)
	if err != nil {
		log.Printf("[session] archive failed for %s: %v", path, err)
		return
	}
	log.Printf("[session] archived %s -> %s", path, url)
}

func imageContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
