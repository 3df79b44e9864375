package ai

import (
	"context"
	"errors"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyTranscript — сервис ответил успешно, но текста в ответе нет.
// Оркестратор различает этот случай и обычный сбой сервиса.
var ErrEmptyTranscript = errors.New("transcription response has no text")

const whisperModel = "whisper-large-v3-turbo"

// GroqSTTClient — Whisper через OpenAI-совместимый API Groq.
type GroqSTTClient struct {
	client *openai.Client
}

func NewGroqSTTClient() *GroqSTTClient {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		panic("GROQ_API_KEY not set")
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = "https://api.groq.com/openai/v1"
	if base := os.Getenv("GROQ_BASE_URL"); base != "" {
		cfg.BaseURL = strings.TrimRight(base, "/")
	}

	return &GroqSTTClient{
		client: openai.NewClientWithConfig(cfg),
	}
}

func (c *GroqSTTClient) Transcribe(ctx context.Context, filePath string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       whisperModel,
		FilePath:    filePath,
		Format:      openai.AudioResponseFormatVerboseJSON,
		Language:    "en",
		Temperature: 0,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{
			openai.TranscriptionTimestampGranularityWord,
			openai.TranscriptionTimestampGranularitySegment,
		},
	})
	if err != nil {
		return "", err
	}

	// потребляем только верхнеуровневый текст, детализация по словам
	// и сегментам запрошена, но не используется
	if resp.Text == "" {
		return "", ErrEmptyTranscript
	}
	return resp.Text, nil
}
