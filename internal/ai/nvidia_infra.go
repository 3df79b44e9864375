package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const defaultVLMEndpoint = "https://ai.api.nvidia.com/v1/vlm/microsoft/kosmos-2"

// NoAnswerFallback — успешный ответ без choices: это не ошибка, а заглушка.
const NoAnswerFallback = "No answer found in the response."

// NvidiaVLMClient — visual QA через NVIDIA API (Kosmos-2).
type NvidiaVLMClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewNvidiaVLMClient() *NvidiaVLMClient {
	key := os.Getenv("NVIDIA_API_KEY")
	if key == "" {
		panic("NVIDIA_API_KEY not set")
	}

	endpoint := os.Getenv("NVIDIA_API_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultVLMEndpoint
	}

	return &NvidiaVLMClient{
		apiKey:   key,
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

func (c *NvidiaVLMClient) Answer(ctx context.Context, imagePath, question string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("read image file: %w", err)
	}
	imageB64 := base64.StdEncoding.EncodeToString(data)

	payload := map[string]any{
		"messages": []map[string]any{
			{
				"role":    "user",
				"content": fmt.Sprintf(`%s <img src="data:image/png;base64,%s" />`, question, imageB64),
			},
		},
		"max_tokens":  1024,
		"temperature": 0.20,
		"top_p":       0.20,
	}

	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("nvidia vlm request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nvidia vlm error: status %d: %s", resp.StatusCode, raw)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode nvidia vlm: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return NoAnswerFallback, nil
	}
	return parsed.Choices[0].Message.Content, nil
}
