package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *ElevenLabsClient {
	return &ElevenLabsClient{
		apiKey:  "test-key",
		voiceID: "voice-1",
		baseURL: srv.URL,
		httpCli: srv.Client(),
	}
}

func TestElevenLabs_SynthesizeWritesFile(t *testing.T) {
	var gotKey, gotPath string
	var gotBody struct {
		Text string `json:"text"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("xi-api-key")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	outPath := filepath.Join(t.TempDir(), "answer_audio.mp3")
	err := newTestClient(srv).Synthesize(context.Background(), "The car is red.", outPath)
	require.NoError(t, err)

	require.Equal(t, "test-key", gotKey)
	require.Equal(t, "/v1/text-to-speech/voice-1", gotPath)
	require.Equal(t, "The car is red.", gotBody.Text)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "mp3-bytes", string(data))
}

func TestElevenLabs_Overwrite(t *testing.T) {
	payload := "first"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	cli := newTestClient(srv)
	outPath := filepath.Join(t.TempDir(), "answer_audio.mp3")

	require.NoError(t, cli.Synthesize(context.Background(), "one", outPath))
	payload = "second"
	require.NoError(t, cli.Synthesize(context.Background(), "two", outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}

func TestElevenLabs_ServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte("quota exceeded"))
	}))
	defer srv.Close()

	outPath := filepath.Join(t.TempDir(), "answer_audio.mp3")
	err := newTestClient(srv).Synthesize(context.Background(), "text", outPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "quota exceeded")

	_, statErr := os.Stat(outPath)
	require.True(t, os.IsNotExist(statErr))
}
