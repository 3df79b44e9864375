package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/visqa/internal/ai"
	"github.com/Vovarama1992/visqa/internal/delivery"
	"github.com/Vovarama1992/visqa/internal/domain"
	"github.com/Vovarama1992/visqa/internal/infra"
	"github.com/Vovarama1992/visqa/internal/session"
	"github.com/Vovarama1992/visqa/internal/speech"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV INIT
	// =========================================================================

	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	store, err := infra.NewFileStore(os.Getenv("SCRATCH_DIR"))
	if err != nil {
		log.Fatalf("failed to init scratch dir: %v", err)
	}

	var archive session.Archive
	if os.Getenv("S3_ENDPOINT") != "" {
		s3Client, err := infra.NewS3Client()
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		archive = domain.NewArchiveService(s3Client)
	}

	// =========================================================================
	// CLIENTS (STT / VLM / TTS)
	// =========================================================================

	sttClient := ai.NewGroqSTTClient()
	vqaClient := ai.NewNvidiaVLMClient()
	ttsClient := speech.NewElevenLabsClient()

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	sessionService := session.NewService(
		sttClient, // Whisper via Groq
		vqaClient, // Kosmos-2
		ttsClient, // ElevenLabs
		store,
		archive,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	sessionHandler := delivery.NewSessionHandler(sessionService, zl)
	delivery.RegisterRoutes(r, sessionHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "visqa",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
