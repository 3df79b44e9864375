package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(r chi.Router, h *SessionHandler) {
	// --- страница ---
	r.With(httputil.RecoverMiddleware).Get("/", ServeIndex)

	// --- сессия ---
	r.Route("/session", func(sr chi.Router) {
		sr.Use(
			httputil.RecoverMiddleware,
			httprate.LimitByIP(60, time.Minute),
		)

		sr.Get("/", h.GetSession)
		sr.Delete("/", h.ResetSession)

		sr.Post("/image", h.UploadImage)
		sr.Get("/image", h.GetImage)

		sr.Post("/audio", h.CaptureAudio)
		sr.Patch("/transcript", h.EditTranscript)

		sr.Post("/ask", h.Ask)
		sr.Get("/answer-audio", h.GetAnswerAudio)
	})
}
