package delivery

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/visqa/internal/ports"
	"github.com/Vovarama1992/visqa/internal/session"
)

type SessionHandler struct {
	sessionService ports.SessionService
	log            *logger.ZapLogger
}

func NewSessionHandler(sessionService ports.SessionService, log *logger.ZapLogger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		log:            log,
	}
}

// sessionView — то, что видит страница: пути наружу не отдаём.
type sessionView struct {
	ID               string `json:"id"`
	State            string `json:"state"`
	ImageName        string `json:"image_name,omitempty"`
	HasImage         bool   `json:"has_image"`
	Transcript       string `json:"transcript"`
	AnswerText       string `json:"answer_text"`
	AnswerAudioReady bool   `json:"answer_audio_ready"`
}

func viewOf(sess session.Session) sessionView {
	return sessionView{
		ID:               sess.ID,
		State:            string(sess.State),
		ImageName:        sess.ImageName,
		HasImage:         sess.ImagePath != "",
		Transcript:       sess.Transcript,
		AnswerText:       sess.AnswerText,
		AnswerAudioReady: sess.AnswerAudioPath != "",
	}
}

func (h *SessionHandler) writeView(w http.ResponseWriter, sess session.Session) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(viewOf(sess))
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.writeView(w, h.sessionService.Snapshot())
}

func (h *SessionHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.sessionService.UploadImage(r.Context(), data, header.Filename)
	if err != nil {
		if errors.Is(err, session.ErrImageDecode) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "failed to store image", Error: err})
		http.Error(w, "failed to store image: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeView(w, sess)
}

func (h *SessionHandler) CaptureAudio(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.sessionService.CaptureAudio(r.Context(), data)
	if err != nil {
		if errors.Is(err, session.ErrNoImage) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "failed to capture audio", Error: err})
		http.Error(w, "failed to capture audio: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeView(w, sess)
}

func (h *SessionHandler) EditTranscript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.writeView(w, h.sessionService.EditTranscript(req.Text))
}

func (h *SessionHandler) Ask(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionService.AskQuestion(r.Context())
	if err != nil {
		if errors.Is(err, session.ErrPreconditionNotMet) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "ask failed", Error: err})
		http.Error(w, "ask failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeView(w, sess)
}

func (h *SessionHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionService.Snapshot()
	if sess.ImagePath == "" {
		http.Error(w, "no image uploaded", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, sess.ImagePath)
}

func (h *SessionHandler) GetAnswerAudio(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionService.Snapshot()
	if sess.AnswerAudioPath == "" {
		http.Error(w, "no answer audio available", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, sess.AnswerAudioPath)
}

func (h *SessionHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessionService.Reset()
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "reset failed", Error: err})
		http.Error(w, "reset failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeView(w, sess)
}
