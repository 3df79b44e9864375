package session

type State string

const (
	StateEmpty         State = "empty"
	StateImageReady    State = "image_ready"
	StateAudioCaptured State = "audio_captured"
	StateTranscribed   State = "transcribed"
	StateAnswering     State = "answering"
	StateAnswered      State = "answered"
)

// Маркеры в транскрипте вместо реального текста. Кнопка "спросить"
// обязана считать их невалидным вводом.
const (
	MarkerTranscriptionFailed = "Error in transcription."
	MarkerTranscriptionParse  = "Error: Could not parse transcription."
)

// Session — всё состояние одной пользовательской сессии.
type Session struct {
	ID              string
	State           State
	ImagePath       string
	ImageName       string
	ImageSum        uint64 // xxh3 от байтов картинки
	AudioPath       string
	Transcript      string
	AnswerText      string
	AnswerAudioPath string
}
