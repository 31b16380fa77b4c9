package delivery

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/voice_chat/internal/speech"
)

type TTSHandler struct {
	store    SessionReader
	tts      Synthesizer
	notifier Notifier
	log      *logger.ZapLogger
}

func NewTTSHandler(store SessionReader, tts Synthesizer, notifier Notifier, log *logger.ZapLogger) *TTSHandler {
	return &TTSHandler{store: store, tts: tts, notifier: notifier, log: log}
}

// Audio — GET /tts_audio, последний ответ бота голосом
func (h *TTSHandler) Audio(w http.ResponseWriter, r *http.Request) {
	text := h.store.LastReply()
	if text == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	audio, err := h.tts.Synthesize(r.Context(), text)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "tts failed", Error: err, Service: "tts"})
		_ = h.notifier.Notify(r.Context(), "tts", err, text)
		http.Error(w, "TTS 에러: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if d, err := speech.AudioDuration(audio); err == nil {
		h.log.Log(logger.LogEntry{
			Level:   "info",
			Message: "tts ready: " + d.Round(time.Millisecond).String() + ", " + humanize.Bytes(uint64(len(audio))),
			Service: "tts",
		})
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	_, _ = w.Write(audio)
}
