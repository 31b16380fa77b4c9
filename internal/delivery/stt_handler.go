package delivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/voice_chat/internal/chat"
	"github.com/Vovarama1992/voice_chat/internal/ports"
	"github.com/Vovarama1992/voice_chat/internal/speech"
)

type STTHandler struct {
	chat     Conversation
	stt      Transcriber
	archive  ports.ClipArchive
	notifier Notifier
	log      *logger.ZapLogger

	maxUpload      int64
	archiveTimeout time.Duration
}

func NewSTTHandler(
	conv Conversation,
	stt Transcriber,
	archive ports.ClipArchive,
	notifier Notifier,
	log *logger.ZapLogger,
	maxUpload int64,
	archiveTimeout time.Duration,
) *STTHandler {
	return &STTHandler{
		chat:           conv,
		stt:            stt,
		archive:        archive,
		notifier:       notifier,
		log:            log,
		maxUpload:      maxUpload,
		archiveTimeout: archiveTimeout,
	}
}

// UploadFile — POST /stt_file, multipart поле "file"
func (h *STTHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clip, err := readClip(w, r, h.maxUpload)
	switch {
	case errors.Is(err, errNoFile):
		http.Error(w, noFileMessage, http.StatusBadRequest)
		return
	case errors.Is(err, errFileTooBig):
		http.Error(w, err.Error()+": limit "+humanize.Bytes(uint64(h.maxUpload)), http.StatusBadRequest)
		return
	case err != nil:
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid upload", Error: err})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	archiveClip(h.archive, h.log, clip, h.archiveTimeout)

	text, err := h.stt.Transcribe(ctx, clip)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "transcription failed", Error: err, Service: "stt"})
		if !errors.Is(err, speech.ErrNoSpeech) {
			_ = h.notifier.Notify(ctx, "stt", err, clip.Filename)
		}
		http.Error(w, chat.TranscriptionFailureText(err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, h.chat.Reply(ctx, text))
}

// archiveClip stores the upload in the background when a bucket is configured.
// It never holds up the request; failures only get logged.
func archiveClip(archive ports.ClipArchive, log *logger.ZapLogger, clip speech.Clip, timeout time.Duration) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		url, err := archive.SaveClip(ctx, clip.Data, clip.Filename, clip.ContentType)
		if err != nil {
			log.Log(logger.LogEntry{Level: "warn", Message: "clip archive failed", Error: err, Service: "s3"})
			return
		}
		if url != "" {
			log.Log(logger.LogEntry{Level: "info", Message: "clip archived (" + humanize.Bytes(uint64(len(clip.Data))) + "): " + url, Service: "s3"})
		}
	}()
}
