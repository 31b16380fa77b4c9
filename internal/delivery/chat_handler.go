package delivery

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/voice_chat/internal/chat"
	"github.com/Vovarama1992/voice_chat/internal/ports"
)

type ChatHandler struct {
	chat     Conversation
	store    SessionReader
	stt      Transcriber
	archive  ports.ClipArchive
	renderer *Renderer
	log      *logger.ZapLogger

	maxUpload      int64
	archiveTimeout time.Duration
}

func NewChatHandler(
	conv Conversation,
	store SessionReader,
	stt Transcriber,
	archive ports.ClipArchive,
	renderer *Renderer,
	log *logger.ZapLogger,
	maxUpload int64,
	archiveTimeout time.Duration,
) *ChatHandler {
	return &ChatHandler{
		chat:           conv,
		store:          store,
		stt:            stt,
		archive:        archive,
		renderer:       renderer,
		log:            log,
		maxUpload:      maxUpload,
		archiveTimeout: archiveTimeout,
	}
}

// Index — GET /
func (h *ChatHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w)
}

// Submit — POST / с action=text|stt, после обработки рисуем страницу заново
func (h *ChatHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.submitVoice(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}

	switch r.FormValue("action") {
	case "text":
		h.chat.Reply(ctx, r.FormValue("user_input"))
	default:
		h.chat.Reply(ctx, "")
	}

	h.render(w)
}

func (h *ChatHandler) submitVoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// битый или слишком большой multipart: поля формы не прочитаны, в историю ничего не пишем
	clip, err := readClip(w, r, h.maxUpload)
	switch {
	case errors.Is(err, errFileTooBig):
		http.Error(w, err.Error()+": limit "+humanize.Bytes(uint64(h.maxUpload)), http.StatusBadRequest)
		return
	case err != nil && !errors.Is(err, errNoFile):
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid form upload", Error: err})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch r.FormValue("action") {
	case "stt":
		if errors.Is(err, errNoFile) {
			h.chat.RecordBotNotice(chat.TranscriptionFailureText(err))
			break
		}
		archiveClip(h.archive, h.log, clip, h.archiveTimeout)

		text, err := h.stt.Transcribe(ctx, clip)
		if err != nil {
			h.log.Log(logger.LogEntry{Level: "error", Message: "transcription failed", Error: err})
			h.chat.RecordBotNotice(chat.TranscriptionFailureText(err))
			break
		}
		h.chat.Reply(ctx, text)
	case "text":
		h.chat.Reply(ctx, r.FormValue("user_input"))
	default:
		h.chat.Reply(ctx, "")
	}

	h.render(w)
}

// ChatJSON — POST /chat {"text": "..."}
func (h *ChatHandler) ChatJSON(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.chat.Reply(r.Context(), req.Text))
}

// History — GET /history
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

func (h *ChatHandler) render(w http.ResponseWriter) {
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, h.store.Snapshot()); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "render failed", Error: err})
		http.Error(w, "render failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
