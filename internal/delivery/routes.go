package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(
	r chi.Router,
	hChat *ChatHandler,
	hSTT *STTHandler,
	hTTS *TTSHandler,
) {
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- страница ---
		pr.Get("/", hChat.Index)
		pr.Post("/", hChat.Submit)

		// --- json ---
		pr.Post("/chat", hChat.ChatJSON)
		pr.Get("/history", hChat.History)

		// --- голос ---
		pr.Post("/stt_file", hSTT.UploadFile)
		pr.Get("/tts_audio", hTTS.Audio)

		pr.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("pong"))
		})
	})
}
