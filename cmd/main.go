package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Vovarama1992/voice_chat/internal/ai"
	"github.com/Vovarama1992/voice_chat/internal/chat"
	"github.com/Vovarama1992/voice_chat/internal/config"
	"github.com/Vovarama1992/voice_chat/internal/delivery"
	"github.com/Vovarama1992/voice_chat/internal/domain"
	"github.com/Vovarama1992/voice_chat/internal/error_notificator"
	"github.com/Vovarama1992/voice_chat/internal/infra"
	"github.com/Vovarama1992/voice_chat/internal/ports"
	"github.com/Vovarama1992/voice_chat/internal/session"
	"github.com/Vovarama1992/voice_chat/internal/speech"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var errInfra error_notificator.Notificator = error_notificator.Nop{}
	if cfg.NotifierEnabled() {
		tg, err := error_notificator.NewInfra(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			log.Fatalf("failed to init telegram notifier: %v", err)
		}
		errInfra = tg
	}
	errService := error_notificator.NewService(errInfra, zl)

	// =========================================================================
	// CLIENTS (AI / STT / TTS)
	// =========================================================================

	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init generator: %v", err)
	}

	sttClient, err := newSTTClient(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init stt: %v", err)
	}

	ttsClient := newTTSClient(cfg)

	// =========================================================================
	// STORAGE
	// =========================================================================

	var archive ports.ClipArchive = domain.NopArchive{}
	if cfg.S3.Enabled() {
		s3Client, err := infra.NewS3Client(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		archive = domain.NewClipService(s3Client)
	}

	store := session.New()

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	speechService := speech.NewService(
		sttClient,
		ttsClient,
		cfg.STTLanguage,
		cfg.TTSLanguage,
		cfg.OutboundTimeout,
	)

	chatService := chat.NewService(
		store,
		generator,
		errService,
		zl,
		cfg.OutboundTimeout,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()

	chatHandler := delivery.NewChatHandler(chatService, store, speechService, archive, delivery.NewRenderer(), zl, cfg.MaxUploadSize, cfg.OutboundTimeout)
	sttHandler := delivery.NewSTTHandler(chatService, speechService, archive, errService, zl, cfg.MaxUploadSize, cfg.OutboundTimeout)
	ttsHandler := delivery.NewTTSHandler(store, speechService, errService, zl)

	delivery.RegisterRoutes(r, chatHandler, sttHandler, ttsHandler)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr + " (llm=" + generator.Provider() + ", stt=" + cfg.STTProvider + ", tts=" + cfg.TTSProvider + ")",
		Service: "voice_chat",
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

func newGenerator(ctx context.Context, cfg *config.Config) (ai.Generator, error) {
	switch cfg.Generator {
	case config.GeneratorOpenAI:
		return ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case config.GeneratorPerplexity:
		return ai.NewPerplexityClient(cfg.PerplexityAPIKey, cfg.PerplexityModel), nil
	}
	return ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
}

func newSTTClient(ctx context.Context, cfg *config.Config) (speech.STTClient, error) {
	switch cfg.STTProvider {
	case config.STTWhisper:
		return speech.NewOpenAIClient(cfg.OpenAIAPIKey), nil
	case config.STTDeepgram:
		return speech.NewDeepgramClient(cfg.DeepgramAPIKey), nil
	}
	return speech.NewGeminiSTT(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
}

func newTTSClient(cfg *config.Config) speech.TTSClient {
	switch cfg.TTSProvider {
	case config.TTSOpenAI:
		return speech.NewOpenAIClient(cfg.OpenAIAPIKey)
	case config.TTSElevenLabs:
		return speech.NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID)
	}
	return speech.NewGoogleTTS()
}
