package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

const (
	GeneratorGemini     = "gemini"
	GeneratorOpenAI     = "openai"
	GeneratorPerplexity = "perplexity"

	STTGemini   = "gemini"
	STTWhisper  = "whisper"
	STTDeepgram = "deepgram"

	TTSGoogle     = "gtts"
	TTSOpenAI     = "openai"
	TTSElevenLabs = "elevenlabs"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	Generator    string

	PerplexityAPIKey string
	PerplexityModel  string

	STTProvider    string
	STTLanguage    string
	DeepgramAPIKey string

	TTSProvider       string
	TTSLanguage       string
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	OutboundTimeout time.Duration
	MaxUploadSize   int64

	S3 S3Config

	TelegramBotToken    string
	TelegramAdminChatID int64
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// Enabled reports whether uploaded clips should be archived.
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// NotifierEnabled reports whether upstream failures are forwarded to Telegram.
func (c *Config) NotifierEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramAdminChatID != 0
}

// Load reads .env (if any) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:              env("PORT", "5000"),
		GeminiAPIKey:      env("GEMINI_API_KEY", ""),
		GeminiModel:       env("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:      env("OPENAI_API_KEY", ""),
		OpenAIModel:       env("OPENAI_MODEL", "gpt-4o-mini"),
		Generator:         strings.ToLower(env("GENERATOR", GeneratorGemini)),
		PerplexityAPIKey:  env("PERPLEXITY_API_KEY", ""),
		PerplexityModel:   env("PERPLEXITY_MODEL", "sonar"),
		STTProvider:       strings.ToLower(env("STT_PROVIDER", STTGemini)),
		STTLanguage:       env("STT_LANGUAGE", "ko-KR"),
		DeepgramAPIKey:    env("DEEPGRAM_API_KEY", ""),
		TTSProvider:       strings.ToLower(env("TTS_PROVIDER", TTSGoogle)),
		TTSLanguage:       env("TTS_LANGUAGE", "ko"),
		ElevenLabsAPIKey:  env("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID: env("ELEVENLABS_VOICE_ID", "EXAVITQu4vr4xnSDxMaL"),
		S3: S3Config{
			Endpoint:  env("S3_ENDPOINT", ""),
			AccessKey: env("S3_ACCESS_KEY", ""),
			SecretKey: env("S3_SECRET_KEY", ""),
			Bucket:    env("S3_BUCKET", ""),
			Region:    env("S3_REGION", ""),
		},
		TelegramBotToken: env("TELEGRAM_BOT_TOKEN", ""),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	timeout, err := time.ParseDuration(env("OUTBOUND_TIMEOUT", "30s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("invalid OUTBOUND_TIMEOUT %q", getenv("OUTBOUND_TIMEOUT"))
	}
	cfg.OutboundTimeout = timeout

	size, err := humanize.ParseBytes(env("MAX_UPLOAD_SIZE", "20 MB"))
	if err != nil || size == 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE %q", getenv("MAX_UPLOAD_SIZE"))
	}
	cfg.MaxUploadSize = int64(size)

	if raw := env("TELEGRAM_ADMIN_CHAT_ID", ""); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
		cfg.TelegramAdminChatID = id
	}

	if err := cfg.validateProviders(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validateProviders() error {
	switch c.Generator {
	case GeneratorGemini:
	case GeneratorOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("GENERATOR=openai requires OPENAI_API_KEY")
		}
	case GeneratorPerplexity:
		if c.PerplexityAPIKey == "" {
			return errors.New("GENERATOR=perplexity requires PERPLEXITY_API_KEY")
		}
	default:
		return fmt.Errorf("unknown GENERATOR %q", c.Generator)
	}

	switch c.STTProvider {
	case STTGemini:
	case STTWhisper:
		if c.OpenAIAPIKey == "" {
			return errors.New("STT_PROVIDER=whisper requires OPENAI_API_KEY")
		}
	case STTDeepgram:
		if c.DeepgramAPIKey == "" {
			return errors.New("STT_PROVIDER=deepgram requires DEEPGRAM_API_KEY")
		}
	default:
		return fmt.Errorf("unknown STT_PROVIDER %q", c.STTProvider)
	}

	switch c.TTSProvider {
	case TTSGoogle:
	case TTSOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("TTS_PROVIDER=openai requires OPENAI_API_KEY")
		}
	case TTSElevenLabs:
		if c.ElevenLabsAPIKey == "" {
			return errors.New("TTS_PROVIDER=elevenlabs requires ELEVENLABS_API_KEY")
		}
	default:
		return fmt.Errorf("unknown TTS_PROVIDER %q", c.TTSProvider)
	}
	return nil
}
