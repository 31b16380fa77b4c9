package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnv_RequiresGeminiKey(t *testing.T) {
	_, err := FromEnv(envFrom(map[string]string{}))
	require.Error(t, err)
	require.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{"GEMINI_API_KEY": "k"}))
	require.NoError(t, err)

	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	require.Equal(t, GeneratorGemini, cfg.Generator)
	require.Equal(t, STTGemini, cfg.STTProvider)
	require.Equal(t, TTSGoogle, cfg.TTSProvider)
	require.Equal(t, "ko-KR", cfg.STTLanguage)
	require.Equal(t, "ko", cfg.TTSLanguage)
	require.Equal(t, 30*time.Second, cfg.OutboundTimeout)
	require.Equal(t, int64(20_000_000), cfg.MaxUploadSize)
	require.False(t, cfg.S3.Enabled())
	require.False(t, cfg.NotifierEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"GEMINI_API_KEY":         "k",
		"PORT":                   "8080",
		"OUTBOUND_TIMEOUT":       "5s",
		"MAX_UPLOAD_SIZE":        "1 MiB",
		"STT_PROVIDER":           "Deepgram",
		"DEEPGRAM_API_KEY":       "dg",
		"S3_ENDPOINT":            "s3.local",
		"S3_BUCKET":              "clips",
		"TELEGRAM_BOT_TOKEN":     "tg",
		"TELEGRAM_ADMIN_CHAT_ID": "42",
	}))
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 5*time.Second, cfg.OutboundTimeout)
	require.Equal(t, int64(1<<20), cfg.MaxUploadSize)
	require.Equal(t, STTDeepgram, cfg.STTProvider)
	require.True(t, cfg.S3.Enabled())
	require.True(t, cfg.NotifierEnabled())
	require.Equal(t, int64(42), cfg.TelegramAdminChatID)
}

func TestFromEnv_PerplexityGenerator(t *testing.T) {
	cfg, err := FromEnv(envFrom(map[string]string{
		"GEMINI_API_KEY":     "k",
		"GENERATOR":          "perplexity",
		"PERPLEXITY_API_KEY": "pp",
	}))
	require.NoError(t, err)
	require.Equal(t, GeneratorPerplexity, cfg.Generator)
	require.Equal(t, "sonar", cfg.PerplexityModel)
}

func TestFromEnv_ProviderKeys(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "openai generator", env: map[string]string{"GENERATOR": "openai"}},
		{name: "perplexity generator", env: map[string]string{"GENERATOR": "perplexity"}},
		{name: "whisper", env: map[string]string{"STT_PROVIDER": "whisper"}},
		{name: "deepgram", env: map[string]string{"STT_PROVIDER": "deepgram"}},
		{name: "openai tts", env: map[string]string{"TTS_PROVIDER": "openai"}},
		{name: "elevenlabs", env: map[string]string{"TTS_PROVIDER": "elevenlabs"}},
		{name: "unknown tts", env: map[string]string{"TTS_PROVIDER": "espeak"}},
		{name: "bad timeout", env: map[string]string{"OUTBOUND_TIMEOUT": "soon"}},
		{name: "bad upload size", env: map[string]string{"MAX_UPLOAD_SIZE": "lots"}},
		{name: "bad chat id", env: map[string]string{"TELEGRAM_ADMIN_CHAT_ID": "admin"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.env["GEMINI_API_KEY"] = "k"
			_, err := FromEnv(envFrom(tc.env))
			require.Error(t, err)
		})
	}
}
