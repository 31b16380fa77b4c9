package speech

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestSplitForTTS(t *testing.T) {
	assert.Empty(t, splitForTTS("   ", 100))
	assert.Equal(t, []string{"짧은 문장."}, splitForTTS(" 짧은 문장. ", 100))

	long := strings.Repeat("가나다라마 ", 30) + "끝."
	chunks := splitForTTS(long, 100)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 100)
		assert.Equal(t, strings.TrimSpace(c), c)
	}
	assert.Equal(t, strings.Join(strings.Fields(long), " "), strings.Join(chunks, " "))

	sentences := "첫 번째 문장입니다. " + strings.Repeat("두", 95)
	got := splitForTTS(sentences, 100)
	assert.Equal(t, "첫 번째 문장입니다.", got[0])

	noBreaks := strings.Repeat("a", 250)
	got = splitForTTS(noBreaks, 100)
	assert.Equal(t, []string{strings.Repeat("a", 100), strings.Repeat("a", 100), strings.Repeat("a", 50)}, got)
}

func TestGoogleTTS_ConcatenatesChunks(t *testing.T) {
	frame := silentMP3(1)
	var (
		mu      sync.Mutex
		queries []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_tts", r.URL.Path)
		assert.Equal(t, "ko", r.URL.Query().Get("tl"))
		mu.Lock()
		queries = append(queries, r.URL.Query().Get("q"))
		mu.Unlock()
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(frame)
	}))
	defer srv.Close()

	g := &GoogleTTS{baseURL: srv.URL, httpCli: srv.Client()}
	text := strings.Repeat("안녕하세요 ", 40)

	audio, err := g.Synthesize(context.Background(), text, "ko")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Greater(t, len(queries), 1)
	assert.Equal(t, bytes.Repeat(frame, len(queries)), audio)
	require.NoError(t, VerifyMP3(audio))
}

func TestGoogleTTS_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := &GoogleTTS{baseURL: srv.URL, httpCli: srv.Client()}
	_, err := g.Synthesize(context.Background(), "안녕", "ko")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDeepgramClient_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/listen", r.URL.Path)
		assert.Equal(t, "ko-KR", r.URL.Query().Get("language"))
		assert.Equal(t, "Token dg-key", r.Header.Get("Authorization"))
		assert.Equal(t, "audio/ogg", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "ogg-bytes", string(body))
		_, _ = io.WriteString(w, `{"results":{"channels":[{"alternatives":[{"transcript":"안녕"}]}]}}`)
	}))
	defer srv.Close()

	c := &DeepgramClient{apiKey: "dg-key", baseURL: srv.URL, client: srv.Client()}
	got, err := c.Transcribe(context.Background(), Clip{Data: []byte("ogg-bytes"), Filename: "voice.ogg"}, "ko-KR")
	require.NoError(t, err)
	assert.Equal(t, "안녕", got)
}

func TestDeepgramClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("language") == "empty" {
			_, _ = io.WriteString(w, `{"results":{"channels":[]}}`)
			return
		}
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &DeepgramClient{apiKey: "k", baseURL: srv.URL, client: srv.Client()}

	_, err := c.Transcribe(context.Background(), Clip{Data: []byte("x")}, "ko")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	_, err = c.Transcribe(context.Background(), Clip{Data: []byte("x")}, "empty")
	require.ErrorIs(t, err, ErrNoSpeech)
}

func TestElevenLabsClient_Synthesize(t *testing.T) {
	audio := silentMP3(1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-1", r.URL.Path)
		assert.Equal(t, "el-key", r.Header.Get("xi-api-key"))
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))

		var payload map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, `말해 "줘"`, payload["text"])
		assert.Equal(t, "ko", payload["language_code"])
		_, _ = w.Write(audio)
	}))
	defer srv.Close()

	c := &ElevenLabsClient{apiKey: "el-key", voiceID: "voice-1", baseURL: srv.URL, httpCli: srv.Client()}
	got, err := c.Synthesize(context.Background(), `말해 "줘"`, "ko")
	require.NoError(t, err)
	assert.Equal(t, audio, got)
}

type stubAudioAPI struct {
	transcript string
	speech     []byte
	audioReq   openai.AudioRequest
	speechReq  openai.CreateSpeechRequest
}

func (s *stubAudioAPI) CreateTranscription(_ context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	s.audioReq = req
	return openai.AudioResponse{Text: s.transcript}, nil
}

func (s *stubAudioAPI) CreateSpeech(_ context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error) {
	s.speechReq = req
	return openai.RawResponse{ReadCloser: io.NopCloser(bytes.NewReader(s.speech))}, nil
}

func TestOpenAIClient_Transcribe(t *testing.T) {
	api := &stubAudioAPI{transcript: "안녕"}
	c := &OpenAIClient{client: api, voice: openai.VoiceAlloy}

	got, err := c.Transcribe(context.Background(), Clip{Data: []byte("x"), Filename: "a.webm"}, "ko-KR")
	require.NoError(t, err)
	assert.Equal(t, "안녕", got)
	assert.Equal(t, openai.Whisper1, api.audioReq.Model)
	assert.Equal(t, "a.webm", api.audioReq.FilePath)
	assert.Equal(t, "ko", api.audioReq.Language)
}

func TestOpenAIClient_Synthesize(t *testing.T) {
	api := &stubAudioAPI{speech: silentMP3(1)}
	c := &OpenAIClient{client: api, voice: openai.VoiceAlloy}

	got, err := c.Synthesize(context.Background(), "안녕하세요", "ko")
	require.NoError(t, err)
	assert.Equal(t, silentMP3(1), got)
	assert.Equal(t, openai.SpeechResponseFormatMp3, api.speechReq.ResponseFormat)
	assert.Equal(t, "안녕하세요", api.speechReq.Input)
}

type stubModels struct {
	contents []*genai.Content
	text     string
}

func (s *stubModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	s.contents = contents
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: s.text}}},
		}},
	}, nil
}

func TestGeminiSTT_SendsAudioInline(t *testing.T) {
	models := &stubModels{text: "안녕"}
	g := &GeminiSTT{models: models, model: "gemini-2.5-flash"}

	got, err := g.Transcribe(context.Background(), Clip{Data: []byte("wav"), ContentType: "audio/webm;codecs=opus"}, "ko-KR")
	require.NoError(t, err)
	assert.Equal(t, "안녕", got)

	require.Len(t, models.contents, 1)
	parts := models.contents[0].Parts
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0].Text, "ko-KR")
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "audio/webm", parts[1].InlineData.MIMEType)
	assert.Equal(t, []byte("wav"), parts[1].InlineData.Data)
}

func TestAudioMIMEType(t *testing.T) {
	cases := []struct {
		clip Clip
		want string
	}{
		{clip: Clip{ContentType: "audio/ogg"}, want: "audio/ogg"},
		{clip: Clip{ContentType: "application/octet-stream", Filename: "x.MP3"}, want: "audio/mpeg"},
		{clip: Clip{Filename: "x.flac"}, want: "audio/flac"},
		{clip: Clip{Filename: "x.m4a"}, want: "audio/aac"},
		{clip: Clip{}, want: "audio/wav"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, audioMIMEType(tc.clip))
	}
}

func TestIsoLanguage(t *testing.T) {
	assert.Equal(t, "ko", isoLanguage("ko-KR"))
	assert.Equal(t, "en", isoLanguage("en_US"))
	assert.Equal(t, "ko", isoLanguage("ko"))
}
