package speech

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiSTT transcribes clips with Gemini audio understanding,
// so the service runs with the one required API key.
type GeminiSTT struct {
	models contentGenerator
	model  string
}

func NewGeminiSTT(ctx context.Context, apiKey, model string) (*GeminiSTT, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini stt: %w", err)
	}
	return &GeminiSTT{models: gc.Models, model: model}, nil
}

func (g *GeminiSTT) Transcribe(ctx context.Context, clip Clip, language string) (string, error) {
	instruction := fmt.Sprintf(
		"Transcribe the speech in this audio verbatim. The spoken language is %s. "+
			"Reply with the transcript only. If there is no intelligible speech, reply with nothing.",
		language,
	)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(instruction),
			genai.NewPartFromBytes(clip.Data, audioMIMEType(clip)),
		}, genai.RoleUser),
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini stt: %w", err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

func audioMIMEType(clip Clip) string {
	ct := strings.TrimSpace(clip.ContentType)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if strings.HasPrefix(ct, "audio/") {
		return ct
	}

	name := strings.ToLower(clip.Filename)
	switch {
	case strings.HasSuffix(name, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(name, ".ogg"), strings.HasSuffix(name, ".oga"):
		return "audio/ogg"
	case strings.HasSuffix(name, ".flac"):
		return "audio/flac"
	case strings.HasSuffix(name, ".webm"):
		return "audio/webm"
	case strings.HasSuffix(name, ".m4a"), strings.HasSuffix(name, ".aac"):
		return "audio/aac"
	}
	return "audio/wav"
}
