package speech

import "context"

// Clip is an uploaded audio recording held in memory.
type Clip struct {
	Data        []byte
	Filename    string
	ContentType string
}

type STTClient interface {
	Transcribe(ctx context.Context, clip Clip, language string) (string, error) // голос → текст
}

type TTSClient interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error) // текст → голос (MP3)
}
