package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNoSpeech  = errors.New("could not understand audio")
	ErrEmptyClip = errors.New("empty audio clip")
)

// Service transcribes and synthesizes in fixed languages, each call bounded by timeout.
type Service struct {
	stt STTClient
	tts TTSClient

	sttLanguage string
	ttsLanguage string
	timeout     time.Duration
}

func NewService(stt STTClient, tts TTSClient, sttLanguage, ttsLanguage string, timeout time.Duration) *Service {
	return &Service{
		stt:         stt,
		tts:         tts,
		sttLanguage: sttLanguage,
		ttsLanguage: ttsLanguage,
		timeout:     timeout,
	}
}

func (s *Service) Transcribe(ctx context.Context, clip Clip) (string, error) {
	if len(clip.Data) == 0 {
		return "", ErrEmptyClip
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.stt.Transcribe(ctx, clip, s.sttLanguage)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// Synthesize always calls the provider; nothing is cached.
func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	audio, err := s.tts.Synthesize(ctx, text, s.ttsLanguage)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	if err := VerifyMP3(audio); err != nil {
		return nil, err
	}
	return audio, nil
}
