package chat

import (
	"context"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/voice_chat/internal/ai"
	"github.com/Vovarama1992/voice_chat/internal/session"
)

type Service struct {
	store     Store
	generator ai.Generator
	notifier  Notifier
	log       *logger.ZapLogger
	timeout   time.Duration
}

func NewService(
	store Store,
	generator ai.Generator,
	notifier Notifier,
	log *logger.ZapLogger,
	timeout time.Duration,
) *Service {
	return &Service{
		store:     store,
		generator: generator,
		notifier:  notifier,
		log:       log,
		timeout:   timeout,
	}
}

// Reply records one user utterance and the bot answer to it.
// Generation failures never surface as errors: they become the bot's reply text.
func (s *Service) Reply(ctx context.Context, utterance string) Exchange {
	text := strings.TrimSpace(utterance)
	if text == "" {
		s.store.Append(session.BotTurn(EmptyInputMessage))
		return Exchange{Bot: EmptyInputMessage, Prompted: true}
	}

	botText := s.generate(ctx, text)
	s.store.Commit(session.UserTurn(text), session.BotTurn(botText))

	return Exchange{User: text, Bot: botText}
}

// RecordBotNotice appends a bot message that is not a model reply.
// The last reply and audio token stay as they are.
func (s *Service) RecordBotNotice(text string) {
	s.store.Append(session.BotTurn(text))
}

func (s *Service) generate(ctx context.Context, text string) string {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.generator.Generate(ctx, BuildPrompt(text))
	if err != nil {
		provider := s.generator.Provider()
		s.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "generation failed after " + time.Since(start).Round(time.Millisecond).String(),
			Error:   err,
			Service: provider,
		})
		_ = s.notifier.Notify(ctx, provider, err, "kind="+string(ai.KindOf(err)))
		return GenerationFailureText(provider, err)
	}

	return strings.TrimSpace(raw)
}
