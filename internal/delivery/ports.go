package delivery

import (
	"context"

	"github.com/Vovarama1992/voice_chat/internal/chat"
	"github.com/Vovarama1992/voice_chat/internal/session"
	"github.com/Vovarama1992/voice_chat/internal/speech"
)

type Conversation interface {
	Reply(ctx context.Context, utterance string) chat.Exchange
	RecordBotNotice(text string)
}

type SessionReader interface {
	Snapshot() session.Snapshot
	LastReply() string
}

type Transcriber interface {
	Transcribe(ctx context.Context, clip speech.Clip) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type Notifier interface {
	Notify(ctx context.Context, source string, err error, details string) error
}
