package chat

import (
	"context"

	"github.com/Vovarama1992/voice_chat/internal/session"
)

// Store is the part of session.Store the conversation needs.
type Store interface {
	Append(turns ...session.Turn)
	Commit(user, bot session.Turn)
}

type Notifier interface {
	Notify(ctx context.Context, source string, err error, details string) error
}

// Exchange is the outcome of one utterance.
type Exchange struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
	// Prompted is set when the utterance was empty and only the input hint was recorded.
	Prompted bool `json:"-"`
}
