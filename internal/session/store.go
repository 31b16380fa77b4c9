package session

import (
	"strconv"
	"sync"
	"time"
)

type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerBot  Speaker = "bot"
)

type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

func UserTurn(text string) Turn { return Turn{Speaker: SpeakerUser, Text: text} }
func BotTurn(text string) Turn  { return Turn{Speaker: SpeakerBot, Text: text} }

// Snapshot is a copy of the store safe to render without holding the lock.
type Snapshot struct {
	History    []Turn `json:"history"`
	AudioToken string `json:"audio_token,omitempty"`
}

// Store holds the conversation log and the last bot reply for the whole process.
// Nothing is persisted; a restart starts from an empty log.
type Store struct {
	mu        sync.RWMutex
	history   []Turn
	lastReply string
	token     string
	lastMilli int64

	now func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

// Append adds turns to the end of the log in one step.
func (s *Store) Append(turns ...Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, turns...)
}

// SetLastReply records the reply that /tts_audio will speak and rotates the audio token.
func (s *Store) SetLastReply(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLastReplyLocked(text)
}

// Commit appends a user/bot pair and makes the bot text the last reply.
func (s *Store) Commit(user, bot Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, user, bot)
	s.setLastReplyLocked(bot.Text)
}

func (s *Store) setLastReplyLocked(text string) {
	s.lastReply = text

	// millisecond clock, forced forward when two replies land in the same ms
	ms := s.now().UnixMilli()
	if ms <= s.lastMilli {
		ms = s.lastMilli + 1
	}
	s.lastMilli = ms
	s.token = strconv.FormatInt(ms, 10)
}

func (s *Store) LastReply() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastReply
}

func (s *Store) AudioToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]Turn, len(s.history))
	copy(history, s.history)
	return Snapshot{History: history, AudioToken: s.token}
}
