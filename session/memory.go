package session

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/tailored-agentic-units/toolagents/core/protocol"
)

// Session is the ordered message history of one conversation, owned by one
// user of one app. Implementations are safe for concurrent use.
type Session interface {
	ID() string
	AppName() string
	UserID() string

	// AddMessage appends msg to the history.
	AddMessage(msg protocol.Message)

	// Messages returns a copy of the history; callers may modify it freely.
	Messages() []protocol.Message

	// Len reports the number of messages without copying them.
	Len() int

	// Clear empties the history. The identity is kept.
	Clear()
}

type memorySession struct {
	id       string
	appName  string
	userID   string
	messages []protocol.Message
	mu       sync.RWMutex
}

// NewMemorySession creates a Session backed by an in-memory slice. The
// session takes cfg.SessionID, or a new UUIDv7 when it is empty.
func NewMemorySession(cfg Config) Session {
	id := cfg.SessionID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}
	return &memorySession{
		id:      id,
		appName: cfg.AppName,
		userID:  cfg.UserID,
	}
}

func (s *memorySession) ID() string      { return s.id }
func (s *memorySession) AppName() string { return s.appName }
func (s *memorySession) UserID() string  { return s.userID }

func (s *memorySession) AddMessage(msg protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
}

func (s *memorySession) Messages() []protocol.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]protocol.Message, len(s.messages))
	for i, msg := range s.messages {
		copied[i] = msg
		copied[i].ToolCalls = slices.Clone(msg.ToolCalls)
	}
	return copied
}

func (s *memorySession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.messages)
}

func (s *memorySession) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
}
