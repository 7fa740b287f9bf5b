package memory

import (
	"log/slog"
	"sync"

	"github.com/jondoescoding/kryptt/internal/provider"
)

// conversation holds the history and summary for a single agent.
type conversation struct {
	messages []provider.Message
	summary  string
}

// InMemoryConversationStore is a thread-safe, in-memory ConversationStore.
// Conversations are created lazily on first access and live for the process
// lifetime; nothing is persisted.
type InMemoryConversationStore struct {
	mu          sync.RWMutex
	maxMessages int
	agents      map[string]*conversation
	logger      *slog.Logger
}

// NewInMemoryConversationStore creates an empty store. A non-positive
// maxMessages falls back to DefaultMaxMessages.
func NewInMemoryConversationStore(maxMessages int, logger *slog.Logger) *InMemoryConversationStore {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryConversationStore{
		maxMessages: maxMessages,
		agents:      make(map[string]*conversation),
		logger:      logger,
	}
}

// Compile-time interface check.
var _ ConversationStore = (*InMemoryConversationStore)(nil)

// getOrCreate must be called with the write lock held.
func (s *InMemoryConversationStore) getOrCreate(agentID string) *conversation {
	c, ok := s.agents[agentID]
	if !ok {
		s.logger.Info("creating conversation memory", "agent", agentID)
		c = &conversation{}
		s.agents[agentID] = c
	}
	return c
}

// Append implements ConversationStore. Append and trim happen under one
// lock so concurrent appends for the same agent can neither lose a message
// nor leave the history over the bound.
func (s *InMemoryConversationStore) Append(agentID string, msg provider.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreate(agentID)
	c.messages = append(c.messages, msg)
	if len(c.messages) > s.maxMessages {
		trimmed := make([]provider.Message, s.maxMessages)
		copy(trimmed, c.messages[len(c.messages)-s.maxMessages:])
		c.messages = trimmed
	}
}

// Messages implements ConversationStore.
func (s *InMemoryConversationStore) Messages(agentID string) []provider.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.agents[agentID]
	if !ok {
		return nil
	}
	out := make([]provider.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// SetSummary implements ConversationStore.
func (s *InMemoryConversationStore) SetSummary(agentID string, summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(agentID).summary = summary
}

// Summary implements ConversationStore.
func (s *InMemoryConversationStore) Summary(agentID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.agents[agentID]
	if !ok {
		return ""
	}
	return c.summary
}

// Context implements ConversationStore.
func (s *InMemoryConversationStore) Context(agentID string) ([]provider.Message, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.agents[agentID]
	if !ok {
		return nil, ""
	}
	out := make([]provider.Message, len(c.messages))
	copy(out, c.messages)
	return out, c.summary
}

// Reset implements ConversationStore.
func (s *InMemoryConversationStore) Reset(agentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[agentID] = &conversation{}
	s.logger.Info("conversation memory cleared", "agent", agentID)
}

// Len returns the number of messages currently stored for an agent.
func (s *InMemoryConversationStore) Len(agentID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.agents[agentID]
	if !ok {
		return 0
	}
	return len(c.messages)
}
