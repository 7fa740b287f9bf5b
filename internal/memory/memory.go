// Package memory provides bounded per-agent conversation history storage.
package memory

import "github.com/jondoescoding/kryptt/internal/provider"

// DefaultMaxMessages is the retained-message bound applied when a store is
// created with a non-positive limit. The bound caps the context forwarded
// to the model on every agent invocation.
const DefaultMaxMessages = 10

// ConversationStore manages bounded conversation history keyed by agent ID.
// Implementations must be safe for concurrent use.
type ConversationStore interface {
	// Append adds a message to the agent's history. When the history grows
	// past the store's message bound, the oldest entries are discarded
	// first until the bound holds again.
	Append(agentID string, msg provider.Message)

	// Messages returns the agent's current history in insertion order.
	// The result may be empty and is safe for the caller to retain.
	Messages(agentID string) []provider.Message

	// SetSummary stores a conversation summary for the agent, replacing any
	// previous one. Summaries are only ever set explicitly; eviction never
	// derives one.
	SetSummary(agentID string, summary string)

	// Summary returns the stored summary, or "" if none has been set.
	Summary(agentID string) string

	// Context returns the messages and summary together.
	Context(agentID string) ([]provider.Message, string)

	// Reset replaces the agent's memory with a fresh empty one,
	// clearing both history and summary.
	Reset(agentID string)
}
