package memory

import (
	"sync"

	"github.com/tunecrew/tunecrew/core"
)

// Conversation is an ordered, append-only sequence of conversation entries.
// It is exclusively owned and mutated by a single agent across calls to
// Execute, persists for the lifetime of the agent instance and grows
// monotonically: there is no compaction and no removal.
//
// Concurrency: the mutex makes individual operations safe, but ordering
// across concurrent writers is undefined. The owning agent serializes
// top-level Execute calls, which is the intended single-writer discipline.
type Conversation struct {
	mu      sync.RWMutex
	entries []core.Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds one entry to the end of the transcript.
func (c *Conversation) Append(msg core.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, msg)
}

// Len returns the number of entries.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns a read-only copy of the transcript in order. Callers get
// their own slice; the underlying container is never exposed.
func (c *Conversation) Snapshot() []core.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]core.Message, len(c.entries))
	copy(out, c.entries)
	return out
}

// Last returns the most recent entry, or false when the transcript is empty.
func (c *Conversation) Last() (core.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.entries) == 0 {
		return core.Message{}, false
	}
	return c.entries[len(c.entries)-1], true
}
