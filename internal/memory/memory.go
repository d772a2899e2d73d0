// Package memory holds the bot's short-term conversation memory: a bounded,
// ordered buffer of user/assistant exchanges with FIFO eviction.
package memory

import (
	"fmt"
	"strings"
)

// DefaultCapacity is the number of exchanges kept when no capacity is given.
const DefaultCapacity = 20

// Exchange is one committed (user message, assistant answer) pair.
type Exchange struct {
	User      string
	Assistant string
}

// ChatMemory stores the most recent exchanges of one session, oldest first.
type ChatMemory struct {
	capacity  int
	exchanges []Exchange
}

// NewChatMemory creates a memory bounded to the given number of exchanges.
func NewChatMemory(capacity int) *ChatMemory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &ChatMemory{capacity: capacity}
}

// Add appends an exchange, evicting from the head once capacity is exceeded.
func (m *ChatMemory) Add(user, assistant string) {
	m.exchanges = append(m.exchanges, Exchange{User: user, Assistant: assistant})
	if len(m.exchanges) > m.capacity {
		m.exchanges = m.exchanges[len(m.exchanges)-m.capacity:]
	}
}

// Len returns the number of stored exchanges.
func (m *ChatMemory) Len() int {
	return len(m.exchanges)
}

// Exchanges returns a copy of the stored exchanges in chronological order.
func (m *ChatMemory) Exchanges() []Exchange {
	out := make([]Exchange, len(m.exchanges))
	copy(out, m.exchanges)
	return out
}

// Formatted renders the history for prompt injection: each exchange as a
// "User:"/"Assistant:" line pair, exchanges separated by blank lines. An
// empty history renders as an empty string.
func (m *ChatMemory) Formatted() string {
	parts := make([]string, 0, len(m.exchanges))
	for _, ex := range m.exchanges {
		parts = append(parts, fmt.Sprintf("User: %s\nAssistant: %s", ex.User, ex.Assistant))
	}
	return strings.Join(parts, "\n\n")
}
