// Package chat implements the grounded conversation engine and its memory.
package chat

import (
	"strings"
	"sync"
)

// Turn is one completed exchange.
type Turn struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// Memory is the append-only conversation transcript for the process
// lifetime. It is cleared in full, never per entry, and is safe for
// concurrent use since the HTTP layer serves requests in parallel.
type Memory struct {
	mu    sync.Mutex
	turns []Turn
}

// NewMemory creates an empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records a completed turn.
func (m *Memory) Append(input, output string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, Turn{Input: input, Output: output})
}

// Render returns the transcript in prompt form, one Human/Assistant pair
// per turn. Empty memory renders as an empty string.
func (m *Memory) Render() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var b strings.Builder
	for i, turn := range m.turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Human: " + turn.Input + "\nAssistant: " + turn.Output)
	}
	return b.String()
}

// Turns returns a copy of the transcript.
func (m *Memory) Turns() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Clear drops the whole transcript.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = nil
}
