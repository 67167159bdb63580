package agent

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
)

// DefaultMemoryCapacity covers the longest possible game.
const DefaultMemoryCapacity = entity.Size * entity.Size

// Memory is the ordered list of states one agent produced during an episode.
type Memory struct {
	states []entity.StateKey
}

func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}

	return &Memory{states: make([]entity.StateKey, 0, capacity)}
}

// Append records a state. Exceeding capacity is a misconfiguration.
func (that *Memory) Append(key entity.StateKey) error {
	if len(that.states) == cap(that.states) {
		return fmt.Errorf("%w: capacity %d", apperror.ErrMemoryFull, cap(that.states))
	}

	that.states = append(that.states, key)

	return nil
}

// Clear empties the memory without releasing its storage.
func (that *Memory) Clear() {
	that.states = that.states[:0]
}

func (that *Memory) Len() int {
	return len(that.states)
}

func (that *Memory) Capacity() int {
	return cap(that.states)
}

// States returns the recorded states oldest first.
func (that *Memory) States() []entity.StateKey {
	out := make([]entity.StateKey, len(that.states))
	copy(out, that.states)
	return out
}

// Backward calls fn for every state, most recent first, and stops at the
// first error.
func (that *Memory) Backward(fn func(key entity.StateKey) error) error {
	for i := len(that.states) - 1; i >= 0; i-- {
		if err := fn(that.states[i]); err != nil {
			return err
		}
	}
	return nil
}
