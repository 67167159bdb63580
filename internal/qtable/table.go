// Package qtable holds the state-value table learned by the agents and its
// binary persistence format.
package qtable

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
)

const DefaultCapacity = 5000

// Entry is a single (state, value) pair.
type Entry struct {
	Key   entity.StateKey
	Value float32
}

// Table maps state keys to values. Capacity bounds the number of distinct
// keys; membership in index is the occupancy flag, so the all-empty board is
// an ordinary key. ReadFrom treats a trailing run of two or more all-zero
// records as padding, so only there is an empty-board entry valued 0 dropped.
type Table struct {
	capacity int
	index    map[entity.StateKey]int
	entries  []Entry
}

func New(capacity int) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Table{
		capacity: capacity,
		index:    make(map[entity.StateKey]int),
	}
}

func (that *Table) Capacity() int {
	return that.capacity
}

func (that *Table) Len() int {
	return len(that.entries)
}

// Get returns the value stored for key, or 0 for unseen states.
func (that *Table) Get(key entity.StateKey) float32 {
	if i, ok := that.index[key]; ok {
		return that.entries[i].Value
	}
	return 0
}

// Ensure inserts key with value 0 if it is not present yet.
func (that *Table) Ensure(key entity.StateKey) error {
	if _, ok := that.index[key]; ok {
		return nil
	}

	if len(that.entries) >= that.capacity {
		return fmt.Errorf("%w: capacity %d reached while inserting %s", apperror.ErrTableFull, that.capacity, key)
	}

	that.index[key] = len(that.entries)
	that.entries = append(that.entries, Entry{Key: key})

	return nil
}

// Update adds delta to the value of an existing key and returns the new value.
func (that *Table) Update(key entity.StateKey, delta float32) (float32, error) {
	i, ok := that.index[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", apperror.ErrKeyNotFound, key)
	}

	that.entries[i].Value += delta

	return that.entries[i].Value, nil
}

// Entries returns a copy of the occupied slots in insertion order.
func (that *Table) Entries() []Entry {
	out := make([]Entry, len(that.entries))
	copy(out, that.entries)
	return out
}

func (that *Table) replace(other *Table) {
	that.index = other.index
	that.entries = other.entries
}
