// Package agent implements the learning player: an epsilon-greedy policy over
// a q-table, the per-episode memory of visited states, and the end of episode
// value update.
package agent

import (
	"fmt"
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/qtable"
)

const (
	DefaultLearningRate float32 = 0.2
	DefaultDiscount     float32 = 0.9
)

type Options struct {
	Name           string
	Epsilon        float64
	LearningRate   float32
	Discount       float32
	MemoryCapacity int
}

// Agent plays moves from its table and learns from finished episodes. Each
// mark has its own episode memory, so one agent may hold both seats of an
// episode and every state is still rewarded from the side that produced it.
// Two agents may share one table; calls are never concurrent.
type Agent struct {
	name         string
	learningRate float32
	discount     float32

	rng      *rand.Rand
	table    *qtable.Table
	memories map[entity.Mark]*Memory
	policy   Policy
}

func New(rng *rand.Rand, table *qtable.Table, opts Options) *Agent {
	if opts.LearningRate == 0 {
		opts.LearningRate = DefaultLearningRate
	}

	if opts.Discount == 0 {
		opts.Discount = DefaultDiscount
	}

	return &Agent{
		name:         opts.Name,
		learningRate: opts.LearningRate,
		discount:     opts.Discount,
		rng:          rng,
		table:        table,
		memories: map[entity.Mark]*Memory{
			entity.PlayerA: NewMemory(opts.MemoryCapacity),
			entity.PlayerB: NewMemory(opts.MemoryCapacity),
		},
		policy: Policy{Epsilon: opts.Epsilon, Values: table},
	}
}

func (that *Agent) Name() string {
	return that.name
}

func (that *Agent) Table() *qtable.Table {
	return that.table
}

// Memory returns the episode memory of sign, nil for Empty.
func (that *Agent) Memory(sign entity.Mark) *Memory {
	return that.memories[sign]
}

// SelectMove satisfies the move source used by the episode driver.
func (that *Agent) SelectMove(board entity.Board, moves []entity.Coord, sign entity.Mark) (entity.Coord, error) {
	return that.policy.Choose(that.rng, board, moves, sign)
}

// Reset clears the episode memory of both marks.
func (that *Agent) Reset() {
	for _, memory := range that.memories {
		memory.Clear()
	}
}

// Record stores the state reached after a move played as sign.
func (that *Agent) Record(sign entity.Mark, key entity.StateKey) error {
	memory, err := that.memoryOf(sign)
	if err != nil {
		return err
	}

	return memory.Append(key)
}

// Learn runs the backward pass over the memory of sign, most recent state
// first. Every state moves toward discount*reward; the target is not
// bootstrapped from the following state. It returns the largest absolute
// change applied.
func (that *Agent) Learn(sign entity.Mark, reward float32) (float32, error) {
	memory, err := that.memoryOf(sign)
	if err != nil {
		return 0, err
	}

	target := that.discount * reward

	var maxStep float32
	err = memory.Backward(func(key entity.StateKey) error {
		if err := that.table.Ensure(key); err != nil {
			return err
		}

		step := that.learningRate * (target - that.table.Get(key))
		if _, err := that.table.Update(key, step); err != nil {
			return err
		}

		maxStep = math32.Max(maxStep, math32.Abs(step))
		return nil
	})

	return maxStep, err
}

func (that *Agent) memoryOf(sign entity.Mark) (*Memory, error) {
	memory, ok := that.memories[sign]
	if !ok {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidMark, sign)
	}

	return memory, nil
}

// Frozen plays from a table without recording states or learning. It is used
// against humans and during evaluation.
type Frozen struct {
	rng    *rand.Rand
	policy Policy
}

func NewFrozen(rng *rand.Rand, table *qtable.Table, epsilon float64) *Frozen {
	return &Frozen{
		rng:    rng,
		policy: Policy{Epsilon: epsilon, Values: table},
	}
}

func (that *Frozen) SelectMove(board entity.Board, moves []entity.Coord, sign entity.Mark) (entity.Coord, error) {
	return that.policy.Choose(that.rng, board, moves, sign)
}
