package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/apperror"
)

// Mark is the content of a single cell. Players are signed unit values so a
// full line sums to exactly +3 or -3.
type Mark int32

const (
	Empty   Mark = 0
	PlayerA Mark = 1
	PlayerB Mark = -1
)

const Size = 3

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	return -that
}

func (that Mark) Valid() bool {
	return that == Empty || that == PlayerA || that == PlayerB
}

// Symbol is the console glyph for a mark: O for PlayerA, X for PlayerB.
func (that Mark) Symbol() string {
	switch that {
	case PlayerA:
		return "O"
	case PlayerB:
		return "X"
	default:
		return "-"
	}
}

// Coord addresses one cell of the board.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Coord) Valid() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// Board is a 3x3 grid of marks. It is a value type: assigning it copies it.
type Board [Size][Size]Mark

// StateKey is the row-major flattening of a board, used as the q-table key.
type StateKey [Size * Size]Mark

// StateKey flattens the board in row-major order.
func (that Board) StateKey() StateKey {
	var key StateKey
	for row := range Size {
		for col := range Size {
			key[row*Size+col] = that[row][col]
		}
	}
	return key
}

// BoardFromKey rebuilds the board a key was derived from.
func BoardFromKey(key StateKey) Board {
	var board Board
	for i, mark := range key {
		board[i/Size][i%Size] = mark
	}
	return board
}

// LegalMoves returns every empty cell in row-major scan order.
func (that Board) LegalMoves() []Coord {
	moves := make([]Coord, 0, Size*Size)
	for row := range Size {
		for col := range Size {
			if that[row][col] == Empty {
				moves = append(moves, Coord{Row: row, Col: col})
			}
		}
	}
	return moves
}

// Apply returns a copy of the board with mark placed at cell.
func (that Board) Apply(cell Coord, mark Mark) (Board, error) {
	if !cell.Valid() {
		return that, fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, cell.Row, cell.Col)
	}

	if that[cell.Row][cell.Col] != Empty {
		return that, apperror.ErrCellOccupied
	}

	that[cell.Row][cell.Col] = mark
	return that, nil
}

func (that StateKey) String() string {
	var sb strings.Builder
	for i, mark := range that {
		if i > 0 && i%Size == 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(mark.Symbol())
	}
	return sb.String()
}
