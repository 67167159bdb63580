package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
)

var errBadInput = errors.New("expected two numbers: row and column")

// Human reads moves typed as "row col" and re-prompts until a legal cell is
// given.
type Human struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewHuman(in io.Reader, out io.Writer) *Human {
	return &Human{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (that *Human) SelectMove(_ entity.Board, moves []entity.Coord, sign entity.Mark) (entity.Coord, error) {
	if len(moves) == 0 {
		return entity.Coord{}, apperror.ErrNoLegalMoves
	}

	for {
		fmt.Fprintf(that.out, "Your turn (%s). Enter row and column (0 to 2): ", sign.Symbol())

		if !that.scanner.Scan() {
			if err := that.scanner.Err(); err != nil {
				return entity.Coord{}, fmt.Errorf("failed to read move: %w", err)
			}
			return entity.Coord{}, apperror.ErrInputClosed
		}

		move, err := parseCoord(that.scanner.Text())
		if err != nil {
			fmt.Fprintf(that.out, "\n%v. Please try again.\n", err)
			continue
		}

		if slices.Contains(moves, move) {
			fmt.Fprintln(that.out)
			return move, nil
		}

		fmt.Fprintln(that.out, "\nInvalid position. Please try again.")
	}
}

func parseCoord(line string) (entity.Coord, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return entity.Coord{}, errBadInput
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Coord{}, errBadInput
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Coord{}, errBadInput
	}

	return entity.Coord{Row: row, Col: col}, nil
}
