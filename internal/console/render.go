// Package console is the text surface for interactive play: it draws the
// board and reads the human player's moves.
package console

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/rocketscienceinc/tictactoe-qlearning/internal/entity"
	"github.com/rocketscienceinc/tictactoe-qlearning/internal/tictactoe"
)

type Renderer struct {
	out io.Writer
	au  aurora.Aurora
}

func NewRenderer(out io.Writer, colors bool) *Renderer {
	return &Renderer{
		out: out,
		au:  aurora.NewAurora(colors),
	}
}

// Board prints the grid with row and column indexes.
func (that *Renderer) Board(board entity.Board) {
	fmt.Fprintln(that.out, "    0   1   2")
	for row := range entity.Size {
		fmt.Fprintf(that.out, "%d ", row)
		for col := range entity.Size {
			fmt.Fprintf(that.out, " %s ", that.cell(board[row][col]))
			if col < entity.Size-1 {
				fmt.Fprint(that.out, that.au.Faint("|"))
			}
		}
		fmt.Fprintln(that.out)
		if row < entity.Size-1 {
			fmt.Fprintln(that.out, "  ", that.au.Faint("---+---+---"))
		}
	}
	fmt.Fprintln(that.out)
}

func (that *Renderer) cell(mark entity.Mark) aurora.Value {
	switch mark {
	case entity.PlayerA:
		return that.au.Bold(that.au.Blue(mark.Symbol()))
	case entity.PlayerB:
		return that.au.Bold(that.au.Red(mark.Symbol()))
	default:
		return that.au.Faint(mark.Symbol())
	}
}

// OnMove redraws the board after every move.
func (that *Renderer) OnMove(game *tictactoe.Game, player entity.Mark, move entity.Coord) {
	fmt.Fprintf(that.out, "%s played row %d col %d\n", player.Symbol(), move.Row, move.Col)
	that.Board(game.Board)
}

// Outcome announces the end of a game from the human's point of view.
func (that *Renderer) Outcome(outcome entity.Outcome, human entity.Mark) {
	switch {
	case outcome.Status == entity.StatusDrawn:
		fmt.Fprintln(that.out, that.au.Yellow("It's a draw!"))
	case outcome.Winner == human:
		fmt.Fprintln(that.out, that.au.Green(fmt.Sprintf("Player %s wins! Well played.", outcome.Winner.Symbol())))
	default:
		fmt.Fprintln(that.out, that.au.Red(fmt.Sprintf("Player %s wins!", outcome.Winner.Symbol())))
	}
}
