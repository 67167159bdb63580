package entity

type Status int

const (
	StatusContinuing Status = iota
	StatusWon
	StatusDrawn
)

func (that Status) String() string {
	switch that {
	case StatusWon:
		return "won"
	case StatusDrawn:
		return "drawn"
	default:
		return "continuing"
	}
}

// Outcome is the judge's verdict on a board. Winner is set only for StatusWon.
type Outcome struct {
	Status Status `json:"status"`
	Winner Mark   `json:"winner"`
}

// Rewards an agent receives for the final outcome of an episode.
const (
	RewardWin  float32 = 1.0
	RewardDraw float32 = 0.5
	RewardLoss float32 = 0.0
)

var WinLines = [][3]Coord{
	// rows
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	// columns
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	// diagonals
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Judge classifies a board. Winning lines are checked before the full-board
// check, so a full board that contains a line is a win, never a draw.
func Judge(board Board) Outcome {
	for _, line := range WinLines {
		var sum Mark
		for _, cell := range line {
			sum += board[cell.Row][cell.Col]
		}

		switch sum {
		case 3 * PlayerA:
			return Outcome{Status: StatusWon, Winner: PlayerA}
		case 3 * PlayerB:
			return Outcome{Status: StatusWon, Winner: PlayerB}
		}
	}

	if len(board.LegalMoves()) == 0 {
		return Outcome{Status: StatusDrawn}
	}

	return Outcome{Status: StatusContinuing}
}

func (that Outcome) IsFinished() bool {
	return that.Status != StatusContinuing
}

// RewardFor returns the reward of a finished game from mark's point of view.
func (that Outcome) RewardFor(mark Mark) float32 {
	switch {
	case that.Status == StatusDrawn:
		return RewardDraw
	case that.Status == StatusWon && that.Winner == mark:
		return RewardWin
	default:
		return RewardLoss
	}
}

func (that Outcome) String() string {
	if that.Status == StatusWon {
		return "won by " + that.Winner.Symbol()
	}
	return that.Status.String()
}
