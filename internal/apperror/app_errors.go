package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrInvalidMark  = errors.New("invalid mark")

	ErrTableFull     = errors.New("q-table is full")
	ErrKeyNotFound   = errors.New("state key not found in q-table")
	ErrInvalidRecord = errors.New("invalid q-table record")
	ErrMemoryFull    = errors.New("episode memory is full")

	ErrInputClosed = errors.New("input closed")
)
