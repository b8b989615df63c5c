package apperror

import "errors"

// Board-level validation errors. Rejected operations are no-ops that keep
// the board invariants intact.
var (
	ErrOutOfRange   = errors.New("move is out of range")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidToken = errors.New("token must not be empty")
	ErrBoardFull    = errors.New("board is already full")
)

// Session-level errors shared between the services and the transports.
var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrGameAlreadyFull  = errors.New("game already has two players")
	ErrNoWaitingGames   = errors.New("no waiting public games")
)
