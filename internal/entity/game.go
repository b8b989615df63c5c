package entity

import (
	"fmt"
	"math/rand"

	"github.com/gridrivals/tictactoe-backend/internal/apperror"
	"github.com/gridrivals/tictactoe-backend/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"

	EmptyCell = ""
)

const (
	PublicType  = "public"
	PrivateType = "private"
	WithBotType = "bot"
)

var ErrUnknownGameStatus = fmt.Errorf("unknown game status")

// Game is the session state shared with clients and stored between turns.
// All rule decisions are delegated to the engine board.
type Game struct {
	ID      string    `json:"id"`
	Board   [9]string `json:"board"`
	Winner  string    `json:"winner"`
	Status  string    `json:"status"`
	Turn    string    `json:"player_turn"`
	Players []*Player `json:"players,omitempty"`
	Type    string    `json:"type,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:     id,
		Board:  [9]string{},
		Turn:   PlayerX,
		Status: StatusWaiting,
		Type:   gameType,
	}
}

// EngineBoard replays the session cells onto a fresh engine board.
func (that *Game) EngineBoard() *engine.Board {
	board := engine.NewBoard()
	for cell, mark := range that.Board {
		token := TokenFromMark(mark)
		if token == engine.Empty {
			continue
		}

		// cannot fail: cells are replayed onto an empty board in order
		_ = board.Apply(engine.MoveFromCell(cell), token)
	}

	return board
}

// TokenFromMark maps a session mark onto an engine token.
func TokenFromMark(mark string) engine.Token {
	switch mark {
	case PlayerX:
		return engine.PlayerA
	case PlayerO:
		return engine.PlayerB
	default:
		return engine.Empty
	}
}

// MarkFromToken maps an engine token back onto a session mark.
func MarkFromToken(token engine.Token) string {
	switch token {
	case engine.PlayerA:
		return PlayerX
	case engine.PlayerB:
		return PlayerO
	default:
		return EmptyCell
	}
}

// DetermineGameResult reports the winner's mark, PlayerTie for a full board
// without a winner, or EmptyCell while the game continues.
func (that *Game) DetermineGameResult() string {
	board := that.EngineBoard()

	switch {
	case board.CountLines(engine.PlayerA, 3) > 0:
		return PlayerX
	case board.CountLines(engine.PlayerB, 3) > 0:
		return PlayerO
	case board.IsDraw():
		return PlayerTie
	default:
		return EmptyCell
	}
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = ""
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
	// game continues
	default:
		that.Status = StatusOngoing
	}
}

// MakeTurn validates the move against the engine board, applies it and
// refreshes the session state.
func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= len(that.Board) {
		return apperror.ErrOutOfRange
	}

	move := engine.MoveFromCell(cell)
	if err := that.EngineBoard().Apply(move, TokenFromMark(playerMark)); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	that.Board[cell] = playerMark

	if that.Turn == PlayerX {
		that.Turn = PlayerO
	} else {
		that.Turn = PlayerX
	}

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsPublic() bool {
	return that.Type == PublicType
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// GetRandomMarks deals the two marks in random order.
func (that *Game) GetRandomMarks() (string, string) {
	if rand.Intn(2) == 0 { //nolint: gosec // not a security decision
		return PlayerX, PlayerO
	}
	return PlayerO, PlayerX
}
