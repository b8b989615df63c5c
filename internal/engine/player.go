package engine

import (
	"fmt"
	"io"
)

// Player produces moves for one side of a match. Implementations own their
// token and display name; they never own the board.
type Player interface {
	Turn(board *Board) (Move, error)
	Token() Token
	Name() string
}

// MoveSource supplies raw moves for a human player, typically from a
// terminal. Coordinates are already zero-based by the time they get here.
type MoveSource interface {
	ReadMove() (Move, error)
}

// HumanPlayer asks its MoveSource for moves until a legal one shows up,
// telling the player why each rejected attempt was rejected.
type HumanPlayer struct {
	token  Token
	name   string
	source MoveSource
	out    io.Writer
}

func NewHumanPlayer(token Token, name string, source MoveSource, out io.Writer) *HumanPlayer {
	return &HumanPlayer{
		token:  token,
		name:   name,
		source: source,
		out:    out,
	}
}

func (that *HumanPlayer) Turn(board *Board) (Move, error) {
	for {
		move, err := that.source.ReadMove()
		if err != nil {
			return Move{}, fmt.Errorf("failed to read move: %w", err)
		}

		if !board.InRange(move) {
			fmt.Fprintln(that.out, "Wrong input!")
			continue
		}

		if !board.IsEmpty(move) {
			fmt.Fprintln(that.out, "Occupied!")
			continue
		}

		return move, nil
	}
}

func (that *HumanPlayer) Token() Token {
	return that.token
}

func (that *HumanPlayer) Name() string {
	return that.name
}

// SearchPlayer computes its moves with BestMove on a private copy of the
// live board.
type SearchPlayer struct {
	token Token
	name  string
}

func NewSearchPlayer(token Token, name string) *SearchPlayer {
	return &SearchPlayer{
		token: token,
		name:  name,
	}
}

func (that *SearchPlayer) Turn(board *Board) (Move, error) {
	node := BestMove(board.Clone(), that.token)
	return node.Move, nil
}

func (that *SearchPlayer) Token() Token {
	return that.token
}

func (that *SearchPlayer) Name() string {
	return that.name
}
