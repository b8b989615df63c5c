package engine

import (
	"github.com/gridrivals/tictactoe-backend/internal/apperror"
)

// Token marks the owner of a single cell. A cell holds exactly one value.
type Token uint8

const (
	Empty Token = iota
	PlayerA
	PlayerB
)

const (
	boardSize  = 3
	boardCells = boardSize * boardSize
)

// Lines are the 8 triples of cell indexes checked for three-in-a-row:
// 3 rows, 3 columns and 2 diagonals over the flat board.
var Lines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Move addresses a cell by zero-based row and column.
type Move struct {
	Row int
	Col int
}

// MoveFromCell converts a flat cell index back into a Move.
func MoveFromCell(cell int) Move {
	return Move{Row: cell / boardSize, Col: cell % boardSize}
}

// Cell returns the flat index of the move over the 9-cell board.
func (that Move) Cell() int {
	return that.Row*boardSize + that.Col
}

// Board is a 3x3 grid stored flat, plus the count of cells still empty.
// It is mutated only through Apply and Undo.
type Board struct {
	grid [boardCells]Token
	left int
}

func NewBoard() *Board {
	return &Board{left: boardCells}
}

// Clone returns an independent copy for private search exploration.
func (that *Board) Clone() *Board {
	copied := *that
	return &copied
}

// InRange reports whether both coordinates are within the grid.
func (that *Board) InRange(move Move) bool {
	return move.Row >= 0 && move.Row < boardSize && move.Col >= 0 && move.Col < boardSize
}

// IsEmpty reports whether the cell holds no token.
// The move must already be range-checked by the caller.
func (that *Board) IsEmpty(move Move) bool {
	return that.grid[move.Cell()] == Empty
}

// IsDraw reports whether no empty cells remain.
func (that *Board) IsDraw() bool {
	return that.left == 0
}

// TokenAt returns the token occupying the cell.
// The move must already be range-checked by the caller.
func (that *Board) TokenAt(move Move) Token {
	return that.grid[move.Cell()]
}

// CountLines counts the lines holding exactly amount cells of token with the
// remaining cells empty. amount=3 detects a win, amount=2 an open threat.
func (that *Board) CountLines(token Token, amount int) int {
	count := 0

	for _, line := range Lines {
		owned, empty := 0, 0
		for _, cell := range line {
			switch that.grid[cell] {
			case token:
				owned++
			case Empty:
				empty++
			}
		}

		if owned == amount && owned+empty == len(line) {
			count++
		}
	}

	return count
}

// Apply writes token into the cell and decrements the empty-cell count.
// The board is unchanged when an error is returned.
func (that *Board) Apply(move Move, token Token) error {
	if !that.InRange(move) {
		return apperror.ErrOutOfRange
	}

	if !that.IsEmpty(move) {
		return apperror.ErrCellOccupied
	}

	if token == Empty {
		return apperror.ErrInvalidToken
	}

	if that.IsDraw() {
		return apperror.ErrBoardFull
	}

	that.grid[move.Cell()] = token
	that.left--

	return nil
}

// Undo resets the cell to Empty, exactly reversing a previous Apply on the
// same move. Out-of-range and already-empty moves are silent no-ops.
func (that *Board) Undo(move Move) {
	if !that.InRange(move) {
		return
	}

	if that.IsEmpty(move) {
		return
	}

	that.grid[move.Cell()] = Empty
	that.left++
}

// Opponent maps PlayerA to PlayerB and back. Empty stays Empty.
func Opponent(token Token) Token {
	switch token {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}
