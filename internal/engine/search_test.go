package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestMove(t *testing.T) {
	t.Run("Takes an immediate win", func(t *testing.T) {
		// Given: PlayerB has two in the top row with the third cell open
		board := buildBoard(t, [9]Token{
			PlayerB, PlayerB, Empty,
			PlayerA, PlayerA, Empty,
			Empty, Empty, Empty,
		})

		// When: searching for PlayerB's move
		node := BestMove(board, PlayerB)

		// Then: the winning cell is chosen with the winning score
		assert.Equal(t, Move{Row: 0, Col: 2}, node.Move)
		assert.Equal(t, 2, node.Value)
	})

	t.Run("Blocks the opponent's open threat", func(t *testing.T) {
		// Given: PlayerA threatens the top row, PlayerB holds the center
		board := buildBoard(t, [9]Token{
			PlayerA, PlayerA, Empty,
			Empty, PlayerB, Empty,
			Empty, Empty, Empty,
		})

		// When: searching for PlayerB's move
		node := BestMove(board, PlayerB)

		// Then: the only non-losing move is the block
		assert.Equal(t, Move{Row: 0, Col: 2}, node.Move)
		assert.Equal(t, 0, node.Value)
	})

	t.Run("Prefers the first of equally scored moves", func(t *testing.T) {
		// Given: PlayerB can win on two different cells
		board := buildBoard(t, [9]Token{
			PlayerB, PlayerB, Empty,
			PlayerB, PlayerB, Empty,
			PlayerA, PlayerA, Empty,
		})

		// When: searching for PlayerB's move
		node := BestMove(board, PlayerB)

		// Then: the row-major first winning cell is kept
		assert.Equal(t, Move{Row: 0, Col: 2}, node.Move)
		assert.Equal(t, 2, node.Value)
	})

	t.Run("Is deterministic and returns a legal move", func(t *testing.T) {
		// Given: a mid-game position
		board := buildBoard(t, [9]Token{
			PlayerA, Empty, Empty,
			Empty, PlayerB, Empty,
			Empty, Empty, PlayerA,
		})

		// When: running the search twice on the same position
		first := BestMove(board, PlayerB)
		second := BestMove(board, PlayerB)

		// Then: both runs agree and the move is playable
		assert.Equal(t, first, second)
		require.True(t, board.InRange(first.Move))
		require.True(t, board.IsEmpty(first.Move))
	})

	t.Run("Restores the board it explored", func(t *testing.T) {
		// Given: a position and its snapshot
		board := buildBoard(t, [9]Token{
			PlayerA, Empty, Empty,
			Empty, PlayerB, Empty,
			Empty, Empty, Empty,
		})
		snapshot := *board

		// When: running a full search directly on the board
		BestMove(board, PlayerA)

		// Then: every applied move was undone
		assert.Equal(t, snapshot, *board)
	})

	t.Run("Search from the empty board is legal for either side", func(t *testing.T) {
		// Given: an untouched board
		board := NewBoard()

		// When: searching for the opening move
		node := BestMove(board, PlayerA)

		// Then: a legal cell comes back and the board is untouched
		require.True(t, board.InRange(node.Move))
		require.True(t, board.IsEmpty(node.Move))
		assert.Equal(t, NewBoard(), board)
	})
}
