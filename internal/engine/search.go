package engine

// Node pairs a candidate move with its evaluated score. It only lives
// inside a search call; the final one carries the chosen move out.
type Node struct {
	Move  Move
	Value int
}

// Below any attainable score, so the first legal candidate always wins.
const unreachedValue = -10000

// BestMove picks the strongest move for token on the given board.
//
// Empty cells are visited in row-major order. Each candidate is applied,
// scored with Evaluate, and undone. A zero score on a non-terminal board
// recurses negamax-style: the opponent's best value, negated. A non-zero
// score (or a draw) cuts the recursion short and is used as-is.
//
// Among equally scored candidates the first one visited is kept.
//
// The caller hands in the board it wants explored; BestMove restores it
// to its original state before returning.
func BestMove(board *Board, token Token) Node {
	best := Node{Value: unreachedValue}

	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			move := Move{Row: row, Col: col}
			if !board.IsEmpty(move) {
				continue
			}

			// cannot fail: the cell was just checked empty and in range
			_ = board.Apply(move, token)

			value := Evaluate(board, token)
			if value == scoreNeutral && !board.IsDraw() {
				value = -BestMove(board, Opponent(token)).Value
			}

			board.Undo(move)

			if value > best.Value {
				best = Node{Move: move, Value: value}
			}
		}
	}

	return best
}
