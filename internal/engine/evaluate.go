package engine

// Scores assigned to a board right after a hypothetical move by a token.
const (
	scoreWin     = 2  // the move completed three in a row
	scoreExposed = -1 // the opponent still has an open two-in-a-row
	scoreFork    = 1  // the move created more than one simultaneous threat
	scoreNeutral = 0
)

// Evaluate scores the position for token after token's move. It is a
// shallow single-ply heuristic: its only job is to let the search stop
// recursing when a decisive feature is already on the board.
func Evaluate(board *Board, token Token) int {
	if board.CountLines(token, 3) > 0 {
		return scoreWin
	}

	if board.CountLines(Opponent(token), 2) > 0 {
		return scoreExposed
	}

	if board.CountLines(token, 2) > 1 {
		return scoreFork
	}

	return scoreNeutral
}
