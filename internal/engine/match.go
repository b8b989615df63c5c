package engine

import (
	"fmt"
	"io"
	"log/slog"
)

// Match runs a single game between two players, alternating turns until a
// win, a draw, or nine placed moves. Results are announced on out.
type Match struct {
	logger  *slog.Logger
	board   *Board
	players [2]Player
	out     io.Writer
}

func NewMatch(logger *slog.Logger, out io.Writer, first, second Player) *Match {
	return &Match{
		logger:  logger,
		board:   NewBoard(),
		players: [2]Player{first, second},
		out:     out,
	}
}

// Run plays the match to completion. A move the board rejects is dropped
// without consuming the turn, so the same player moves again.
func (that *Match) Run() error {
	log := that.logger.With("component", "match")

	current := 0
	for placed := 0; placed < boardCells; {
		player := that.players[current]

		move, err := player.Turn(that.board)
		if err != nil {
			return fmt.Errorf("failed to get move from %s: %w", player.Name(), err)
		}

		if err = that.board.Apply(move, player.Token()); err != nil {
			log.Warn("move rejected", "player", player.Name(), "row", move.Row, "col", move.Col, "error", err)
			continue
		}
		placed++

		log.Debug("move applied", "player", player.Name(), "row", move.Row, "col", move.Col)

		if that.board.CountLines(player.Token(), 3) > 0 {
			fmt.Fprintf(that.out, "%s won!\n", player.Name())
			return nil
		}

		if that.board.IsDraw() {
			fmt.Fprintln(that.out, "Game ends in draw!")
			return nil
		}

		current = (current + 1) % len(that.players)
	}

	return nil
}
