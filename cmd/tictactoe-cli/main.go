package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gridrivals/tictactoe-backend/internal/engine"
)

// main plays a terminal match between a human and the search player.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	source := engine.NewConsoleSource(os.Stdin, os.Stdout)
	human := engine.NewHumanPlayer(engine.PlayerA, "Player A", source, os.Stdout)
	machine := engine.NewSearchPlayer(engine.PlayerB, "Player B")

	match := engine.NewMatch(logger, os.Stdout, human, machine)

	if err := match.Run(); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}

		fmt.Fprintf(os.Stderr, "match failed: %v\n", err)
		os.Exit(1)
	}
}
