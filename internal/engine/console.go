package engine

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// ConsoleSource reads one-based (row, col) pairs from a terminal, prompting
// before each number. The returned moves are converted to zero-based.
type ConsoleSource struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewConsoleSource(in io.Reader, out io.Writer) *ConsoleSource {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	return &ConsoleSource{
		scanner: scanner,
		out:     out,
	}
}

func (that *ConsoleSource) ReadMove() (Move, error) {
	row, err := that.readNumber("Insert row: ")
	if err != nil {
		return Move{}, err
	}

	col, err := that.readNumber("Insert col: ")
	if err != nil {
		return Move{}, err
	}

	return Move{Row: row - 1, Col: col - 1}, nil
}

func (that *ConsoleSource) readNumber(prompt string) (int, error) {
	fmt.Fprint(that.out, prompt)

	if !that.scanner.Scan() {
		if err := that.scanner.Err(); err != nil {
			return 0, fmt.Errorf("failed to read input: %w", err)
		}
		return 0, io.EOF
	}

	number, err := strconv.Atoi(that.scanner.Text())
	if err != nil {
		// a non-numeric word maps to an out-of-range move, so the
		// player is re-prompted instead of killing the match
		return 0, nil
	}

	return number, nil
}
