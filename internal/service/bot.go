package service

import (
	"errors"
	"fmt"

	"github.com/gridrivals/tictactoe-backend/internal/engine"
	"github.com/gridrivals/tictactoe-backend/internal/entity"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// MakeTurn plays the bot's move, chosen by the adversarial search over a
// private copy of the game board.
func (that *botService) MakeTurn(game *entity.Game) error {
	board := game.EngineBoard()
	if board.IsDraw() {
		return ErrNoAvailableMoves
	}

	var botPlayer *entity.Player
	for _, player := range game.Players {
		if player.IsBot() {
			botPlayer = player
			break
		}
	}

	if botPlayer == nil {
		return ErrBotNotFound
	}

	node := engine.BestMove(board, entity.TokenFromMark(botPlayer.Mark))

	if err := game.MakeTurn(botPlayer.Mark, node.Move.Cell()); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
