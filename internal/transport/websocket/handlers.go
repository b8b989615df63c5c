package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/gridrivals/tictactoe-backend/internal/apperror"
	"github.com/gridrivals/tictactoe-backend/internal/entity"
)

func (that *Server) handleConnect(ctx context.Context, conn *connection, message *Message) error {
	var payload ConnectPayload
	if err := decodePayload(message.Payload, &payload); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownPayload, err)
	}

	player, err := that.useCase.GetOrCreatePlayer(ctx, payload.Player.ID)
	if err != nil {
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	that.registerConnection(player.ID, conn)

	if player.ID == payload.Player.ID {
		that.logger.Info("player connected", "playerID", player.ID)
	} else {
		that.logger.Info("registered new player", "playerID", player.ID)
	}

	return conn.sendMessage(message.Action, ResponsePayload{Player: playerInfo(player)})
}

func (that *Server) handleNewGame(ctx context.Context, conn *connection, message *Message) error {
	if conn.playerID == "" {
		return ErrNotConnected
	}

	var payload NewGamePayload
	if err := decodePayload(message.Payload, &payload); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownPayload, err)
	}

	gameType := payload.Game.Type
	if gameType == "" {
		gameType = entity.PrivateType
	}

	game, err := that.useCase.GetOrCreateGame(ctx, conn.playerID, gameType)
	if err != nil {
		return fmt.Errorf("failed to get or create game: %w", err)
	}

	that.logger.Info("game ready", "gameID", game.ID, "type", game.Type, "playerID", conn.playerID)

	that.broadcastGame(message.Action, game)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, conn *connection, message *Message) error {
	if conn.playerID == "" {
		return ErrNotConnected
	}

	var payload JoinGamePayload
	if err := decodePayload(message.Payload, &payload); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownPayload, err)
	}

	game, err := that.useCase.JoinGame(ctx, payload.Game.ID, conn.playerID)
	if err != nil {
		return fmt.Errorf("failed to join game: %w", err)
	}

	that.logger.Info("player joined game", "gameID", game.ID, "playerID", conn.playerID)

	that.broadcastGame(message.Action, game)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, conn *connection, message *Message) error {
	if conn.playerID == "" {
		return ErrNotConnected
	}

	var payload TurnPayload
	if err := decodePayload(message.Payload, &payload); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownPayload, err)
	}

	if payload.Cell == nil {
		return ErrMissingCell
	}

	game, err := that.useCase.MakeTurn(ctx, conn.playerID, *payload.Cell)
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		that.logger.Info("game finished", "gameID", game.ID, "winner", game.Winner)
	case err != nil:
		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.broadcastGame(message.Action, game)

	return nil
}

// broadcastGame sends the current game state to every seated player with an
// open connection, each seeing their own player block.
func (that *Server) broadcastGame(action string, game *entity.Game) {
	gameView := maskGameDetails(game)

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		conn, ok := that.connectionByPlayer(player.ID)
		if !ok {
			continue
		}

		payload := ResponsePayload{Player: playerInfo(player), Game: gameView}
		if err := conn.sendMessage(action, payload); err != nil {
			that.logger.Error("failed to broadcast game state", "gameID", game.ID, "playerID", player.ID, "error", err)
		}
	}
}

// userFacing strips internal wrapping from errors shown to clients.
func userFacing(err error) string {
	for _, known := range []error{
		apperror.ErrCellOccupied,
		apperror.ErrOutOfRange,
		apperror.ErrNotYourTurn,
		apperror.ErrGameIsNotStarted,
		apperror.ErrGameAlreadyFull,
		apperror.ErrNoWaitingGames,
		ErrUnknownAction,
		ErrNotConnected,
		ErrMissingCell,
		ErrUnknownPayload,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}
