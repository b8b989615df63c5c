package websocket

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/gridrivals/tictactoe-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Response is the outgoing counterpart of Message.
type Response struct {
	Action  string `json:"action"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ConnectPayload struct {
	Player struct {
		ID string `json:"id"`
	} `json:"player"`
}

type NewGamePayload struct {
	Game struct {
		Type string `json:"type"`
	} `json:"game"`
}

type JoinGamePayload struct {
	Game struct {
		ID string `json:"id"`
	} `json:"game"`
}

type TurnPayload struct {
	Cell *int `json:"cell"`
}

// PlayerInfo holds the player details shared with clients.
type PlayerInfo struct {
	ID   string `json:"id"`
	Mark string `json:"mark,omitempty"`
}

// GameInfo is the game state shared with clients. Seated players are left
// out so opponents never learn each other's session ids.
type GameInfo struct {
	ID     string    `json:"id"`
	Board  [9]string `json:"board"`
	Turn   string    `json:"turn"`
	Winner string    `json:"winner"`
	Status string    `json:"status"`
	Type   string    `json:"type,omitempty"`
}

type ResponsePayload struct {
	Player *PlayerInfo `json:"player,omitempty"`
	Game   *GameInfo   `json:"game,omitempty"`
}

// decodePayload maps the loosely typed JSON payload onto the action's
// payload struct, tolerating numbers arriving as strings.
func decodePayload(raw map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create payload decoder: %w", err)
	}

	if err = decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode payload: %w", err)
	}

	return nil
}

func playerInfo(player *entity.Player) *PlayerInfo {
	return &PlayerInfo{
		ID:   player.ID,
		Mark: player.Mark,
	}
}

// maskGameDetails converts the stored game into its client-facing view.
func maskGameDetails(game *entity.Game) *GameInfo {
	return &GameInfo{
		ID:     game.ID,
		Board:  game.Board,
		Turn:   game.Turn,
		Winner: game.Winner,
		Status: game.Status,
		Type:   game.Type,
	}
}
