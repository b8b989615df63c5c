package entity

import "github.com/google/uuid"

type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Mark   string `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
	Bot    bool   `json:"bot,omitempty"`
}

func NewPlayer() *Player {
	return &Player{
		ID: uuid.NewString(),
	}
}

// NewBotPlayer creates the computer-controlled opponent for a game.
func NewBotPlayer(gameID string) *Player {
	return &Player{
		ID:     "bot:" + uuid.NewString(),
		Name:   "Player B",
		GameID: gameID,
		Bot:    true,
	}
}

func (that *Player) IsBot() bool {
	return that.Bot
}
