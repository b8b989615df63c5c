package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// connection wraps a client socket. The mutex serializes writes: the game
// loop answers the sender while broadcasts target the same socket.
type connection struct {
	mu       sync.Mutex
	ws       *websocket.Conn
	playerID string
}

func newConnection(ws *websocket.Conn) *connection {
	return &connection{ws: ws}
}

func (that *connection) sendMessage(action string, payload any) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ws.WriteJSON(Response{Action: action, Payload: payload}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *connection) sendError(action string, message string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.ws.WriteJSON(Response{Action: action, Error: message}); err != nil {
		return fmt.Errorf("failed to write error message: %w", err)
	}

	return nil
}

func (that *connection) close() error {
	return that.ws.Close()
}
