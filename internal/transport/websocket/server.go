package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridrivals/tictactoe-backend/internal/entity"
)

const (
	actionConnect  = "connect"
	actionGameNew  = "game:new"
	actionGameJoin = "game:join"
	actionGameTurn = "game:turn"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrNotConnected   = errors.New("player is not connected")
	ErrMissingCell    = errors.New("cell is required")
	ErrUnknownPayload = errors.New("invalid payload")
)

type gameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)

	GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, conn *connection, message *Message) error

type Server struct {
	logger   *slog.Logger
	useCase  gameUseCase
	upgrader websocket.Upgrader
	handlers map[string]handlerFunc

	mu          sync.RWMutex
	connections map[string]*connection
}

func New(logger *slog.Logger, useCase gameUseCase) *Server {
	server := &Server{
		logger:  logger,
		useCase: useCase,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		handlers:    make(map[string]handlerFunc),
		connections: make(map[string]*connection),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameJoin] = server.handleJoinGame
	server.handlers[actionGameTurn] = server.handleGameTurn

	return server
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	ws, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(ws)
	defer func() {
		that.dropConnection(conn)
		_ = conn.close()
	}()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	that.handleMessages(ctx, conn)
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.ws.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("client errored or disconnected", "error", err)
			}
			return
		}

		if err := that.processMessage(ctx, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)

			if err = conn.sendError(message.Action, userFacing(err)); err != nil {
				log.Error("failed to send error response", "error", err)
				return
			}
		}
	}
}

// processMessage - dispatches the message to its action handler.
func (that *Server) processMessage(ctx context.Context, conn *connection, message *Message) error {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, message.Action)
	}

	return handler(ctx, conn, message)
}

// registerConnection binds the socket to the player, replacing a stale
// connection from an earlier session.
func (that *Server) registerConnection(playerID string, conn *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	conn.playerID = playerID
	that.connections[playerID] = conn
}

func (that *Server) dropConnection(conn *connection) {
	if conn.playerID == "" {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.connections[conn.playerID]; ok && current == conn {
		delete(that.connections, conn.playerID)
	}
}

func (that *Server) connectionByPlayer(playerID string) (*connection, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	conn, ok := that.connections[playerID]
	return conn, ok
}
