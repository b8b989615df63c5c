package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridrivals/tictactoe-backend/internal/apperror"
	"github.com/gridrivals/tictactoe-backend/internal/entity"
	"github.com/gridrivals/tictactoe-backend/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePlayerRepo and fakeGameRepo back the services with in-memory maps so
// the gameplay flows run without redis.
type fakePlayerRepo struct {
	players map[string]*entity.Player
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[string]*entity.Player)}
}

func (that *fakePlayerRepo) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.players[player.ID] = player
	return nil
}

func (that *fakePlayerRepo) GetByID(_ context.Context, id string) (*entity.Player, error) {
	player, ok := that.players[id]
	if !ok {
		return &entity.Player{}, repository.ErrPlayerNotFound
	}
	return player, nil
}

type fakeGameRepo struct {
	games map[string]*entity.Game
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[string]*entity.Game)}
}

func (that *fakeGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.games[game.ID] = game
	return nil
}

func (that *fakeGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.games[id]
	if !ok {
		return &entity.Game{}, repository.ErrGameNotFound
	}
	return game, nil
}

func (that *fakeGameRepo) GetWaitingPublicGame(_ context.Context) (*entity.Game, error) {
	for _, game := range that.games {
		if game.IsPublic() && game.IsWaiting() {
			return game, nil
		}
	}
	return nil, apperror.ErrNoWaitingGames
}

func (that *fakeGameRepo) DeleteByID(_ context.Context, id string) error {
	delete(that.games, id)
	return nil
}

func newGamePlay(t *testing.T) (GamePlayService, PlayerService, *fakePlayerRepo, *fakeGameRepo) {
	t.Helper()

	playerRepo := newFakePlayerRepo()
	gameRepo := newFakeGameRepo()

	playerService := NewPlayerService(playerRepo)
	gameService := NewGameService(gameRepo)
	gamePlay := NewGamePlayService(discardLogger(), playerService, gameService, NewBotService())

	return gamePlay, playerService, playerRepo, gameRepo
}

func TestGamePlayService_GetOrCreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a waiting game for a free player", func(t *testing.T) {
		// Given: a player without a game
		gamePlay, playerService, _, _ := newGamePlay(t)
		player, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)

		// When: asking for a game
		game, err := gamePlay.GetOrCreateGame(ctx, player, entity.PrivateType)

		// Then: a waiting game is created with the player as X
		require.NoError(t, err)
		assert.True(t, game.IsWaiting())
		assert.Equal(t, entity.PlayerX, player.Mark)
		assert.Equal(t, game.ID, player.GameID)
	})

	t.Run("A bot game starts immediately", func(t *testing.T) {
		// Given: a player without a game
		gamePlay, playerService, _, _ := newGamePlay(t)
		player, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)

		// When: asking for a game against the bot
		game, err := gamePlay.GetOrCreateGame(ctx, player, entity.WithBotType)

		// Then: the game is ongoing with two seated players
		require.NoError(t, err)
		assert.True(t, game.IsOngoing())
		require.Len(t, game.Players, 2)
		assert.True(t, game.Players[1].IsBot())

		// And: when the bot drew X it has already opened the game
		if game.Players[1].Mark == entity.PlayerX {
			moves := 0
			for _, cell := range game.Board {
				if cell != entity.EmptyCell {
					moves++
				}
			}
			assert.Equal(t, 1, moves)
		}
	})

	t.Run("Returns the player's existing game", func(t *testing.T) {
		// Given: a player already in a game
		gamePlay, playerService, _, _ := newGamePlay(t)
		player, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)

		created, err := gamePlay.GetOrCreateGame(ctx, player, entity.PrivateType)
		require.NoError(t, err)

		// When: asking again
		game, err := gamePlay.GetOrCreateGame(ctx, player, entity.PrivateType)

		// Then: the same game comes back
		require.NoError(t, err)
		assert.Equal(t, created.ID, game.ID)
	})
}

func TestGamePlayService_JoinGameByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Second player joins and the game starts", func(t *testing.T) {
		// Given: a waiting game and a second player
		gamePlay, playerService, _, _ := newGamePlay(t)

		host, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)
		game, err := gamePlay.GetOrCreateGame(ctx, host, entity.PrivateType)
		require.NoError(t, err)

		guest, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)

		// When: the guest joins by id
		joined, err := gamePlay.JoinGameByID(ctx, game.ID, guest.ID)

		// Then: the game is ongoing and the guest plays O
		require.NoError(t, err)
		assert.True(t, joined.IsOngoing())
		assert.Equal(t, entity.PlayerO, guest.Mark)
		require.Len(t, joined.Players, 2)
	})

	t.Run("A third player is rejected", func(t *testing.T) {
		// Given: a game that already seats two players
		gamePlay, playerService, _, _ := newGamePlay(t)

		host, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)
		game, err := gamePlay.GetOrCreateGame(ctx, host, entity.PrivateType)
		require.NoError(t, err)

		guest, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)
		_, err = gamePlay.JoinGameByID(ctx, game.ID, guest.ID)
		require.NoError(t, err)

		intruder, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)

		// When: a third player tries to join
		_, err = gamePlay.JoinGameByID(ctx, game.ID, intruder.ID)

		// Then: the game is full
		require.ErrorIs(t, err, apperror.ErrGameAlreadyFull)
	})

	t.Run("Rejoining your own game is a no-op", func(t *testing.T) {
		// Given: a host already seated in a waiting game
		gamePlay, playerService, _, _ := newGamePlay(t)

		host, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)
		game, err := gamePlay.GetOrCreateGame(ctx, host, entity.PrivateType)
		require.NoError(t, err)

		// When: the host joins their own game
		joined, err := gamePlay.JoinGameByID(ctx, game.ID, host.ID)

		// Then: the game is returned unchanged
		require.NoError(t, err)
		assert.Equal(t, game.ID, joined.ID)
		assert.True(t, joined.IsWaiting())
	})
}

func TestGamePlayService_JoinWaitingPublicGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Joins the waiting public game", func(t *testing.T) {
		// Given: a public game waiting for an opponent
		gamePlay, playerService, _, _ := newGamePlay(t)

		host, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)
		_, err = gamePlay.GetOrCreateGame(ctx, host, entity.PublicType)
		require.NoError(t, err)

		guest, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)

		// When: the guest asks for any public game
		joined, err := gamePlay.JoinWaitingPublicGame(ctx, guest.ID)

		// Then: the guest is seated and the game starts
		require.NoError(t, err)
		assert.True(t, joined.IsOngoing())
		assert.Equal(t, entity.PlayerO, guest.Mark)
	})

	t.Run("Reports when nothing is waiting", func(t *testing.T) {
		// Given: no public games at all
		gamePlay, playerService, _, _ := newGamePlay(t)

		guest, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)

		// When: the guest asks for any public game
		_, err = gamePlay.JoinWaitingPublicGame(ctx, guest.ID)

		// Then: the lookup fails
		require.ErrorIs(t, err, apperror.ErrNoWaitingGames)
	})
}

func TestGamePlayService_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the move and stores the game", func(t *testing.T) {
		// Given: an ongoing two-player game
		gamePlay, playerService, _, gameRepo := newGamePlay(t)

		host, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)
		game, err := gamePlay.GetOrCreateGame(ctx, host, entity.PrivateType)
		require.NoError(t, err)

		guest, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)
		_, err = gamePlay.JoinGameByID(ctx, game.ID, guest.ID)
		require.NoError(t, err)

		// When: the host plays the center
		updated, err := gamePlay.MakeTurn(ctx, host.ID, 4)

		// Then: the move is on the board and persisted
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, updated.Board[4])

		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, stored.Board[4])
	})

	t.Run("Rejects a turn while the game is waiting", func(t *testing.T) {
		// Given: a waiting game with a single player
		gamePlay, playerService, _, _ := newGamePlay(t)

		host, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)
		_, err = gamePlay.GetOrCreateGame(ctx, host, entity.PrivateType)
		require.NoError(t, err)

		// When: the host moves before an opponent joined
		_, err = gamePlay.MakeTurn(ctx, host.ID, 0)

		// Then: the game is not started yet
		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("The bot answers in a bot game", func(t *testing.T) {
		// Given: a bot game where the human plays X
		gamePlay, playerService, _, _ := newGamePlay(t)

		human, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)

		var game *entity.Game
		for {
			game, err = gamePlay.GetOrCreateGame(ctx, human, entity.WithBotType)
			require.NoError(t, err)
			if human.Mark == entity.PlayerX {
				break
			}

			// the random deal gave the bot X; start over
			gamePlay.CleanupGame(ctx, game)
		}

		// When: the human makes the opening move
		updated, err := gamePlay.MakeTurn(ctx, human.ID, 0)

		// Then: the bot has already replied
		require.NoError(t, err)
		humanCells, botCells := 0, 0
		for _, cell := range updated.Board {
			switch cell {
			case entity.PlayerX:
				humanCells++
			case entity.PlayerO:
				botCells++
			}
		}
		assert.Equal(t, 1, humanCells)
		assert.Equal(t, 1, botCells)
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: an ongoing game with the center taken
		gamePlay, playerService, _, _ := newGamePlay(t)

		host, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)
		game, err := gamePlay.GetOrCreateGame(ctx, host, entity.PrivateType)
		require.NoError(t, err)

		guest, err := playerService.CreatePlayer(ctx)
		require.NoError(t, err)
		_, err = gamePlay.JoinGameByID(ctx, game.ID, guest.ID)
		require.NoError(t, err)

		_, err = gamePlay.MakeTurn(ctx, host.ID, 4)
		require.NoError(t, err)

		// When: the guest aims at the same cell
		_, err = gamePlay.MakeTurn(ctx, guest.ID, 4)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})
}

func TestGamePlayService_CleanupGame(t *testing.T) {
	ctx := context.Background()

	// Given: a finished game with two seated players
	gamePlay, playerService, playerRepo, gameRepo := newGamePlay(t)

	host, err := playerService.CreatePlayer(ctx)
	require.NoError(t, err)
	game, err := gamePlay.GetOrCreateGame(ctx, host, entity.PrivateType)
	require.NoError(t, err)

	guest, err := playerService.CreatePlayer(ctx)
	require.NoError(t, err)
	_, err = gamePlay.JoinGameByID(ctx, game.ID, guest.ID)
	require.NoError(t, err)

	// When: the game is cleaned up
	gamePlay.CleanupGame(ctx, game)

	// Then: the game is gone and both seats are released
	_, err = gameRepo.GetByID(ctx, game.ID)
	require.ErrorIs(t, err, repository.ErrGameNotFound)

	for _, id := range []string{host.ID, guest.ID} {
		stored, err := playerRepo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, stored.GameID)
		assert.Empty(t, stored.Mark)
	}
}
