package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// Subscriber receives every event of every game played in a session.
type Subscriber interface {
	Notify(ctx context.Context, event entity.Event) error
}

// Session keeps the players and their scores across games and serialises drops
// into the current game. Subscribers are notified outside the session lock, so they
// may read the session; they must not start games or drop discs themselves.
type Session struct {
	logger *slog.Logger

	// held across delivery so events reach subscribers in the order they were produced
	publishMu sync.Mutex

	mu          sync.Mutex
	players     []*entity.Player
	gameOptions []connectfour.Option
	subscribers []Subscriber
	game        *connectfour.Engine
}

// NewSession - gameOptions are applied to every game of the session.
func NewSession(logger *slog.Logger, players []*entity.Player, gameOptions ...connectfour.Option) *Session {
	return &Session{
		logger: logger.With("component", "session"),

		players:     players,
		gameOptions: gameOptions,
	}
}

func (that *Session) Subscribe(subscriber Subscriber) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.subscribers = append(that.subscribers, subscriber)
}

// NewGame - discards the current game, if any, and starts a fresh one.
func (that *Session) NewGame(ctx context.Context) (*connectfour.Engine, error) {
	log := that.logger.With("method", "NewGame")

	that.mu.Lock()

	game, err := connectfour.New(that.players, that.gameOptions...)
	if err != nil {
		that.mu.Unlock()
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.game = game

	starter := game.CurrentPlayer()
	log.Info("game started", "game_id", game.ID(), "size", game.Size(), "run_length", game.RunLength(), "player", starter.ID)

	that.publishAndUnlock(ctx, []entity.Event{entity.GameStartedEvent(game.ID(), starter.ID)})

	return game, nil
}

// Drop - drops the current player's disc into column of the current game.
func (that *Session) Drop(ctx context.Context, column int) (connectfour.MoveResult, error) {
	log := that.logger.With("method", "Drop")

	that.mu.Lock()

	if that.game == nil {
		that.mu.Unlock()
		return connectfour.MoveResult{}, apperror.ErrNoActiveGame
	}

	result, err := that.game.Drop(column)
	if err != nil {
		log.Debug("drop rejected", "game_id", that.game.ID(), "column", column, "error", err)
		that.mu.Unlock()
		return connectfour.MoveResult{}, fmt.Errorf("failed to drop disc: %w", err)
	}

	log.Debug("disc dropped", "game_id", that.game.ID(), "player", result.Player, "row", result.Position.Row, "col", result.Position.Col)

	if result.Outcome.IsTerminal() {
		log.Info("game over", "game_id", that.game.ID(), "status", result.Outcome.Status, "winner", result.Outcome.Winner)
	}

	that.publishAndUnlock(ctx, result.Events)

	return result, nil
}

// Game returns the current game or nil before the first NewGame.
func (that *Session) Game() *connectfour.Engine {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game
}

func (that *Session) Scoreboard() []entity.Player {
	that.mu.Lock()
	defer that.mu.Unlock()

	scores := make([]entity.Player, 0, len(that.players))
	for _, player := range that.players {
		scores = append(scores, *player)
	}

	return scores
}

// ResetScores - explicit session reset of every player's wins.
func (that *Session) ResetScores() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for _, player := range that.players {
		player.Wins = 0
	}

	that.logger.Info("scores reset")
}

// publishAndUnlock releases mu and then delivers events to a snapshot of the subscribers.
// Must be called with mu held. Failures are logged: the move is already committed.
func (that *Session) publishAndUnlock(ctx context.Context, events []entity.Event) {
	log := that.logger.With("method", "publish")

	subscribers := make([]Subscriber, len(that.subscribers))
	copy(subscribers, that.subscribers)

	that.publishMu.Lock()
	defer that.publishMu.Unlock()

	that.mu.Unlock()

	for _, event := range events {
		for _, subscriber := range subscribers {
			if err := subscriber.Notify(ctx, event); err != nil {
				log.Error("failed to notify subscriber", "event", event.Type, "game_id", event.GameID, "error", err)
			}
		}
	}
}
