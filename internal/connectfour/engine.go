package connectfour

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const (
	DefaultSize      = 8
	DefaultRunLength = 4

	minPlayers = 2
)

// RandSource picks the starting player. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

type Option func(*options)

type options struct {
	id        string
	size      int
	runLength int
	rand      RandSource
}

func WithSize(size int) Option {
	return func(o *options) {
		o.size = size
	}
}

func WithRunLength(runLength int) Option {
	return func(o *options) {
		o.runLength = runLength
	}
}

func WithRand(source RandSource) Option {
	return func(o *options) {
		o.rand = source
	}
}

func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// MoveResult describes a successful drop. Events are ordered: slot filled, then either
// turn changed or game over.
type MoveResult struct {
	Position entity.Position
	Player   entity.PlayerID
	Outcome  entity.Outcome
	Events   []entity.Event
}

// Engine is the state machine of a single game. It is not safe for concurrent use.
type Engine struct {
	id        string
	grid      *entity.Grid
	players   []*entity.Player
	current   int
	runLength int
	outcome   entity.Outcome
}

// New - creates a game over players with a randomly chosen starting player.
func New(players []*entity.Player, opts ...Option) (*Engine, error) {
	conf := options{
		size:      DefaultSize,
		runLength: DefaultRunLength,
	}
	for _, opt := range opts {
		opt(&conf)
	}

	if err := validatePlayers(players); err != nil {
		return nil, err
	}

	grid, err := entity.NewGrid(conf.size)
	if err != nil {
		return nil, fmt.Errorf("failed to create grid: %w", err)
	}

	if conf.runLength < 1 || conf.runLength > conf.size {
		return nil, fmt.Errorf("%w: %d on a %dx%d grid", apperror.ErrInvalidRunLength, conf.runLength, conf.size, conf.size)
	}

	if conf.rand == nil {
		conf.rand = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // starting player only
	}

	if conf.id == "" {
		conf.id = uuid.NewString()
	}

	return &Engine{
		id:        conf.id,
		grid:      grid,
		players:   players,
		current:   conf.rand.Intn(len(players)),
		runLength: conf.runLength,
		outcome:   entity.Ongoing(),
	}, nil
}

func validatePlayers(players []*entity.Player) error {
	if len(players) < minPlayers {
		return fmt.Errorf("%w: got %d, need %d", apperror.ErrNotEnoughPlayers, len(players), minPlayers)
	}

	seen := make(map[entity.PlayerID]struct{}, len(players))
	for i, player := range players {
		if player == nil || player.ID == entity.NoPlayer {
			return fmt.Errorf("%w: index %d", apperror.ErrInvalidPlayer, i)
		}

		if _, ok := seen[player.ID]; ok {
			return fmt.Errorf("%w: %d", apperror.ErrDuplicatePlayer, player.ID)
		}
		seen[player.ID] = struct{}{}
	}

	return nil
}

// Drop - drops the current player's disc into column and resolves the turn.
// A failed drop leaves the game untouched.
func (that *Engine) Drop(column int) (MoveResult, error) {
	if that.IsOver() {
		return MoveResult{}, apperror.ErrGameOver
	}

	player := that.players[that.current]

	position, err := that.grid.DropIn(column, player.ID)
	if err != nil {
		return MoveResult{}, fmt.Errorf("invalid drop: %w", err)
	}

	events := []entity.Event{entity.SlotFilledEvent(that.id, position, player.ID)}

	switch {
	case CheckWin(that.grid, position, player.ID, that.runLength):
		that.outcome = entity.Won(player.ID)
		player.Wins++
		events = append(events, entity.GameOverEvent(that.id, that.outcome))
	case that.grid.IsFull():
		that.outcome = entity.Tied()
		events = append(events, entity.GameOverEvent(that.id, that.outcome))
	default:
		that.current = (that.current + 1) % len(that.players)
		events = append(events, entity.TurnChangedEvent(that.id, that.players[that.current].ID))
	}

	return MoveResult{
		Position: position,
		Player:   player.ID,
		Outcome:  that.outcome,
		Events:   events,
	}, nil
}

func (that *Engine) ID() string {
	return that.id
}

func (that *Engine) Size() int {
	return that.grid.Size()
}

func (that *Engine) RunLength() int {
	return that.runLength
}

// Players - copies of the players in turn order.
func (that *Engine) Players() []entity.Player {
	players := make([]entity.Player, 0, len(that.players))
	for _, player := range that.players {
		players = append(players, *player)
	}

	return players
}

func (that *Engine) CurrentPlayer() *entity.Player {
	return that.players[that.current]
}

func (that *Engine) OccupantAt(row, col int) (entity.PlayerID, bool) {
	return that.grid.OccupantAt(row, col)
}

// LandingRow - previews where a drop into column would land.
func (that *Engine) LandingRow(column int) (int, bool) {
	return that.grid.LandingRow(column)
}

func (that *Engine) Outcome() entity.Outcome {
	return that.outcome
}

func (that *Engine) IsOver() bool {
	return that.outcome.IsTerminal()
}

func (that *Engine) Winner() (*entity.Player, bool) {
	if !that.outcome.IsWon() {
		return nil, false
	}

	for _, player := range that.players {
		if player.ID == that.outcome.Winner {
			return player, true
		}
	}

	return nil, false
}

// WinningLine - positions of the winning run, nil unless the game was won.
func (that *Engine) WinningLine(last entity.Position) []entity.Position {
	if !that.outcome.IsWon() {
		return nil
	}

	return WinningLine(that.grid, last, that.outcome.Winner, that.runLength)
}

func (that *Engine) State() entity.GameState {
	return entity.GameState{
		ID:            that.id,
		Size:          that.grid.Size(),
		RunLength:     that.runLength,
		Cells:         that.grid.Cells(),
		Players:       that.Players(),
		CurrentPlayer: that.CurrentPlayer().ID,
		Outcome:       that.outcome,
	}
}
