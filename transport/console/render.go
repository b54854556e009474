package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// RenderState is the console's own picture of the current game, built only from events.
type RenderState struct {
	mu      sync.Mutex
	gameID  string
	cells   map[entity.Position]entity.PlayerID
	current entity.PlayerID
	outcome entity.Outcome
	last    *entity.Position
}

func NewRenderState() *RenderState {
	return &RenderState{
		cells:   make(map[entity.Position]entity.PlayerID),
		outcome: entity.Ongoing(),
	}
}

// Notify - applies a game event to the render state.
func (that *RenderState) Notify(_ context.Context, event entity.Event) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if event.Type == entity.EventGameStarted {
		that.gameID = event.GameID
		that.cells = make(map[entity.Position]entity.PlayerID)
		that.current = event.Player
		that.outcome = entity.Ongoing()
		that.last = nil
		return nil
	}

	// events of any other game are ignored
	if event.GameID != that.gameID {
		return nil
	}

	switch event.Type {
	case entity.EventSlotFilled:
		if event.Position == nil {
			return fmt.Errorf("slot filled event without position in game %s", event.GameID)
		}
		that.cells[*event.Position] = event.Player
		position := *event.Position
		that.last = &position
	case entity.EventTurnChanged:
		that.current = event.Player
	case entity.EventGameOver:
		if event.Outcome != nil {
			that.outcome = *event.Outcome
		}
	}

	return nil
}

// Load - replaces the render state with a snapshot of a game already in progress.
func (that *RenderState) Load(state entity.GameState) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.gameID = state.ID
	that.cells = make(map[entity.Position]entity.PlayerID)
	for row, line := range state.Cells {
		for col, owner := range line {
			if owner != entity.NoPlayer {
				that.cells[entity.Position{Row: row, Col: col}] = owner
			}
		}
	}
	that.current = state.CurrentPlayer
	that.outcome = state.Outcome
	that.last = nil
}

func (that *RenderState) Cell(row, col int) entity.PlayerID {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.cells[entity.Position{Row: row, Col: col}]
}

func (that *RenderState) Current() entity.PlayerID {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.current
}

func (that *RenderState) Outcome() entity.Outcome {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.outcome
}

// Last returns the most recently filled slot of the current game.
func (that *RenderState) Last() (entity.Position, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.last == nil {
		return entity.Position{}, false
	}

	return *that.last, true
}

// Render - writes the grid with 1-based column numbers on top, followed by a status line.
// Discs of the winning run are marked with a star.
func (that *RenderState) Render(w io.Writer, size int, players []entity.Player, winning []entity.Position) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	names := make(map[entity.PlayerID]string, len(players))
	for _, player := range players {
		names[player.ID] = player.Name
	}

	highlight := make(map[entity.Position]bool, len(winning))
	for _, position := range winning {
		highlight[position] = true
	}

	var b strings.Builder

	for col := 1; col <= size; col++ {
		fmt.Fprintf(&b, "%3d", col)
	}
	b.WriteString("\n")

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			mark := "."
			position := entity.Position{Row: row, Col: col}
			if owner, ok := that.cells[position]; ok {
				mark = strconv.Itoa(int(owner))
				if highlight[position] {
					mark += "*"
				}
			}
			fmt.Fprintf(&b, "%3s", mark)
		}
		b.WriteString("\n")
	}

	switch {
	case that.outcome.IsWon():
		fmt.Fprintf(&b, "%s WINS\n", names[that.outcome.Winner])
	case that.outcome.IsTied():
		b.WriteString("TIE\n")
	default:
		fmt.Fprintf(&b, "%s to move\n", names[that.current])
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}
