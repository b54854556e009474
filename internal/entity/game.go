package entity

type Status string

const (
	StatusOngoing Status = "ongoing"
	StatusWon     Status = "won"
	StatusTied    Status = "tied"
)

type EventType string

const (
	EventGameStarted EventType = "game:started"
	EventSlotFilled  EventType = "slot:filled"
	EventTurnChanged EventType = "turn:changed"
	EventGameOver    EventType = "game:over"
)

// Outcome is the result of a game. Winner is set only when Status is StatusWon.
type Outcome struct {
	Status Status   `json:"status"`
	Winner PlayerID `json:"winner,omitempty"`
}

func Ongoing() Outcome {
	return Outcome{Status: StatusOngoing}
}

func Won(player PlayerID) Outcome {
	return Outcome{Status: StatusWon, Winner: player}
}

func Tied() Outcome {
	return Outcome{Status: StatusTied}
}

func (that Outcome) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that Outcome) IsWon() bool {
	return that.Status == StatusWon
}

func (that Outcome) IsTied() bool {
	return that.Status == StatusTied
}

// IsTerminal - true once the game is won or tied.
func (that Outcome) IsTerminal() bool {
	return that.IsWon() || that.IsTied()
}

// Event is what the engine reports to its collaborators after a state change.
type Event struct {
	Type     EventType `json:"type"`
	GameID   string    `json:"game_id"`
	Position *Position `json:"position,omitempty"`
	Player   PlayerID  `json:"player,omitempty"`
	Outcome  *Outcome  `json:"outcome,omitempty"`
}

func SlotFilledEvent(gameID string, position Position, player PlayerID) Event {
	return Event{
		Type:     EventSlotFilled,
		GameID:   gameID,
		Position: &position,
		Player:   player,
	}
}

func TurnChangedEvent(gameID string, player PlayerID) Event {
	return Event{
		Type:   EventTurnChanged,
		GameID: gameID,
		Player: player,
	}
}

func GameStartedEvent(gameID string, player PlayerID) Event {
	return Event{
		Type:   EventGameStarted,
		GameID: gameID,
		Player: player,
	}
}

func GameOverEvent(gameID string, outcome Outcome) Event {
	return Event{
		Type:    EventGameOver,
		GameID:  gameID,
		Player:  outcome.Winner,
		Outcome: &outcome,
	}
}

// GameState is a read-only snapshot of a game.
type GameState struct {
	ID            string       `json:"id"`
	Size          int          `json:"size"`
	RunLength     int          `json:"run_length"`
	Cells         [][]PlayerID `json:"cells"`
	Players       []Player     `json:"players"`
	CurrentPlayer PlayerID     `json:"current_player"`
	Outcome       Outcome      `json:"outcome"`
}
