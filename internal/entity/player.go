package entity

import "strconv"

type Player struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Color string   `json:"color,omitempty"`
	Wins  int      `json:"wins"`
}

func NewPlayer(id PlayerID, name, color string) *Player {
	if name == "" {
		name = "Player-" + strconv.Itoa(int(id))
	}

	return &Player{
		ID:    id,
		Name:  name,
		Color: color,
	}
}
