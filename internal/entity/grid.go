package entity

import (
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

// NoPlayer marks an empty slot.
const NoPlayer PlayerID = 0

type PlayerID int

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Slot is a single grid cell. Row 0 is the top of the grid.
type Slot struct {
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Occupant PlayerID `json:"occupant"`
}

func (that *Slot) IsEmpty() bool {
	return that.Occupant == NoPlayer
}

// Grid is a square matrix of slots. DropIn is its only mutator.
type Grid struct {
	size  int
	slots [][]Slot
}

func NewGrid(size int) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidGridSize, size)
	}

	slots := make([][]Slot, size)
	for row := range slots {
		slots[row] = make([]Slot, size)
		for col := range slots[row] {
			slots[row][col] = Slot{Row: row, Col: col}
		}
	}

	return &Grid{size: size, slots: slots}, nil
}

// NewGridFromCells - builds a grid from a square matrix of owners. Gravity is not enforced.
func NewGridFromCells(cells [][]PlayerID) (*Grid, error) {
	grid, err := NewGrid(len(cells))
	if err != nil {
		return nil, err
	}

	for row, line := range cells {
		if len(line) != grid.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidGridSize, row, len(line), grid.size)
		}

		for col, owner := range line {
			grid.slots[row][col].Occupant = owner
		}
	}

	return grid, nil
}

func (that *Grid) Size() int {
	return that.size
}

func (that *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

// LandingRow - returns the row a disc dropped into column would settle in.
func (that *Grid) LandingRow(column int) (int, bool) {
	if column < 0 || column >= that.size {
		return 0, false
	}

	landing := -1
	for row := 0; row < that.size; row++ {
		if that.slots[row][column].IsEmpty() {
			landing = row
		}
	}

	if landing < 0 {
		return 0, false
	}

	return landing, true
}

// DropIn - occupies the lowest empty slot of column on behalf of player.
func (that *Grid) DropIn(column int, player PlayerID) (Position, error) {
	if column < 0 || column >= that.size {
		return Position{}, fmt.Errorf("%w: column %d", apperror.ErrInvalidColumn, column)
	}

	if player == NoPlayer {
		return Position{}, apperror.ErrInvalidPlayer
	}

	row, ok := that.LandingRow(column)
	if !ok {
		return Position{}, fmt.Errorf("%w: column %d", apperror.ErrColumnFull, column)
	}

	that.slots[row][column].Occupant = player

	return Position{Row: row, Col: column}, nil
}

func (that *Grid) IsFull() bool {
	for _, line := range that.slots {
		for _, slot := range line {
			if slot.IsEmpty() {
				return false
			}
		}
	}

	return true
}

// OccupantAt reports the owner of a slot; false for empty or out of bounds slots.
func (that *Grid) OccupantAt(row, col int) (PlayerID, bool) {
	if !that.InBounds(row, col) {
		return NoPlayer, false
	}

	occupant := that.slots[row][col].Occupant

	return occupant, occupant != NoPlayer
}

func (that *Grid) SlotAt(row, col int) (Slot, bool) {
	if !that.InBounds(row, col) {
		return Slot{}, false
	}

	return that.slots[row][col], true
}

// Cells - returns a copy of the owner matrix.
func (that *Grid) Cells() [][]PlayerID {
	cells := make([][]PlayerID, that.size)
	for row, line := range that.slots {
		cells[row] = make([]PlayerID, that.size)
		for col, slot := range line {
			cells[row][col] = slot.Occupant
		}
	}

	return cells
}
