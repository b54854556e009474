package apperror

import "errors"

var (
	ErrInvalidColumn = errors.New("column is out of range")
	ErrColumnFull    = errors.New("column is full")
	ErrGameOver      = errors.New("game is already over")

	ErrInvalidGridSize  = errors.New("invalid grid size")
	ErrInvalidRunLength = errors.New("invalid run length")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrInvalidPlayer    = errors.New("invalid player")
	ErrDuplicatePlayer  = errors.New("duplicate player id")

	ErrNoActiveGame = errors.New("no active game")
)
