package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeStatusMethods(t *testing.T) {
	t.Run("Ongoing is not terminal", func(t *testing.T) {
		// Given: an ongoing outcome
		outcome := Ongoing()

		// Then: it is ongoing and not terminal
		assert.True(t, outcome.IsOngoing())
		assert.False(t, outcome.IsTerminal())
	})

	t.Run("Won is terminal and carries the winner", func(t *testing.T) {
		// Given: a won outcome for player 2
		outcome := Won(2)

		// Then: it is terminal, won, and not tied
		assert.True(t, outcome.IsTerminal())
		assert.True(t, outcome.IsWon())
		assert.False(t, outcome.IsTied())
		assert.Equal(t, PlayerID(2), outcome.Winner)
	})

	t.Run("Tied is terminal without a winner", func(t *testing.T) {
		// Given: a tied outcome
		outcome := Tied()

		// Then: it is terminal, tied, and has no winner
		assert.True(t, outcome.IsTerminal())
		assert.True(t, outcome.IsTied())
		assert.False(t, outcome.IsWon())
		assert.Equal(t, NoPlayer, outcome.Winner)
	})
}

func TestEvent_JSON(t *testing.T) {
	t.Run("Slot filled carries the position", func(t *testing.T) {
		// Given: a slot filled event
		event := SlotFilledEvent("g1", Position{Row: 7, Col: 2}, 1)

		// When: encoding it
		data, err := json.Marshal(event)
		require.NoError(t, err)

		// Then: the wire form has the documented keys
		assert.JSONEq(t, `{"type":"slot:filled","game_id":"g1","position":{"row":7,"col":2},"player":1}`, string(data))
	})

	t.Run("Game over carries the outcome", func(t *testing.T) {
		// Given: a tie
		event := GameOverEvent("g1", Tied())

		// When: encoding it
		data, err := json.Marshal(event)
		require.NoError(t, err)

		// Then: the outcome is present and no player is set
		assert.JSONEq(t, `{"type":"game:over","game_id":"g1","outcome":{"status":"tied"}}`, string(data))
	})
}

func TestNewPlayer(t *testing.T) {
	t.Run("Default name", func(t *testing.T) {
		player := NewPlayer(2, "", "blue")

		assert.Equal(t, "Player-2", player.Name)
		assert.Equal(t, "blue", player.Color)
		assert.Zero(t, player.Wins)
	})

	t.Run("Explicit name", func(t *testing.T) {
		player := NewPlayer(1, "Ada", "")

		assert.Equal(t, "Ada", player.Name)
	})
}
