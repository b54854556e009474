package redis

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const receiveTimeout = 5 * time.Second

func receive(t *testing.T, events <-chan entity.Event) entity.Event {
	t.Helper()

	select {
	case event, ok := <-events:
		require.True(t, ok, "event channel closed")
		return event
	case <-time.After(receiveTimeout):
		t.Fatal("timed out waiting for event")
		return entity.Event{}
	}
}

func TestClient_Notify(t *testing.T) {
	t.Run("Event reaches the game channel and the all-games channel", func(t *testing.T) {
		ctx, st := suite.New(t)

		client := New(st.Logger, st.Storage, "connectfour")

		// Given: subscribers on both channels
		gameEvents, closeGame, err := client.Subscribe(ctx, client.GameChannel("g1"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = closeGame() })

		allEvents, closeAll, err := client.Subscribe(ctx, client.AllGamesChannel())
		require.NoError(t, err)
		t.Cleanup(func() { _ = closeAll() })

		// When: a slot filled event is published
		event := entity.SlotFilledEvent("g1", entity.Position{Row: 7, Col: 3}, 2)
		err = client.Notify(ctx, event)

		// Then: both subscribers decode the same event
		require.NoError(t, err)
		assert.Equal(t, event, receive(t, gameEvents))
		assert.Equal(t, event, receive(t, allEvents))
	})

	t.Run("Other games stay on their own channel", func(t *testing.T) {
		ctx, st := suite.New(t)

		client := New(st.Logger, st.Storage, "connectfour")

		// Given: a subscriber on game g1
		events, closeSub, err := client.Subscribe(ctx, client.GameChannel("g1"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = closeSub() })

		// When: game g2 ends and then game g1 ends
		require.NoError(t, client.Notify(ctx, entity.GameOverEvent("g2", entity.Tied())))
		require.NoError(t, client.Notify(ctx, entity.GameOverEvent("g1", entity.Won(1))))

		// Then: only the g1 event is delivered
		got := receive(t, events)
		assert.Equal(t, "g1", got.GameID)
		require.NotNil(t, got.Outcome)
		assert.Equal(t, entity.Won(1), *got.Outcome)
	})

	t.Run("Closing the subscription closes the event channel", func(t *testing.T) {
		ctx, st := suite.New(t)

		client := New(st.Logger, st.Storage, "connectfour")

		events, closeSub, err := client.Subscribe(ctx, client.AllGamesChannel())
		require.NoError(t, err)

		require.NoError(t, closeSub())

		select {
		case _, ok := <-events:
			assert.False(t, ok)
		case <-time.After(receiveTimeout):
			t.Fatal("event channel was not closed")
		}
	})
}

func TestClient_Channels(t *testing.T) {
	client := &Client{prefix: "c4"}

	assert.Equal(t, "c4:abc", client.GameChannel("abc"))
	assert.Equal(t, "c4:all", client.AllGamesChannel())
}
