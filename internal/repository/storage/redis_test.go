package storage

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/connectfour-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisStorage(t *testing.T) {
	t.Run("Connects to a running server", func(t *testing.T) {
		ctx, st := suite.New(t)

		// When: connecting to the container
		client, err := NewRedisStorage(ctx, RedisOptions{Addr: st.Addr})

		// Then: the connection is usable
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })
		assert.NoError(t, client.Ping(ctx).Err())
	})

	t.Run("Fails when nothing listens", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// When: connecting to a closed port
		client, err := NewRedisStorage(ctx, RedisOptions{Addr: "127.0.0.1:1"})

		// Then: an error is returned
		require.Error(t, err)
		assert.Nil(t, client)
	})
}
