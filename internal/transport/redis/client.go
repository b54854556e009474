package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const allGamesSuffix = "all"

// Client publishes game events to Redis channels so that a presentation layer running in
// another process can follow games.
type Client struct {
	logger *slog.Logger
	client *redis.Client
	prefix string
}

func New(logger *slog.Logger, client *redis.Client, prefix string) *Client {
	return &Client{
		logger: logger.With("component", "redis-events"),
		client: client,
		prefix: prefix,
	}
}

// GameChannel - channel carrying the events of a single game.
func (that *Client) GameChannel(gameID string) string {
	return that.prefix + ":" + gameID
}

// AllGamesChannel - channel carrying the events of every game.
func (that *Client) AllGamesChannel() string {
	return that.prefix + ":" + allGamesSuffix
}

// Notify - publishes event as JSON on its game channel and on the all-games channel.
func (that *Client) Notify(ctx context.Context, event entity.Event) error {
	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event: %w", err)
	}

	pipe := that.client.Pipeline()
	pipe.Publish(ctx, that.GameChannel(event.GameID), eventJSON)
	pipe.Publish(ctx, that.AllGamesChannel(), eventJSON)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe - streams decoded events from channel until ctx is done or the returned close func is called.
func (that *Client) Subscribe(ctx context.Context, channel string) (<-chan entity.Event, func() error, error) {
	log := that.logger.With("method", "Subscribe", "channel", channel)

	pubsub := that.client.Subscribe(ctx, channel)

	// wait for the subscription to be confirmed so no event published afterwards is lost
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	events := make(chan entity.Event)
	messages := pubsub.Channel()

	go func() {
		defer close(events)

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				var event entity.Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Error("failed to unmarshal event", "error", err)
					continue
				}

				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, pubsub.Close, nil
}
