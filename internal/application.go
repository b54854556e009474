package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/connectfour-backend/internal/config"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository/storage"
	"github.com/rocketscienceinc/connectfour-backend/internal/transport/redis"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
	"github.com/rocketscienceinc/connectfour-backend/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	session := usecase.NewSession(logger, NewPlayers(conf.Players),
		connectfour.WithSize(conf.Board.Size),
		connectfour.WithRunLength(conf.Board.RunLength),
	)

	if conf.Redis.Enabled {
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, storage.RedisOptions{
			Addr:     redisAddrString,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		session.Subscribe(redis.New(logger, redisStorage, conf.Redis.ChannelPrefix))
		log.Info("Publishing game events to redis", "addr", redisAddrString, "prefix", conf.Redis.ChannelPrefix)
	}

	log.Info("Starting console", "size", conf.Board.Size, "run_length", conf.Board.RunLength, "players", len(conf.Players))

	consoleServer := console.New(logger, session, out)

	// stdin reads cannot be interrupted, so the console runs aside and a signal wins the race
	consoleErrCh := make(chan error, 1)
	go func() {
		consoleErrCh <- consoleServer.Start(ctx, in)
	}()

	select {
	case err := <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// NewPlayers - builds the session players from configuration, in configured turn order.
func NewPlayers(players []config.Player) []*entity.Player {
	result := make([]*entity.Player, 0, len(players))
	for _, player := range players {
		result = append(result, entity.NewPlayer(entity.PlayerID(player.ID), player.Name, player.Color))
	}

	return result
}
