package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
)

var errQuit = errors.New("quit requested")

const helpText = `commands:
  <column>  drop a disc into column (1-based)
  new       start a new game
  score     show the scoreboard
  reset     reset the scoreboard
  help      show this help
  quit      leave
`

type uSession interface {
	Subscribe(subscriber usecase.Subscriber)
	NewGame(ctx context.Context) (*connectfour.Engine, error)
	Drop(ctx context.Context, column int) (connectfour.MoveResult, error)
	Game() *connectfour.Engine
	Scoreboard() []entity.Player
	ResetScores()
}

// Server drives a session from line based text input.
type Server struct {
	logger  *slog.Logger
	session uSession
	render  *RenderState
	out     io.Writer

	handlers map[string]func(ctx context.Context) error
}

func New(logger *slog.Logger, session uSession, out io.Writer) *Server {
	server := &Server{
		logger:  logger.With("component", "console"),
		session: session,
		render:  NewRenderState(),
		out:     out,

		handlers: make(map[string]func(context.Context) error),
	}

	session.Subscribe(server.render)

	server.handlers["new"] = server.handleNewGame
	server.handlers["score"] = server.handleScore
	server.handlers["reset"] = server.handleReset
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit
	server.handlers["exit"] = server.handleQuit

	return server
}

// Start - reads commands from in until EOF, quit, or ctx is done.
func (that *Server) Start(ctx context.Context, in io.Reader) error {
	log := that.logger.With("method", "Start")

	if game := that.session.Game(); game == nil {
		if err := that.handleNewGame(ctx); err != nil {
			return err
		}
	} else {
		// the game started before this console subscribed
		that.render.Load(game.State())
		if err := that.printBoard(); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}

		err := that.handleLine(ctx, line)
		if errors.Is(err, errQuit) {
			log.Info("console closed by user")
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *Server) handleLine(ctx context.Context, line string) error {
	if handler, ok := that.handlers[line]; ok {
		return handler(ctx)
	}

	column, err := strconv.Atoi(line)
	if err != nil {
		return that.println("unknown command, type help")
	}

	return that.handleDrop(ctx, column-1)
}

func (that *Server) handleDrop(ctx context.Context, column int) error {
	log := that.logger.With("method", "handleDrop")

	_, err := that.session.Drop(ctx, column)
	switch {
	case err == nil:
		return that.printBoard()
	case errors.Is(err, apperror.ErrColumnFull):
		return that.println(fmt.Sprintf("column %d is full, choose another", column+1))
	case errors.Is(err, apperror.ErrInvalidColumn):
		return that.println(fmt.Sprintf("no such column %d", column+1))
	case errors.Is(err, apperror.ErrGameOver):
		return that.println("game is over, type new to play again")
	default:
		log.Error("failed to drop disc", "error", err)
		return fmt.Errorf("failed to drop disc: %w", err)
	}
}

func (that *Server) handleNewGame(ctx context.Context) error {
	if _, err := that.session.NewGame(ctx); err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	return that.printBoard()
}

func (that *Server) handleScore(_ context.Context) error {
	var b strings.Builder
	for _, player := range that.session.Scoreboard() {
		fmt.Fprintf(&b, "%s: %d\n", player.Name, player.Wins)
	}

	return that.println(strings.TrimSuffix(b.String(), "\n"))
}

func (that *Server) handleReset(ctx context.Context) error {
	that.session.ResetScores()

	return that.handleScore(ctx)
}

func (that *Server) handleHelp(_ context.Context) error {
	return that.println(strings.TrimSuffix(helpText, "\n"))
}

func (that *Server) handleQuit(_ context.Context) error {
	return errQuit
}

func (that *Server) printBoard() error {
	game := that.session.Game()
	if game == nil {
		return nil
	}

	var winning []entity.Position
	if last, ok := that.render.Last(); ok {
		winning = game.WinningLine(last)
	}

	return that.render.Render(that.out, game.Size(), that.session.Scoreboard(), winning)
}

func (that *Server) println(text string) error {
	if _, err := fmt.Fprintln(that.out, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
