package models

import (
	"context"
	"errors"
	"sync"

	"connect_four/internal/connect_four/protocol"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "connect_four/models"

var (
	ErrNotYourTurn     = errors.New("not your turn")
	ErrGameAlreadyOver = errors.New("game already over")
)

// Outcome describes a move that was applied to the board.
type Outcome struct {
	Column int
	Row    int
	Mover  int
	Result protocol.Result
}

// Game is the authoritative state of one match. All mutation goes through
// SubmitMove and Abandon, which hold the game lock for their whole duration.
type Game struct {
	ID string

	mu            sync.Mutex
	board         Board
	currentPlayer int
	gameOver      bool
	winner        int
	moves         int
}

func NewGame() *Game {
	return &Game{
		ID:            uuid.New().String(),
		currentPlayer: 1,
	}
}

// SubmitMove validates and applies a move for player. When publish is not
// nil it is called with the outcome before the lock is released, so outcomes
// are published in the order they were applied.
func (g *Game) SubmitMove(ctx context.Context, player, column int, publish func(Outcome)) (Outcome, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "game.SubmitMove", trace.WithAttributes(
		attribute.String("game.id", g.ID),
		attribute.Int("game.player", player),
		attribute.Int("game.column", column),
	))
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	outcome, err := g.apply(player, column)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Outcome{}, err
	}
	span.SetAttributes(
		attribute.Int("game.row", outcome.Row),
		attribute.String("game.result", outcome.Result.String()),
	)
	if publish != nil {
		publish(outcome)
	}
	return outcome, nil
}

func (g *Game) apply(player, column int) (Outcome, error) {
	if g.gameOver {
		return Outcome{}, ErrGameAlreadyOver
	}
	if player != g.currentPlayer {
		return Outcome{}, ErrNotYourTurn
	}

	cell := PlayerCell(player)
	row, err := g.board.DropDisc(column, cell)
	if err != nil {
		return Outcome{}, err
	}
	g.moves++

	outcome := Outcome{Column: column, Row: row, Mover: player, Result: protocol.Continue}
	switch {
	case g.board.CheckWin(column, row, cell):
		g.gameOver = true
		g.winner = player
		outcome.Result = protocol.Win
	case g.board.Full():
		g.gameOver = true
		outcome.Result = protocol.Draw
	default:
		g.currentPlayer = otherPlayer(player)
	}
	return outcome, nil
}

// Abandon ends the game without a winner. It reports whether the game was
// still running.
func (g *Game) Abandon() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gameOver {
		return false
	}
	g.gameOver = true
	return true
}

func (g *Game) CurrentPlayer() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentPlayer
}

func (g *Game) Over() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gameOver
}

// Winner returns 0 while the game runs, after a draw and after an abandon.
func (g *Game) Winner() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner
}

func (g *Game) Moves() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moves
}

// Snapshot returns a copy of the board.
func (g *Game) Snapshot() Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board
}

func otherPlayer(player int) int {
	if player == 1 {
		return 2
	}
	return 1
}
