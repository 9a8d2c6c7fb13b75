// Package game wires a board together with two players (automated or
// manual) and runs the turn loop. A Game owns the authoritative board;
// automated players search private copies of it.
package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ataxx-engine/ataxx/board"
	"github.com/ataxx-engine/ataxx/config"
)

// Game holds the live board and the player for each color.
type Game struct {
	board   *board.Board
	players map[board.PieceColor]Player
	cfg     *config.Config
	seed    uint64
}

// New creates a game from the starting position with both colors played
// by the engine at the configured depth. seed fixes all engine
// randomness; players derive per-color seeds from it.
func New(cfg *config.Config, seed uint64) *Game {
	g := &Game{
		board:   board.New(),
		players: make(map[board.PieceColor]Player),
		cfg:     cfg,
		seed:    seed,
	}
	g.SetAuto(board.Red)
	g.SetAuto(board.Blue)
	return g
}

// Board returns the authoritative game board.
func (g *Game) Board() *board.Board { return g.board }

// Seed returns the seed the game was created with.
func (g *Game) Seed() uint64 { return g.seed }

// SetAuto puts color under engine control.
func (g *Game) SetAuto(color board.PieceColor) {
	g.players[color] = NewAIPlayer(color, g.cfg.SearchDepth, g.seed+uint64(color))
}

// SetManual puts color under control of source (e.g. a REPL prompt).
func (g *Game) SetManual(color board.PieceColor, source func() (string, error)) {
	g.players[color] = NewHumanPlayer(color, source)
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() Player {
	return g.players[g.board.WhoseMove()]
}

// Player returns the player controlling color.
func (g *Game) Player(color board.PieceColor) Player {
	return g.players[color]
}

// Playing reports whether the game is still in progress.
func (g *Game) Playing() bool {
	return !g.board.GameOver()
}

// PlayTurn asks the current player for a move and applies it, returning
// the move's text form.
func (g *Game) PlayTurn() (string, error) {
	p := g.CurrentPlayer()
	mv, err := p.FindMove(g.board)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.Name(), err)
	}
	if err := g.board.MakeMoveString(mv); err != nil {
		return "", fmt.Errorf("%s played %s: %w", p.Name(), mv, err)
	}
	log.Debug().Str("player", p.Name()).Str("move", mv).
		Int("red", g.board.RedPieces()).Int("blue", g.board.BluePieces()).
		Msg("turn-played")
	return mv, nil
}

// Run plays the game to completion and returns the winner (board.Empty
// for a draw). Useful for comp-vs-comp games; interactive drivers call
// PlayTurn themselves.
func (g *Game) Run() (board.PieceColor, error) {
	for g.Playing() {
		if _, err := g.PlayTurn(); err != nil {
			return board.Empty, err
		}
	}
	winner, _ := g.board.Winner()
	return winner, nil
}

// Result renders the finished game's outcome for display.
func (g *Game) Result() string {
	winner, over := g.board.Winner()
	if !over {
		return "game in progress"
	}
	if winner == board.Empty {
		return "Draw."
	}
	return fmt.Sprintf("%s wins.", winner)
}
