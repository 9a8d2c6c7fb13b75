package game

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/ataxx-engine/ataxx/alphabeta"
	"github.com/ataxx-engine/ataxx/board"
	"github.com/ataxx-engine/ataxx/move"
)

// A Player produces moves for one color. FindMove returns the move in its
// text encoding; it may read the board but never mutates it.
type Player interface {
	Color() board.PieceColor
	Name() string
	IsAuto() bool
	FindMove(b *board.Board) (string, error)
}

// AIPlayer computes its own moves with the alpha-beta solver. Identical
// seeds produce identical games: the solver is deterministic, and the only
// randomness is the opening-move choice drawn from the seeded generator.
type AIPlayer struct {
	color  board.PieceColor
	solver alphabeta.Solver
	rng    *frand.RNG
}

// NewAIPlayer returns an automated player for color searching to the
// given depth.
func NewAIPlayer(color board.PieceColor, depth int, seed uint64) *AIPlayer {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	p := &AIPlayer{
		color: color,
		rng:   frand.NewCustom(key[:], 1024, 12),
	}
	p.solver.Init(depth)
	return p
}

func (p *AIPlayer) Color() board.PieceColor { return p.color }
func (p *AIPlayer) Name() string            { return "AI-" + p.color.String() }
func (p *AIPlayer) IsAuto() bool            { return true }

// FindMove returns a pass without searching when the player cannot move;
// the value of such a position does not depend on whose turn it nominally
// is, so searching it is wasted work. The very first move of a game is
// chosen at random from the legal moves (an opening policy layered on top
// of the search, not part of it).
func (p *AIPlayer) FindMove(b *board.Board) (string, error) {
	if !b.CanMove(p.color) {
		return move.PassMove().String(), nil
	}
	if b.NumMoves() == 0 {
		if m, ok := p.randomOpening(b); ok {
			return m.String(), nil
		}
	}
	m, _, err := p.solver.BestMove(b)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// randomOpening picks a uniformly random legal move. The enumeration
// order is fixed, so a fixed seed yields a fixed opening.
func (p *AIPlayer) randomOpening(b *board.Board) (move.Move, bool) {
	var moves []move.Move
	for col := byte('a'); col <= 'g'; col++ {
		for row := byte('1'); row <= '7'; row++ {
			if b.Get(col, row) != p.color {
				continue
			}
			for dc := -2; dc <= 2; dc++ {
				for dr := -2; dr <= 2; dr++ {
					m := move.New(col, row, byte(int(col)+dc), byte(int(row)+dr))
					if b.LegalMove(m) {
						moves = append(moves, m)
					}
				}
			}
		}
	}
	if len(moves) == 0 {
		return move.Move{}, false
	}
	return moves[p.rng.Intn(len(moves))], true
}

// HumanPlayer forwards move production to an external source, typically a
// REPL prompt. The source returns moves in text form.
type HumanPlayer struct {
	color  board.PieceColor
	source func() (string, error)
}

// NewHumanPlayer returns a manual player whose moves come from source.
func NewHumanPlayer(color board.PieceColor, source func() (string, error)) *HumanPlayer {
	return &HumanPlayer{color: color, source: source}
}

func (p *HumanPlayer) Color() board.PieceColor { return p.color }
func (p *HumanPlayer) Name() string            { return "human-" + p.color.String() }
func (p *HumanPlayer) IsAuto() bool            { return false }

func (p *HumanPlayer) FindMove(b *board.Board) (string, error) {
	return p.source()
}
