// Package alphabeta implements the move-search engine: a depth-limited
// minimax with alpha-beta pruning over the board's make/undo operations.
// Scores are from red's point of view; positive favors red.
package alphabeta

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ataxx-engine/ataxx/board"
	"github.com/ataxx-engine/ataxx/move"
)

const (
	// Infinity is a magnitude greater than any reachable score.
	Infinity = 10000000
	// winValue is the base magnitude of a decided position. The
	// remaining search depth is added so the engine prefers faster wins
	// and slower losses.
	winValue = 1000000
)

// ErrNoLegalMoves is returned when the side to move cannot move. Callers
// should issue a pass themselves instead of searching such positions.
var ErrNoLegalMoves = errors.New("side to move has no legal moves")

// Solver finds the best move for the side to move by minimax search. It
// operates on a private copy of the caller's board, so an in-progress
// search can never alias the live game state.
type Solver struct {
	board          *board.Board
	depth          int
	disablePruning bool

	bestMove move.Move
	nodes    int
}

// Init sets the fixed search depth in plies.
func (s *Solver) Init(depth int) {
	s.depth = depth
}

// SetPruningDisabled turns alpha-beta pruning off. Pruning is purely a
// performance optimization; with it disabled the chosen move's score must
// be identical.
func (s *Solver) SetPruningDisabled(d bool) {
	s.disablePruning = d
}

// Nodes returns the number of positions visited by the last search.
func (s *Solver) Nodes() int { return s.nodes }

// BestMove searches from b and returns the best move for the side to move
// along with its score. b itself is never touched; the search applies and
// undoes moves on a private copy.
func (s *Solver) BestMove(b *board.Board) (move.Move, int, error) {
	if !b.CanMove(b.WhoseMove()) {
		return move.Move{}, 0, ErrNoLegalMoves
	}
	tstart := time.Now()
	s.board = b.Copy()
	s.bestMove = move.Move{}
	s.nodes = 0

	sense := 1
	if s.board.WhoseMove() == board.Blue {
		sense = -1
	}
	score := s.minimax(s.depth, true, sense, -Infinity, Infinity)

	log.Debug().
		Int("depth", s.depth).
		Int("nodes", s.nodes).
		Int("score", score).
		Str("move", s.bestMove.String()).
		Float64("elapsed-sec", time.Since(tstart).Seconds()).
		Msg("search-done")
	return s.bestMove, score, nil
}

// legalMoves enumerates every legal move for the side to move, scanning
// columns a..g, rows 1..7 and the 5x5 window around each owned square in
// a fixed order so that search results are reproducible.
func (s *Solver) legalMoves() []move.Move {
	var moves []move.Move
	who := s.board.WhoseMove()
	for col := byte('a'); col <= 'g'; col++ {
		for row := byte('1'); row <= '7'; row++ {
			if s.board.Get(col, row) != who {
				continue
			}
			for dc := -2; dc <= 2; dc++ {
				for dr := -2; dr <= 2; dr++ {
					m := move.New(col, row, byte(int(col)+dc), byte(int(row)+dr))
					if s.board.LegalMove(m) {
						moves = append(moves, m)
					}
				}
			}
		}
	}
	return moves
}

// minimax searches s.board to the given remaining depth and returns the
// position's value. sense is +1 when maximizing (red to move) and -1 when
// minimizing. Every applied move is undone before control returns or
// moves on to a sibling, including on the pruning branch, so the board is
// always restored to its pre-call state. Only the root call (saveMove)
// records the chosen move.
func (s *Solver) minimax(depth int, saveMove bool, sense, alpha, beta int) int {
	s.nodes++
	if depth == 0 || s.board.GameOver() {
		return s.staticScore(depth)
	}

	moves := s.legalMoves()
	if len(moves) == 0 {
		// The side to move is sealed in but the game is not over, so
		// the forced pass is the only child position.
		moves = append(moves, move.PassMove())
	}

	var best move.Move
	bestScore := -Infinity * sense
	for _, m := range moves {
		// MakeMove cannot fail here: m came from the legality predicate.
		if err := s.board.MakeMove(m); err != nil {
			panic(err)
		}
		response := s.minimax(depth-1, false, -sense, alpha, beta)
		s.board.Undo()

		if sense == 1 {
			if response > bestScore {
				bestScore = response
				best = m
			}
			if !s.disablePruning {
				if bestScore > alpha {
					alpha = bestScore
				}
				if alpha >= beta {
					break
				}
			}
		} else {
			if response < bestScore {
				bestScore = response
				best = m
			}
			if !s.disablePruning {
				if bestScore < beta {
					beta = bestScore
				}
				if alpha >= beta {
					break
				}
			}
		}
	}
	if saveMove {
		s.bestMove = best
	}
	return bestScore
}

// staticScore evaluates the current position: +-(winValue + remaining
// depth) for decided positions, 0 for a draw, and the material difference
// otherwise.
func (s *Solver) staticScore(depth int) int {
	if winner, over := s.board.Winner(); over {
		switch winner {
		case board.Red:
			return winValue + depth
		case board.Blue:
			return -(winValue + depth)
		}
		return 0
	}
	return s.board.RedPieces() - s.board.BluePieces()
}
