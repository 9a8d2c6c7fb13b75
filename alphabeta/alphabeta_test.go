package alphabeta

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/ataxx-engine/ataxx/board"
)

// cornerPocket returns a position where the side on a1 has exactly one
// legal move, a1-a2. The opposing piece on g7 keeps the game alive.
func cornerPocket(t *testing.T, whose board.PieceColor) *board.Board {
	t.Helper()
	rows := [board.Side]string{
		"------b",
		"-------",
		"-------",
		"-------",
		"XXX----",
		"-XX----",
		"rXX----",
	}
	if whose == board.Blue {
		rows[0] = "------r"
		rows[6] = "bXX----"
	}
	b, err := board.FromRows(whose, rows[:]...)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestSolveSingleMove(t *testing.T) {
	is := is.New(t)
	b := cornerPocket(t, board.Red)

	var s Solver
	s.Init(2)
	m, _, err := s.BestMove(b)
	is.NoErr(err)
	is.Equal(m.String(), "a1-a2")
}

func TestSolveSingleMoveAsBlue(t *testing.T) {
	is := is.New(t)
	b := cornerPocket(t, board.Blue)

	var s Solver
	s.Init(2)
	m, score, err := s.BestMove(b)
	is.NoErr(err)
	is.Equal(m.String(), "a1-a2")
	// Scores stay red-relative regardless of who is searching; blue
	// growing a piece makes the score more negative, not positive.
	is.True(score <= 0)
}

func TestSolvePrefersImmediateWin(t *testing.T) {
	is := is.New(t)
	b, err := board.FromRows(board.Red,
		"-------",
		"-------",
		"----b--",
		"---r---",
		"-------",
		"-------",
		"-------")
	is.NoErr(err)

	var s Solver
	s.Init(2)
	m, score, err := s.BestMove(b)
	is.NoErr(err)
	is.True(score >= winValue) // capturing blue's last piece ends the game

	is.NoErr(b.MakeMove(m))
	w, over := b.Winner()
	is.True(over)
	is.Equal(w, board.Red)
}

func TestPruningDoesNotChangeResult(t *testing.T) {
	is := is.New(t)
	positions := []*board.Board{board.New()}

	mid, err := board.FromRows(board.Blue,
		"b----r-",
		"-bb----",
		"--br---",
		"--rrr--",
		"----b--",
		"-------",
		"r------")
	is.NoErr(err)
	positions = append(positions, mid)

	for _, b := range positions {
		var pruned, full Solver
		pruned.Init(3)
		full.Init(3)
		full.SetPruningDisabled(true)

		pm, pscore, err := pruned.BestMove(b)
		is.NoErr(err)
		fm, fscore, err := full.BestMove(b)
		is.NoErr(err)

		is.Equal(pscore, fscore)
		is.Equal(pm, fm)
		is.True(pruned.Nodes() <= full.Nodes())
	}
}

func TestBestMoveLeavesBoardUntouched(t *testing.T) {
	is := is.New(t)
	b := board.New()
	fp := b.Fingerprint()

	var s Solver
	s.Init(3)
	_, _, err := s.BestMove(b)
	is.NoErr(err)
	is.Equal(b.Fingerprint(), fp)
	is.Equal(len(b.AllMoves()), 0)
	is.Equal(b.WhoseMove(), board.Red)
}

func TestBestMoveRefusesSealedSide(t *testing.T) {
	is := is.New(t)
	b, err := board.FromRows(board.Red,
		"------b",
		"-------",
		"-------",
		"-------",
		"XXX----",
		"XXX----",
		"rXX----")
	is.NoErr(err)
	is.True(!b.CanMove(board.Red))

	var s Solver
	s.Init(2)
	_, _, err = s.BestMove(b)
	is.True(errors.Is(err, ErrNoLegalMoves))
}

func TestSearchHandlesForcedPassInTree(t *testing.T) {
	is := is.New(t)
	// Red is sealed in but the game is live because blue can move. With
	// blue searching, every interior node with red to move has no legal
	// moves and must expand the forced pass rather than fall off the move
	// list and report an infinite score.
	b, err := board.FromRows(board.Blue,
		"----b-b",
		"-------",
		"-------",
		"-------",
		"XXX----",
		"XXX----",
		"rXX----")
	is.NoErr(err)

	var s Solver
	s.Init(4)
	_, score, err := s.BestMove(b)
	is.NoErr(err)
	is.True(score > -Infinity)
	is.True(score < Infinity)
}
