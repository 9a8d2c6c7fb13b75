// Package board implements the Ataxx board state machine: legality
// checking, move application with capture propagation, undo, block
// placement, and terminal-condition detection.
//
// Squares are addressed by a column 'a'..'g' and a row '1'..'7', or by a
// linearized index into an oversized backing array. The backing array is
// 11x11: the playable 7x7 region surrounded by a two-deep border that is
// permanently Blocked. Because every neighbor lookup within two columns
// and rows of a playable square lands inside the array, and border squares
// never read as empty or as a piece, neighbor scans need no bounds checks.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cespare/xxhash"

	"github.com/ataxx-engine/ataxx/move"
)

const (
	// Side is the number of squares on a side of the playable board.
	Side = 7
	// extendedSide includes the two-deep blocked border on each side.
	extendedSide = Side + 4
	boardSize    = extendedSide * extendedSide

	// JumpLimit is the number of consecutive jumps (with no intervening
	// extend) after which the game is decided by piece count.
	JumpLimit = 25
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrIllegalBlock = errors.New("illegal block placement")
)

// index returns the linearized index of square (col, row).
func index(col, row byte) int {
	return (int(row-'1')+2)*extendedSide + int(col-'a') + 2
}

// neighbor returns the index of the square dc columns and dr rows away
// from sq. Thanks to the border, the result is always a valid index for
// any playable sq and |dc|,|dr| <= 2.
func neighbor(sq, dc, dr int) int {
	return sq + dc + dr*extendedSide
}

type undoEntry struct {
	sq   int
	prev PieceColor
}

// undoGroup marks one move's worth of undo entries. Recording the jump
// counter here lets Undo restore it exactly even when the undone move was
// an extend that had reset it.
type undoGroup struct {
	start     int
	prevJumps int
}

// Board is an Ataxx board. It is mutated only through its own MakeMove,
// Undo, SetBlock and Clear operations; the search engine relies on that to
// pair every apply with an undo.
type Board struct {
	cells     [boardSize]PieceColor
	whoseMove PieceColor
	// numJumps counts consecutive jump moves since the last extend.
	numJumps int
	// numPieces is a histogram of the playable squares, indexed by
	// PieceColor. Blocked counts player-placed blocks only, never the
	// border.
	numPieces [4]int
	// movesMade counts moves (including passes) since the last clear.
	// Unlike the moves list it survives Copy, so a forked board still
	// refuses block placement mid-game.
	movesMade int

	winner   PieceColor // Empty means a draw when gameOver is set
	gameOver bool

	moves      []move.Move
	undoLog    []undoEntry
	undoGroups []undoGroup

	notifier func(*Board)
}

func nopNotifier(*Board) {}

// New returns a board in the starting configuration: red on a1 and g7,
// blue on a7 and g1, red to move.
func New() *Board {
	b := &Board{notifier: nopNotifier}
	b.Clear()
	return b
}

// Copy returns a forked game state: grid, counts, side to move and jump
// counter are copied; move history, undo log and notifier are reset. The
// copy shares nothing with the original.
func (b *Board) Copy() *Board {
	return &Board{
		cells:     b.cells,
		whoseMove: b.whoseMove,
		numJumps:  b.numJumps,
		numPieces: b.numPieces,
		movesMade: b.movesMade,
		winner:    b.winner,
		gameOver:  b.gameOver,
		notifier:  nopNotifier,
	}
}

// Clear resets the board to the starting configuration with no blocks.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Blocked
	}
	for col := byte('a'); col <= 'g'; col++ {
		for row := byte('1'); row <= '7'; row++ {
			b.cells[index(col, row)] = Empty
		}
	}
	b.cells[index('a', '1')] = Red
	b.cells[index('g', '7')] = Red
	b.cells[index('a', '7')] = Blue
	b.cells[index('g', '1')] = Blue

	b.numPieces = [4]int{}
	b.numPieces[Empty] = Side*Side - 4
	b.numPieces[Red] = 2
	b.numPieces[Blue] = 2

	b.whoseMove = Red
	b.numJumps = 0
	b.movesMade = 0
	b.moves = b.moves[:0]
	b.undoLog = b.undoLog[:0]
	b.undoGroups = b.undoGroups[:0]
	b.winner = Empty
	b.gameOver = false
	b.announce()
}

// Get returns the contents of square (col, row). Squares outside a1-g7,
// up to two columns or rows out, read as Blocked.
func (b *Board) Get(col, row byte) PieceColor {
	return b.cells[index(col, row)]
}

// setCell writes v at sq, keeping the piece histogram current.
func (b *Board) setCell(sq int, v PieceColor) {
	b.numPieces[b.cells[sq]]--
	b.numPieces[v]++
	b.cells[sq] = v
}

// set is the undoable form of setCell.
func (b *Board) set(sq int, v PieceColor) {
	b.undoLog = append(b.undoLog, undoEntry{sq: sq, prev: b.cells[sq]})
	b.setCell(sq, v)
}

// LegalMove reports whether m is legal on the current board. A pass is
// legal only when the side to move has no other legal move; a non-pass
// move is legal iff the source holds the side to move's piece, the
// destination is empty, and both squares are on the playable board.
func (b *Board) LegalMove(m move.Move) bool {
	switch m.Kind() {
	case move.Pass:
		return !b.CanMove(b.whoseMove)
	case move.Extend, move.Jump:
	default:
		return false
	}
	if m.Col0() < 'a' || m.Col0() > 'g' || m.Col1() < 'a' || m.Col1() > 'g' ||
		m.Row0() < '1' || m.Row0() > '7' || m.Row1() < '1' || m.Row1() > '7' {
		return false
	}
	return b.Get(m.Col0(), m.Row0()) == b.whoseMove &&
		b.Get(m.Col1(), m.Row1()) == Empty
}

// CanMove reports whether who has any legal non-pass move, regardless of
// whose turn it is or whether the game is over.
func (b *Board) CanMove(who PieceColor) bool {
	if !who.IsPiece() {
		return false
	}
	for sq := range b.cells {
		if b.cells[sq] != who {
			continue
		}
		for dr := -2; dr <= 2; dr++ {
			for dc := -2; dc <= 2; dc++ {
				if b.cells[neighbor(sq, dc, dr)] == Empty {
					return true
				}
			}
		}
	}
	return false
}

// WhoseMove returns the color of the player who moves next. The value is
// arbitrary once the game is over.
func (b *Board) WhoseMove() PieceColor { return b.whoseMove }

// NumMoves returns the number of moves and passes since the last clear,
// including moves made before a Copy.
func (b *Board) NumMoves() int { return b.movesMade }

// NumJumps returns the number of consecutive jump moves since the last
// extend (or the start of the game).
func (b *Board) NumJumps() int { return b.numJumps }

// NumPieces returns the number of playable squares holding color.
func (b *Board) NumPieces(color PieceColor) int { return b.numPieces[color] }

func (b *Board) RedPieces() int  { return b.numPieces[Red] }
func (b *Board) BluePieces() int { return b.numPieces[Blue] }

// TotalOpen returns the number of playable squares that are not blocked.
func (b *Board) TotalOpen() int {
	return b.numPieces[Empty] + b.numPieces[Red] + b.numPieces[Blue]
}

// Winner returns the game's winner and true once the position is
// terminal. Empty stands for a draw. Before the game is decided it
// returns (Empty, false).
func (b *Board) Winner() (PieceColor, bool) {
	return b.winner, b.gameOver
}

// GameOver reports whether the position is terminal.
func (b *Board) GameOver() bool { return b.gameOver }

// AllMoves returns all moves made since the last clear or copy. The
// returned slice must not be modified.
func (b *Board) AllMoves() []move.Move { return b.moves }

// MakeMove applies m, or returns an error wrapping ErrIllegalMove and
// leaves the board unchanged. A pass just flips the side to move. Extends
// place a new piece on the destination; jumps also vacate the source.
// Both then flip every opponent piece adjacent to the destination. All
// cell writes are recorded so Undo can restore the position exactly.
func (b *Board) MakeMove(m move.Move) error {
	if !b.LegalMove(m) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	b.undoGroups = append(b.undoGroups, undoGroup{start: len(b.undoLog), prevJumps: b.numJumps})
	if m.IsPass() {
		b.moves = append(b.moves, m)
		b.movesMade++
		b.whoseMove = b.whoseMove.Opposite()
		b.announce()
		return nil
	}

	mover := b.whoseMove
	opponent := mover.Opposite()
	dest := index(m.Col1(), m.Row1())
	b.set(dest, mover)
	if m.IsJump() {
		b.set(index(m.Col0(), m.Row0()), Empty)
		b.numJumps++
	} else {
		b.numJumps = 0
	}
	// Capture: the destination itself holds the mover's piece and the
	// border reads as Blocked, so the full 3x3 scan is branch-free.
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if sq := neighbor(dest, dc, dr); b.cells[sq] == opponent {
				b.set(sq, mover)
			}
		}
	}
	b.moves = append(b.moves, m)
	b.movesMade++
	b.whoseMove = opponent
	b.updateWinner()
	b.announce()
	return nil
}

// MakeMoveString parses and applies a move in its text encoding ("-" or
// "c0r0-c1r1").
func (b *Board) MakeMoveString(s string) error {
	m, err := move.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	return b.MakeMove(m)
}

// updateWinner runs the terminal checks after every non-pass move. The
// order matters: a full board must resolve by piece count even when
// neither side can move.
func (b *Board) updateWinner() {
	red, blue := b.numPieces[Red], b.numPieces[Blue]
	switch {
	case red+blue == b.TotalOpen():
		b.declare(byCount(red, blue))
	case red == 0:
		b.declare(Blue)
	case blue == 0:
		b.declare(Red)
	case b.numJumps >= JumpLimit:
		b.declare(byCount(red, blue))
	case !b.CanMove(Red) && !b.CanMove(Blue):
		b.declare(byCount(red, blue))
	}
}

func (b *Board) declare(w PieceColor) {
	b.winner = w
	b.gameOver = true
}

func byCount(red, blue int) PieceColor {
	switch {
	case red > blue:
		return Red
	case blue > red:
		return Blue
	}
	return Empty
}

// Undo takes back the most recent move, restoring the grid, piece counts,
// jump counter, side to move and move history. It is a no-op if no move
// has been made since the last clear or copy. Undone positions are never
// terminal, so the cached winner is dropped.
func (b *Board) Undo() {
	if len(b.undoGroups) == 0 {
		return
	}
	g := b.undoGroups[len(b.undoGroups)-1]
	b.undoGroups = b.undoGroups[:len(b.undoGroups)-1]
	for i := len(b.undoLog) - 1; i >= g.start; i-- {
		e := b.undoLog[i]
		b.numPieces[b.cells[e.sq]]--
		b.numPieces[e.prev]++
		b.cells[e.sq] = e.prev
	}
	b.undoLog = b.undoLog[:g.start]
	b.numJumps = g.prevJumps
	b.moves = b.moves[:len(b.moves)-1]
	b.movesMade--
	b.whoseMove = b.whoseMove.Opposite()
	b.winner = Empty
	b.gameOver = false
	b.announce()
}

func reflectCol(col byte) byte { return 'a' + 'g' - col }
func reflectRow(row byte) byte { return '1' + '7' - row }

// blockSquares returns the distinct squares blocked by placing a block at
// (col, row): the square itself plus its reflections across the vertical
// center line, the horizontal center line, and both together. Squares on
// a center axis coincide with some of their reflections, so the result
// has 1, 2 or 4 entries.
func blockSquares(col, row byte) []int {
	candidates := [4]int{
		index(col, row),
		index(reflectCol(col), row),
		index(col, reflectRow(row)),
		index(reflectCol(col), reflectRow(row)),
	}
	squares := candidates[:0]
	for _, sq := range candidates {
		dup := false
		for _, seen := range squares {
			if seen == sq {
				dup = true
				break
			}
		}
		if !dup {
			squares = append(squares, sq)
		}
	}
	return squares
}

// LegalBlock reports whether a block may be placed at (col, row): only
// before the first move, and only when the square and every one of its
// reflections are empty. The target square's own occupancy is checked
// explicitly, not just its reflections'.
func (b *Board) LegalBlock(col, row byte) bool {
	if b.movesMade != 0 {
		return false
	}
	if col < 'a' || col > 'g' || row < '1' || row > '7' {
		return false
	}
	for _, sq := range blockSquares(col, row) {
		if b.cells[sq] != Empty {
			return false
		}
	}
	return true
}

// LegalBlockString is LegalBlock for a two-character square like "c2".
func (b *Board) LegalBlockString(cr string) bool {
	return len(cr) == 2 && b.LegalBlock(cr[0], cr[1])
}

// SetBlock places a block at (col, row) and at each of its distinct
// reflections. Symmetric block patterns are a rule of the game, not an
// optimization. Blocks are permanent and not undoable.
func (b *Board) SetBlock(col, row byte) error {
	if !b.LegalBlock(col, row) {
		return fmt.Errorf("%w: %c%c", ErrIllegalBlock, col, row)
	}
	for _, sq := range blockSquares(col, row) {
		b.setCell(sq, Blocked)
	}
	// Blocks can seal in both sides before the game starts.
	if !b.CanMove(Red) && !b.CanMove(Blue) {
		b.declare(byCount(b.numPieces[Red], b.numPieces[Blue]))
	}
	b.announce()
	return nil
}

// SetBlockString places a block at a two-character square like "c2".
func (b *Board) SetBlockString(cr string) error {
	if len(cr) != 2 {
		return fmt.Errorf("%w: badly formed square %q", ErrIllegalBlock, cr)
	}
	return b.SetBlock(cr[0], cr[1])
}

// Fingerprint is a hash of the grid and the side to move. Two boards with
// equal fingerprints hold the same position for all practical purposes.
func (b *Board) Fingerprint() uint64 {
	buf := make([]byte, 0, boardSize+1)
	for _, c := range b.cells {
		buf = append(buf, byte(c))
	}
	buf = append(buf, byte(b.whoseMove))
	return xxhash.Sum64(buf)
}

// SetNotifier registers fn to be called after every state change, passing
// the board itself. A nil fn silences notifications. The callback must
// not mutate the board.
func (b *Board) SetNotifier(fn func(*Board)) {
	if fn == nil {
		fn = nopNotifier
	}
	b.notifier = fn
	b.announce()
}

func (b *Board) announce() {
	b.notifier(b)
}

// String renders the board without legends.
func (b *Board) String() string {
	return b.ToString(false)
}

// ToString renders the board, rows top to bottom, one character per cell:
// 'r', 'b', 'X' for blocks, '-' for empty. With legend set, row numbers
// and a column footer frame the grid.
func (b *Board) ToString(legend bool) string {
	var sb strings.Builder
	for row := byte('7'); row >= '1'; row-- {
		if legend {
			sb.WriteByte(row)
		}
		sb.WriteByte(' ')
		for col := byte('a'); col <= 'g'; col++ {
			sb.WriteByte(' ')
			sb.WriteByte(b.Get(col, row).rune())
		}
		sb.WriteByte('\n')
	}
	if legend {
		sb.WriteString("   a b c d e f g")
	}
	return sb.String()
}
