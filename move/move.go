// Package move defines Ataxx moves and their text encoding. A move is
// either a pass, an extend (destination adjacent to the source; the source
// keeps its piece), or a jump (destination two squares away; the source is
// vacated). Squares are addressed by a column 'a'..'g' and a row '1'..'7'.
package move

import (
	"fmt"
	"strings"
)

// Kind is the kind of a move. The zero value is Invalid so that an
// uninitialized Move is never accidentally legal.
type Kind uint8

const (
	Invalid Kind = iota
	Pass
	Extend
	Jump
)

// Move is a single Ataxx move. Moves are immutable values; a pass carries
// no squares.
type Move struct {
	col0, row0 byte
	col1, row1 byte
	kind       Kind
}

// PassMove returns the pass move.
func PassMove() Move {
	return Move{kind: Pass}
}

// New builds a move from source and destination squares. The kind is
// derived from the Chebyshev distance between the squares: 1 is an extend,
// 2 is a jump, anything else yields an invalid move. New does not look at
// a board; range and occupancy checks belong to board.LegalMove.
func New(col0, row0, col1, row1 byte) Move {
	dc := abs(int(col1) - int(col0))
	dr := abs(int(row1) - int(row0))
	d := dc
	if dr > d {
		d = dr
	}
	m := Move{col0: col0, row0: row0, col1: col1, row1: row1}
	switch d {
	case 1:
		m.kind = Extend
	case 2:
		m.kind = Jump
	default:
		m.kind = Invalid
	}
	return m
}

// Parse decodes the text form of a move: "-" for a pass, or
// "<col><row>-<col><row>" such as "a1-a2".
func Parse(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return PassMove(), nil
	}
	if len(s) != 5 || s[2] != '-' {
		return Move{}, fmt.Errorf("badly formed move %q", s)
	}
	m := New(s[0], s[1], s[3], s[4])
	if m.kind == Invalid {
		return Move{}, fmt.Errorf("move %q has no legal distance", s)
	}
	return m, nil
}

func (m Move) Kind() Kind     { return m.kind }
func (m Move) IsPass() bool   { return m.kind == Pass }
func (m Move) IsExtend() bool { return m.kind == Extend }
func (m Move) IsJump() bool   { return m.kind == Jump }

// Col0 is the source column. The value is arbitrary for a pass.
func (m Move) Col0() byte { return m.col0 }
func (m Move) Row0() byte { return m.row0 }
func (m Move) Col1() byte { return m.col1 }
func (m Move) Row1() byte { return m.row1 }

// String renders the move in its text encoding.
func (m Move) String() string {
	switch m.kind {
	case Pass:
		return "-"
	case Extend, Jump:
		return fmt.Sprintf("%c%c-%c%c", m.col0, m.row0, m.col1, m.row1)
	}
	return "(invalid)"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
