package board

// PieceColor is the contents of a single square: a red or blue piece, an
// empty square, or a permanent block. Empty doubles as the draw marker in
// winner reporting.
type PieceColor uint8

const (
	Empty PieceColor = iota
	Blocked
	Red
	Blue
)

// Opposite returns the other player's color. It panics when called on a
// non-piece, which is always a caller bug.
func (p PieceColor) Opposite() PieceColor {
	switch p {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	panic("opposite of non-piece color")
}

// IsPiece reports whether p is a player's piece.
func (p PieceColor) IsPiece() bool {
	return p == Red || p == Blue
}

func (p PieceColor) String() string {
	switch p {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Blocked:
		return "blocked"
	}
	return "empty"
}

// rune for the single-character board rendering.
func (p PieceColor) rune() byte {
	switch p {
	case Red:
		return 'r'
	case Blue:
		return 'b'
	case Blocked:
		return 'X'
	}
	return '-'
}
