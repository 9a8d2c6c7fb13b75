package board

import "fmt"

// FromRows builds a board from a textual description, for tests and
// analysis positions. Rows are given top to bottom (row 7 first), one
// character per column a through g: 'r', 'b', 'X' for a block, '-' for
// empty. The histories start empty; terminal positions are detected and
// their winner cached, exactly as if the position had been reached by
// play.
func FromRows(whose PieceColor, rows ...string) (*Board, error) {
	if !whose.IsPiece() {
		return nil, fmt.Errorf("side to move must be red or blue, got %s", whose)
	}
	if len(rows) != Side {
		return nil, fmt.Errorf("need %d rows, got %d", Side, len(rows))
	}
	b := New()
	b.numPieces = [4]int{}
	for i, desc := range rows {
		if len(desc) != Side {
			return nil, fmt.Errorf("row %d: need %d squares, got %d", Side-i, Side, len(desc))
		}
		row := byte('7') - byte(i)
		for j := 0; j < Side; j++ {
			var c PieceColor
			switch desc[j] {
			case 'r':
				c = Red
			case 'b':
				c = Blue
			case 'X':
				c = Blocked
			case '-':
				c = Empty
			default:
				return nil, fmt.Errorf("row %d: unknown square %q", Side-i, desc[j])
			}
			b.cells[index('a'+byte(j), row)] = c
			b.numPieces[c]++
		}
	}
	b.whoseMove = whose
	b.updateWinner()
	return b, nil
}
