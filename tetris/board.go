package tetris

// Position is a board coordinate. Y grows downward; row 0 is the top of the
// visible field. Pieces may sit at negative Y while partially above it.
type Position struct {
	X, Y int
}

// Board is the fixed-size field of landed cells. Rows are ordered top to
// bottom and the dimensions never change after creation.
type Board struct {
	width  int
	height int
	cells  [][]Cell
}

// NewBoard creates an empty width x height board.
func NewBoard(width, height int) *Board {
	b := &Board{
		width:  width,
		height: height,
		cells:  make([][]Cell, height),
	}
	for y := range height {
		b.cells[y] = make([]Cell, width)
	}
	return b
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// At returns the cell at (x, y). Coordinates outside the board read as empty.
func (b *Board) At(x, y int) Cell {
	if !b.inside(x, y) {
		return CellEmpty
	}
	return b.cells[y][x]
}

// Set stores c at (x, y). Out of range coordinates are ignored and values
// that are not a piece are stored as empty.
func (b *Board) Set(x, y int, c Cell) {
	if !b.inside(x, y) {
		return
	}
	if c > Cell(PieceL) {
		c = CellEmpty
	}
	b.cells[y][x] = c
}

func (b *Board) inside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Rows returns a deep copy of the cells.
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, b.height)
	for y := range b.cells {
		out[y] = make([]Cell, b.width)
		copy(out[y], b.cells[y])
	}
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{width: b.width, height: b.height, cells: b.Rows()}
}

// Fits is IsValidMove with the board as receiver.
func (b *Board) Fits(shape Shape, pos Position) bool {
	return IsValidMove(shape, pos, b)
}

// IsValidMove reports whether shape can occupy pos on board. A placement is
// illegal when an occupied shape cell falls left, right or below the field,
// or lands on a filled board cell. Cells above the top row are never checked
// against board content.
func IsValidMove(shape Shape, pos Position, board *Board) bool {
	for y, row := range shape {
		for x, c := range row {
			if c == CellEmpty {
				continue
			}

			bx := pos.X + x
			by := pos.Y + y

			if bx < 0 || bx >= board.width || by >= board.height {
				return false
			}

			if by >= 0 && board.cells[by][bx] != CellEmpty {
				return false
			}
		}
	}
	return true
}

// Merge writes the occupied cells of shape into the board at pos. Cells above
// the top row are dropped; overflow reports whether there were any. Callers
// only merge placements that passed IsValidMove.
func (b *Board) Merge(shape Shape, pos Position) (overflow bool) {
	for y, row := range shape {
		for x, c := range row {
			if c == CellEmpty {
				continue
			}

			bx := pos.X + x
			by := pos.Y + y

			if by < 0 {
				overflow = true
				continue
			}
			b.Set(bx, by, c)
		}
	}
	return overflow
}

// IsComplete reports whether every cell of row y is filled.
func (b *Board) IsComplete(y int) bool {
	if y < 0 || y >= b.height {
		return false
	}
	for _, c := range b.cells[y] {
		if c == CellEmpty {
			return false
		}
	}
	return true
}

// ClearLines removes every complete row, shifts the remaining rows down in
// their original order and refills the top with empty rows. It returns the
// indices of the removed rows as they were before the clear, top to bottom.
func (b *Board) ClearLines() []int {
	var cleared []int
	kept := make([][]Cell, 0, b.height)
	for y := range b.cells {
		if b.IsComplete(y) {
			cleared = append(cleared, y)
			continue
		}
		kept = append(kept, b.cells[y])
	}

	if len(cleared) == 0 {
		return nil
	}

	fresh := make([][]Cell, 0, b.height)
	for range cleared {
		fresh = append(fresh, make([]Cell, b.width))
	}
	b.cells = append(fresh, kept...)
	return cleared
}
