package tetris

// Cell is a single board square. Zero is empty, 1..7 is the PieceType that
// occupies it.
type Cell uint8

const CellEmpty Cell = 0

// PieceType identifies one of the seven tetrominoes. The zero value is not a
// piece.
type PieceType uint8

const (
	PieceI PieceType = iota + 1
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL
)

// PieceCount is the number of distinct tetrominoes.
const PieceCount = 7

// Valid reports whether t is one of the seven catalog pieces.
func (t PieceType) Valid() bool {
	return t >= PieceI && t <= PieceL
}

func (t PieceType) String() string {
	if !t.Valid() {
		return "?"
	}
	return catalog[t-1].Name
}

// Shape is an occupancy matrix for one rotation of a piece. Occupied entries
// carry the piece's Cell value so a shape can be merged into a board as is.
type Shape [][]Cell

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for i := range s {
		out[i] = make([]Cell, len(s[i]))
		copy(out[i], s[i])
	}
	return out
}

// Equal reports whether both shapes have the same dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(o[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90 degrees clockwise: the transpose with
// every row reversed. The receiver is not modified.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	rotated := make(Shape, w)
	for j := range w {
		rotated[j] = make([]Cell, h)
		for i := range h {
			rotated[j][h-1-i] = s[i][j]
		}
	}
	return rotated
}

// Tetromino is a catalog entry. Color is cosmetic and only meant for
// renderers.
type Tetromino struct {
	Type  PieceType
	Name  string
	Color string
	Shape Shape
}

var catalog = [PieceCount]Tetromino{
	{Type: PieceI, Name: "I", Color: "#5ec8e5", Shape: Shape{
		{1, 1, 1, 1},
	}},
	{Type: PieceO, Name: "O", Color: "#f2d16b", Shape: Shape{
		{2, 2},
		{2, 2},
	}},
	{Type: PieceT, Name: "T", Color: "#b08fd8", Shape: Shape{
		{0, 3, 0},
		{3, 3, 3},
	}},
	{Type: PieceS, Name: "S", Color: "#8fd19e", Shape: Shape{
		{0, 4, 4},
		{4, 4, 0},
	}},
	{Type: PieceZ, Name: "Z", Color: "#f08a8a", Shape: Shape{
		{5, 5, 0},
		{0, 5, 5},
	}},
	{Type: PieceJ, Name: "J", Color: "#6f8fd8", Shape: Shape{
		{6, 0, 0},
		{6, 6, 6},
	}},
	{Type: PieceL, Name: "L", Color: "#f0a868", Shape: Shape{
		{0, 0, 7},
		{7, 7, 7},
	}},
}

// Catalog returns copies of all seven catalog entries ordered by PieceType.
func Catalog() []Tetromino {
	out := make([]Tetromino, 0, PieceCount)
	for _, t := range catalog {
		t.Shape = t.Shape.Clone()
		out = append(out, t)
	}
	return out
}

// ShapeOf returns a fresh copy of the spawn rotation of t, or nil if t is not
// a catalog piece.
func ShapeOf(t PieceType) Shape {
	if !t.Valid() {
		return nil
	}
	return catalog[t-1].Shape.Clone()
}

// ColorOf returns the display color of t as a "#rrggbb" string. Cells are
// looked up the same way since a non-empty Cell equals its PieceType.
func ColorOf(t PieceType) string {
	if !t.Valid() {
		return ""
	}
	return catalog[t-1].Color
}
