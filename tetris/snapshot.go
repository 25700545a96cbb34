package tetris

import "time"

// Snapshot is a read-only copy of everything a renderer needs. Mutating it
// never affects the game.
type Snapshot struct {
	Status       Status
	Width        int
	Height       int
	Board        [][]Cell
	Active       *ActivePiece
	Next         Piece
	GhostY       int
	Stats        Stats
	DropInterval time.Duration
	PieceCounts  map[PieceType]int
}

// Snapshot copies the current game state. Board is nil while Idle.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Status:       g.status,
		Width:        g.cfg.Width,
		Height:       g.cfg.Height,
		Next:         g.next.clone(),
		Stats:        g.stats,
		DropInterval: g.dropInterval,
		PieceCounts:  g.SpawnCounts(),
	}

	if g.board != nil {
		s.Board = g.board.Rows()
	}

	if a, ok := g.Active(); ok {
		s.Active = &a
		s.GhostY = g.restingY(a.Shape, a.Position)
	}
	return s
}

// SpawnCounts returns the number of pieces of each type dealt into play this
// game. Types that have not appeared are absent.
func (g *Game) SpawnCounts() map[PieceType]int {
	counts := make(map[PieceType]int, g.spawned.Len())
	for t := PieceI; t <= PieceL; t++ {
		if n, ok := g.spawned.Get(t); ok {
			counts[t] = n
		}
	}
	return counts
}

// Frame returns the board with the falling piece painted over it. Cells of the
// piece above the top row are left out.
func (s Snapshot) Frame() [][]Cell {
	if s.Board == nil {
		return nil
	}

	frame := make([][]Cell, len(s.Board))
	for y := range s.Board {
		frame[y] = make([]Cell, len(s.Board[y]))
		copy(frame[y], s.Board[y])
	}

	if s.Active == nil {
		return frame
	}

	for y, row := range s.Active.Shape {
		for x, c := range row {
			fx := s.Active.Position.X + x
			fy := s.Active.Position.Y + y
			if c == CellEmpty || fy < 0 || fy >= len(frame) || fx < 0 || fx >= len(frame[fy]) {
				continue
			}
			frame[fy][fx] = c
		}
	}
	return frame
}
