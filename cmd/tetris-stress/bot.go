package main

import (
	"github.com/plus3/calmtris/tetris"
)

// placement is where the bot wants the current piece to end up.
type placement struct {
	shape tetris.Shape
	x     int
	score float64
}

// Placement heuristic weights, from Yiyuan Lee's tuned Tetris AI.
const (
	weightHeight    = -0.510066
	weightLines     = 0.760666
	weightHoles     = -0.35663
	weightBumpiness = -0.184483
)

// plan picks the best landing spot for a by trying every distinct rotation in
// every column and scoring the board it would leave behind.
func plan(board *tetris.Board, a tetris.ActivePiece) (placement, bool) {
	var (
		best  placement
		found bool
	)

	shape := a.Shape
	for r := 0; r < 4; r++ {
		if r > 0 {
			shape = shape.Rotate()
			if shape.Equal(a.Shape) {
				break
			}
		}

		for x := 0; x+shape.Width() <= board.Width(); x++ {
			pos := tetris.Position{X: x, Y: a.Position.Y}
			if !tetris.IsValidMove(shape, pos, board) {
				continue
			}
			for tetris.IsValidMove(shape, tetris.Position{X: x, Y: pos.Y + 1}, board) {
				pos.Y++
			}

			after := board.Clone()
			if after.Merge(shape, pos) {
				continue
			}
			lines := len(after.ClearLines())

			score := evaluate(after, lines)
			if !found || score > best.score {
				best = placement{shape: shape, x: x, score: score}
				found = true
			}
		}
	}
	return best, found
}

func evaluate(b *tetris.Board, lines int) float64 {
	heights := make([]int, b.Width())
	holes := 0

	for x := 0; x < b.Width(); x++ {
		seen := false
		for y := 0; y < b.Height(); y++ {
			if b.At(x, y) != tetris.CellEmpty {
				if !seen {
					heights[x] = b.Height() - y
					seen = true
				}
			} else if seen {
				holes++
			}
		}
	}

	aggregate, bumpiness := 0, 0
	for x, h := range heights {
		aggregate += h
		if x > 0 {
			bumpiness += abs(h - heights[x-1])
		}
	}

	return weightHeight*float64(aggregate) +
		weightLines*float64(lines) +
		weightHoles*float64(holes) +
		weightBumpiness*float64(bumpiness)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// bot steers pieces toward planned placements one key per frame, the way a
// player at the keyboard would.
type bot struct {
	piece     int
	target    placement
	planned   bool
	rotations int
	lastX     int
}

// next returns the key to press for the frame described by s, or KeyNone.
func (b *bot) next(s tetris.Snapshot) tetris.Key {
	switch s.Status {
	case tetris.StatusIdle, tetris.StatusGameOver:
		b.piece = 0
		return tetris.KeyStart
	case tetris.StatusPaused:
		return tetris.KeyPause
	}
	if s.Active == nil {
		return tetris.KeyNone
	}

	piece := 0
	for _, n := range s.PieceCounts {
		piece += n
	}
	if piece != b.piece {
		board := tetris.NewBoard(s.Width, s.Height)
		for y, row := range s.Board {
			for x, c := range row {
				board.Set(x, y, c)
			}
		}
		b.piece = piece
		b.target, b.planned = plan(board, *s.Active)
		b.rotations = 0
		b.lastX = -1
	}

	a := s.Active
	if !b.planned {
		return tetris.KeyHardDrop
	}
	if !a.Shape.Equal(b.target.shape) && b.rotations < 4 {
		b.rotations++
		return tetris.KeyRotate
	}

	// A column that stops changing means the path is blocked.
	if a.Position.X != b.target.x && a.Position.X != b.lastX {
		b.lastX = a.Position.X
		if a.Position.X < b.target.x {
			return tetris.KeyRight
		}
		return tetris.KeyLeft
	}
	return tetris.KeyHardDrop
}
