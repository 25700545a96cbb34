package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/calmtris/tetris"
)

func TestPlanFillsWell(t *testing.T) {
	// Two rows filled except the rightmost column: only an upright I clears
	// both, a flat I would clear one and leave a tall stack.
	board := tetris.NewBoard(4, 4)
	for y := 2; y < 4; y++ {
		for x := 0; x < 3; x++ {
			board.Set(x, y, tetris.Cell(tetris.PieceO))
		}
	}

	i := tetris.ShapeOf(tetris.PieceI)
	p, ok := plan(board, tetris.ActivePiece{
		Piece:    tetris.Piece{Type: tetris.PieceI, Shape: i},
		Position: tetris.Position{X: 0, Y: 0},
	})

	require.True(t, ok)
	assert.Equal(t, 3, p.x)
	assert.True(t, p.shape.Equal(i.Rotate()), "stands the I up in the well")
}

func TestPlanNoRoom(t *testing.T) {
	board := tetris.NewBoard(4, 4)
	for x := 0; x < 4; x++ {
		board.Set(x, 0, tetris.Cell(tetris.PieceZ))
	}

	_, ok := plan(board, tetris.ActivePiece{
		Piece: tetris.Piece{Type: tetris.PieceO, Shape: tetris.ShapeOf(tetris.PieceO)},
	})
	assert.False(t, ok)
}

func TestEvaluate(t *testing.T) {
	flat := tetris.NewBoard(4, 4)
	for x := 0; x < 4; x++ {
		flat.Set(x, 3, tetris.Cell(tetris.PieceT))
	}

	holey := tetris.NewBoard(4, 4)
	for x := 0; x < 4; x++ {
		holey.Set(x, 2, tetris.Cell(tetris.PieceT))
	}

	assert.Greater(t, evaluate(flat, 0), evaluate(holey, 0))
	assert.Greater(t, evaluate(flat, 1), evaluate(flat, 0))
}

func snapshotWith(a tetris.ActivePiece) tetris.Snapshot {
	return tetris.Snapshot{
		Status:      tetris.StatusPlaying,
		Width:       6,
		Height:      6,
		Board:       tetris.NewBoard(6, 6).Rows(),
		Active:      &a,
		PieceCounts: map[tetris.PieceType]int{a.Type: 1},
	}
}

func TestBotSteers(t *testing.T) {
	i := tetris.ShapeOf(tetris.PieceI)
	upright := i.Rotate()

	b := &bot{
		piece:   1,
		planned: true,
		target:  placement{shape: upright, x: 3},
		lastX:   -1,
	}

	at := func(shape tetris.Shape, x int) tetris.Snapshot {
		return snapshotWith(tetris.ActivePiece{
			Piece:    tetris.Piece{Type: tetris.PieceI, Shape: shape},
			Position: tetris.Position{X: x},
		})
	}

	assert.Equal(t, tetris.KeyRotate, b.next(at(i, 1)))
	assert.Equal(t, tetris.KeyRight, b.next(at(upright, 1)))
	assert.Equal(t, tetris.KeyRight, b.next(at(upright, 2)))
	assert.Equal(t, tetris.KeyHardDrop, b.next(at(upright, 3)))

	t.Run("blocked path drops where it is", func(t *testing.T) {
		b.lastX = -1
		assert.Equal(t, tetris.KeyRight, b.next(at(upright, 2)))
		assert.Equal(t, tetris.KeyHardDrop, b.next(at(upright, 2)))
	})
}

func TestBotReplansOnNewPiece(t *testing.T) {
	b := &bot{}
	s := snapshotWith(tetris.ActivePiece{
		Piece:    tetris.Piece{Type: tetris.PieceO, Shape: tetris.ShapeOf(tetris.PieceO)},
		Position: tetris.Position{X: 2},
	})

	b.next(s)
	assert.Equal(t, 1, b.piece)
	assert.True(t, b.planned)
}

func TestBotStatusKeys(t *testing.T) {
	b := &bot{piece: 9}

	assert.Equal(t, tetris.KeyStart, b.next(tetris.Snapshot{Status: tetris.StatusIdle}))
	assert.Equal(t, tetris.KeyStart, b.next(tetris.Snapshot{Status: tetris.StatusGameOver}))
	assert.Zero(t, b.piece, "a new game starts a new piece count")
	assert.Equal(t, tetris.KeyPause, b.next(tetris.Snapshot{Status: tetris.StatusPaused}))
	assert.Equal(t, tetris.KeyNone, b.next(tetris.Snapshot{Status: tetris.StatusPlaying}))
}
