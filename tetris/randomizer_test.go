package tetris_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/calmtris/tetris"
)

func TestUniformRandomizer(t *testing.T) {
	r := tetris.NewUniformRandomizer(42)

	seen := make(map[tetris.PieceType]int)
	for range 7000 {
		pt := r.Next()
		if !assert.True(t, pt.Valid()) {
			return
		}
		seen[pt]++
	}

	assert.Len(t, seen, tetris.PieceCount)
	for pt, n := range seen {
		assert.InDelta(t, 1000, n, 200, "piece %s drawn %d times", pt, n)
	}
}

func TestUniformRandomizerIsSeeded(t *testing.T) {
	a := tetris.NewUniformRandomizer(7)
	b := tetris.NewUniformRandomizer(7)
	for range 100 {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestBagRandomizer(t *testing.T) {
	r := tetris.NewBagRandomizer(1)

	for bag := range 20 {
		seen := make(map[tetris.PieceType]bool)
		for range tetris.PieceCount {
			seen[r.Next()] = true
		}
		assert.Len(t, seen, tetris.PieceCount, "bag %d must deal every piece once", bag)
	}
}

func TestQueueRandomizer(t *testing.T) {
	q := tetris.NewQueueRandomizer(tetris.PieceS, tetris.PieceZ)
	q.Push(tetris.PieceI)

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, tetris.PieceS, q.Next())
	assert.Equal(t, tetris.PieceZ, q.Next())
	assert.Equal(t, tetris.PieceI, q.Next())
	assert.Equal(t, 0, q.Len())

	// Drained queues keep dealing.
	for range 10 {
		assert.True(t, q.Next().Valid())
	}
}
