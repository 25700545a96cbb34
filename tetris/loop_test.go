package tetris_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/calmtris/tetris"
)

func newTestLoop(t *testing.T, opts ...tetris.LoopOption) *tetris.Loop {
	t.Helper()

	g := tetris.New(tetris.WithRandomizer(tetris.NewQueueRandomizer(tetris.PieceI, tetris.PieceO, tetris.PieceT)))
	require.NoError(t, g.StartGame())
	return tetris.NewLoop(g, opts...)
}

func TestLoopOnce(t *testing.T) {
	t.Run("applies queued input in order", func(t *testing.T) {
		l := newTestLoop(t)

		require.True(t, l.Press(tetris.KeyLeft))
		require.True(t, l.Release(tetris.KeyLeft))
		require.True(t, l.Press(tetris.KeyLeft))
		require.True(t, l.Release(tetris.KeyLeft))
		require.True(t, l.Press(tetris.KeyRotate))

		a, _ := l.Game().Active()
		require.Equal(t, 3, a.Position.X, "nothing happens until the frame runs")

		l.Once(0)

		a, _ = l.Game().Active()
		assert.Equal(t, 1, a.Position.X)
		assert.Equal(t, 1, a.Shape.Width(), "rotated after both moves")

		stats := l.Stats()
		assert.Equal(t, int64(1), stats.Frames)
		assert.Equal(t, int64(5), stats.Inputs)
	})

	t.Run("drives gravity", func(t *testing.T) {
		l := newTestLoop(t)

		for range 10 {
			l.Once(100 * time.Millisecond)
		}

		a, _ := l.Game().Active()
		assert.Equal(t, 1, a.Position.Y)
		assert.Equal(t, int64(1), l.Stats().AutoDrops)
		assert.Equal(t, int64(10), l.Stats().Frames)
	})

	t.Run("held keys repeat across frames", func(t *testing.T) {
		l := newTestLoop(t, tetris.WithDispatcherOptions(tetris.WithAutoRepeat(100*time.Millisecond, 50*time.Millisecond)))

		l.Press(tetris.KeyRight)
		l.Once(0)
		l.Once(100 * time.Millisecond)
		l.Once(50 * time.Millisecond)

		a, _ := l.Game().Active()
		assert.Equal(t, 6, a.Position.X)
	})

	t.Run("frame hook sees every frame", func(t *testing.T) {
		var frames []tetris.Snapshot
		l := newTestLoop(t, tetris.WithFrameHook(func(s tetris.Snapshot) {
			frames = append(frames, s)
		}))

		l.Press(tetris.KeyHardDrop)
		l.Once(0)
		l.Once(0)

		require.Len(t, frames, 2)
		require.NotNil(t, frames[0].Active)
		assert.Equal(t, tetris.PieceO, frames[0].Active.Type)
		assert.Equal(t, tetris.PieceT, frames[0].Next.Type)
	})
}

func TestLoopInputBuffer(t *testing.T) {
	l := newTestLoop(t, tetris.WithInputBuffer(2))

	assert.True(t, l.Press(tetris.KeyLeft))
	assert.True(t, l.Release(tetris.KeyLeft))
	assert.False(t, l.Press(tetris.KeyLeft))
	assert.Equal(t, int64(1), l.Stats().DroppedInputs)

	l.Once(0)
	assert.True(t, l.Press(tetris.KeyLeft), "draining frees the queue")
}

func TestLoopStop(t *testing.T) {
	l := newTestLoop(t)
	l.Press(tetris.KeyLeft)

	l.Stop()
	l.Stop()

	assert.True(t, l.Stopped())
	assert.False(t, l.Press(tetris.KeyRight))
	assert.False(t, l.Release(tetris.KeyRight))

	before := l.Game().Snapshot()
	l.Once(time.Hour)
	assert.Equal(t, before, l.Game().Snapshot(), "a stopped loop never touches the game")
	assert.Zero(t, l.Stats().Frames)
}

func TestLoopShutdown(t *testing.T) {
	l := newTestLoop(t)
	l.Press(tetris.KeyLeft)
	l.Once(0)

	stats := l.Shutdown()
	assert.Equal(t, int64(1), stats.Frames)
	assert.Equal(t, int64(1), stats.Inputs)
	assert.True(t, l.Stopped())
	assert.False(t, l.Press(tetris.KeyRight), "input is refused after shutdown")

	l.Once(time.Second)
	assert.Equal(t, stats, l.Shutdown(), "shutdown is idempotent and freezes the stats")
}

func TestLoopRun(t *testing.T) {
	t.Run("context cancellation", func(t *testing.T) {
		l := newTestLoop(t)
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan struct{})
		go func() {
			l.Run(ctx, time.Millisecond)
			close(done)
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after cancel")
		}

		assert.True(t, l.Stopped(), "Run tears the loop down on return")
		assert.False(t, l.Press(tetris.KeyLeft))
		assert.Greater(t, l.Stats().Frames, int64(0))
	})

	t.Run("stop", func(t *testing.T) {
		l := newTestLoop(t)

		done := make(chan struct{})
		go func() {
			l.Run(context.Background(), time.Millisecond)
			close(done)
		}()

		l.Stop()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Run did not return after Stop")
		}

		frames := l.Stats().Frames
		time.Sleep(10 * time.Millisecond)
		assert.Equal(t, frames, l.Stats().Frames, "no frames after teardown")
	})

	t.Run("input from another goroutine", func(t *testing.T) {
		seen := make(chan int, 256)
		l := newTestLoop(t, tetris.WithFrameHook(func(s tetris.Snapshot) {
			if s.Active != nil {
				select {
				case seen <- s.Active.Position.X:
				default:
				}
			}
		}))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go l.Run(ctx, time.Millisecond)

		require.True(t, l.Press(tetris.KeyLeft))

		deadline := time.After(time.Second)
		for {
			select {
			case x := <-seen:
				if x == 2 {
					return
				}
			case <-deadline:
				t.Fatal("key press never reached the game")
			}
		}
	})
}

func TestLoopStatsDurations(t *testing.T) {
	l := newTestLoop(t)
	assert.Zero(t, l.Stats().MinDuration)

	for range 5 {
		l.Once(time.Millisecond)
	}

	stats := l.Stats()
	assert.LessOrEqual(t, stats.MinDuration, stats.AvgDuration)
	assert.LessOrEqual(t, stats.AvgDuration, stats.MaxDuration)
	assert.Equal(t, stats.TotalDuration/5, stats.AvgDuration)
}
