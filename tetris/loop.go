package tetris

import (
	"context"
	"sync"
	"time"
)

// LoopStats describes the frames a Loop has processed.
type LoopStats struct {
	Frames        int64
	AutoDrops     int64
	Inputs        int64
	DroppedInputs int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
}

type inputEvent struct {
	key  Key
	down bool
}

// Loop serializes everything that mutates a Game: queued key events and the
// frame-driven drop timer are applied one after another from a single
// goroutine, either by Run or by a host calling Once from its own frame
// callback. Press, Release and Stop may be called from any goroutine.
type Loop struct {
	game       *Game
	dispatcher *Dispatcher
	onFrame    func(Snapshot)

	events   chan inputEvent
	done     chan struct{}
	stopOnce sync.Once

	mu    sync.Mutex
	stats LoopStats
}

// LoopOption customizes a Loop.
type LoopOption func(*loopConfig)

type loopConfig struct {
	onFrame     func(Snapshot)
	inputBuffer int
	dispatch    []DispatcherOption
}

// WithFrameHook registers fn to receive a snapshot after every frame. It
// runs on the loop goroutine.
func WithFrameHook(fn func(Snapshot)) LoopOption {
	return func(c *loopConfig) {
		c.onFrame = fn
	}
}

// WithInputBuffer sets how many key events may be queued between frames.
func WithInputBuffer(n int) LoopOption {
	return func(c *loopConfig) {
		c.inputBuffer = n
	}
}

// WithDispatcherOptions passes options to the loop's Dispatcher.
func WithDispatcherOptions(opts ...DispatcherOption) LoopOption {
	return func(c *loopConfig) {
		c.dispatch = append(c.dispatch, opts...)
	}
}

// NewLoop creates a loop that owns game.
func NewLoop(game *Game, opts ...LoopOption) *Loop {
	cfg := loopConfig{inputBuffer: 64}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.inputBuffer < 1 {
		cfg.inputBuffer = 1
	}

	return &Loop{
		game:       game,
		dispatcher: NewDispatcher(game, cfg.dispatch...),
		onFrame:    cfg.onFrame,
		events:     make(chan inputEvent, cfg.inputBuffer),
		done:       make(chan struct{}),
		stats:      LoopStats{MinDuration: time.Duration(1<<63 - 1)},
	}
}

// Game returns the game the loop drives. Only touch it from the loop
// goroutine.
func (l *Loop) Game() *Game {
	return l.game
}

// Dispatcher returns the loop's key dispatcher.
func (l *Loop) Dispatcher() *Dispatcher {
	return l.dispatcher
}

// Press queues a key press. It returns false once the loop has stopped or
// when the queue is full.
func (l *Loop) Press(k Key) bool {
	return l.enqueue(inputEvent{key: k, down: true})
}

// Release queues a key release.
func (l *Loop) Release(k Key) bool {
	return l.enqueue(inputEvent{key: k})
}

func (l *Loop) enqueue(ev inputEvent) bool {
	if l.Stopped() {
		return false
	}

	select {
	case l.events <- ev:
		return true
	default:
		l.mu.Lock()
		l.stats.DroppedInputs++
		l.mu.Unlock()
		return false
	}
}

// Stop tears the loop down. Run returns, queued input is discarded and later
// calls to Once, Press and Release do nothing.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

// Shutdown stops the loop and returns the final frame statistics. Hosts that
// drive Once themselves call it when their own run loop ends.
func (l *Loop) Shutdown() LoopStats {
	l.Stop()
	return l.Stats()
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Once processes one frame: queued key events in arrival order, held-key
// repeats, then the drop timer advanced by dt.
func (l *Loop) Once(dt time.Duration) {
	if l.Stopped() {
		return
	}

	start := time.Now()

	var inputs int64
drain:
	for {
		select {
		case ev := <-l.events:
			inputs++
			if ev.down {
				l.dispatcher.Press(ev.key)
			} else {
				l.dispatcher.Release(ev.key)
			}
		default:
			break drain
		}
	}

	l.dispatcher.Update(dt)
	dropped := l.game.Tick(dt)

	if l.onFrame != nil {
		l.onFrame(l.game.Snapshot())
	}

	duration := time.Since(start)

	l.mu.Lock()
	defer l.mu.Unlock()
	s := &l.stats
	s.Frames++
	s.Inputs += inputs
	if dropped {
		s.AutoDrops++
	}
	s.LastDuration = duration
	s.TotalDuration += duration
	if duration < s.MinDuration {
		s.MinDuration = duration
	}
	if duration > s.MaxDuration {
		s.MaxDuration = duration
	}
}

// Run processes a frame every interval until ctx is cancelled or Stop is
// called. The loop is stopped when Run returns, so no timer callback or key
// event reaches the game afterwards.
func (l *Loop) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer l.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.done:
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			l.Once(dt)
		}
	}
}

// Stats returns frame statistics collected so far.
func (l *Loop) Stats() LoopStats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := l.stats
	if stats.Frames > 0 {
		stats.AvgDuration = stats.TotalDuration / time.Duration(stats.Frames)
	} else {
		stats.MinDuration = 0
	}
	return stats
}
