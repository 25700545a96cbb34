package tetris

import (
	"strings"
	"time"
)

// Key is a host-independent game input.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeySoftDrop
	KeyHardDrop
	KeyRotate
	KeyPause
	KeyStart
)

var keyNames = map[Key]string{
	KeyLeft:     "left",
	KeyRight:    "right",
	KeySoftDrop: "soft-drop",
	KeyHardDrop: "hard-drop",
	KeyRotate:   "rotate",
	KeyPause:    "pause",
	KeyStart:    "start",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "none"
}

// ParseKey looks up a Key by the name String returns. Matching ignores case.
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	return KeyNone, false
}

const (
	DefaultRepeatDelay = 170 * time.Millisecond
	DefaultRepeatRate  = 50 * time.Millisecond
)

// repeatable lists the keys that auto-repeat while held, in firing order.
var repeatable = [...]Key{KeyLeft, KeyRight, KeySoftDrop}

type heldKey struct {
	down    bool
	elapsed time.Duration
}

// Dispatcher turns key events into game operations. Held movement keys
// repeat after RepeatDelay every RepeatRate, driven by Update.
type Dispatcher struct {
	game *Game

	repeatDelay time.Duration
	repeatRate  time.Duration
	held        [len(repeatable)]heldKey

	err error
}

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithAutoRepeat sets the held-key repeat timing. A zero delay turns auto
// repeat off.
func WithAutoRepeat(delay, rate time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.repeatDelay = delay
		d.repeatRate = rate
	}
}

// NewDispatcher creates a dispatcher that drives game.
func NewDispatcher(game *Game, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		game:        game,
		repeatDelay: DefaultRepeatDelay,
		repeatRate:  DefaultRepeatRate,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.repeatRate <= 0 {
		d.repeatRate = DefaultRepeatRate
	}
	return d
}

// Err returns the error from the last rejected KeyStart, if any.
func (d *Dispatcher) Err() error {
	return d.err
}

// Dispatch performs the operation bound to k and reports whether it took
// effect. Movement keys only act while Playing, KeyPause while Playing or
// Paused, and KeyStart from Idle or GameOver.
func (d *Dispatcher) Dispatch(k Key) bool {
	g := d.game
	switch k {
	case KeyLeft:
		return g.MoveLeft()
	case KeyRight:
		return g.MoveRight()
	case KeySoftDrop:
		return g.SoftDrop()
	case KeyHardDrop:
		return g.HardDrop()
	case KeyRotate:
		return g.Rotate()
	case KeyPause:
		return g.TogglePause()
	case KeyStart:
		if s := g.Status(); s != StatusIdle && s != StatusGameOver {
			return false
		}
		d.err = g.StartGame()
		return d.err == nil
	}
	return false
}

// Press dispatches k and, for repeatable keys, starts tracking it as held.
func (d *Dispatcher) Press(k Key) bool {
	ok := d.Dispatch(k)
	if i := repeatIndex(k); i >= 0 && d.game.Status() == StatusPlaying {
		d.held[i] = heldKey{down: true}
	}
	return ok
}

// Release stops auto repeat for k.
func (d *Dispatcher) Release(k Key) {
	if i := repeatIndex(k); i >= 0 {
		d.held[i] = heldKey{}
	}
}

// Update advances held keys by dt and fires at most one repeat per key.
// Leaving Playing drops every held key.
func (d *Dispatcher) Update(dt time.Duration) {
	if d.game.Status() != StatusPlaying {
		d.held = [len(repeatable)]heldKey{}
		return
	}
	if d.repeatDelay <= 0 {
		return
	}

	for i, k := range repeatable {
		h := &d.held[i]
		if !h.down {
			continue
		}

		h.elapsed += dt
		if h.elapsed >= d.repeatDelay {
			h.elapsed -= d.repeatRate
			d.Dispatch(k)
		}
	}
}

func repeatIndex(k Key) int {
	for i, r := range repeatable {
		if r == k {
			return i
		}
	}
	return -1
}
