package tetris

// Status is the state of the game state machine.
type Status int

const (
	StatusIdle Status = iota
	StatusPlaying
	StatusPaused
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Stats are the running totals of one game.
type Stats struct {
	Score        int
	Level        int
	LinesCleared int
}

// LockEvent describes one lock and line clear cycle.
type LockEvent struct {
	Piece    PieceType
	Position Position
	// Rows holds the cleared row indices before the clear, top to bottom.
	Rows         []int
	Lines        int
	ScoreDelta   int
	HardDropRows int
	LevelUp      bool
	Stats        Stats
}

// Listener receives engine events. Calls happen synchronously from inside the
// engine operation that caused them, so implementations must not call back
// into the Game.
type Listener interface {
	OnLock(ev LockEvent)
	OnGameOver(final Stats)
	OnStatusChange(from, to Status)
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Lock         func(ev LockEvent)
	GameOver     func(final Stats)
	StatusChange func(from, to Status)
}

func (f ListenerFuncs) OnLock(ev LockEvent) {
	if f.Lock != nil {
		f.Lock(ev)
	}
}

func (f ListenerFuncs) OnGameOver(final Stats) {
	if f.GameOver != nil {
		f.GameOver(final)
	}
}

func (f ListenerFuncs) OnStatusChange(from, to Status) {
	if f.StatusChange != nil {
		f.StatusChange(from, to)
	}
}

// Listeners fans every event out to each listener in order.
type Listeners []Listener

func (ls Listeners) OnLock(ev LockEvent) {
	for _, l := range ls {
		l.OnLock(ev)
	}
}

func (ls Listeners) OnGameOver(final Stats) {
	for _, l := range ls {
		l.OnGameOver(final)
	}
}

func (ls Listeners) OnStatusChange(from, to Status) {
	for _, l := range ls {
		l.OnStatusChange(from, to)
	}
}
