package tetris

import (
	"fmt"
	"time"

	"github.com/kamstrup/intmap"
)

// KickOffsets are the horizontal offsets tried, in order, when a rotated
// piece does not fit where it is.
var KickOffsets = [...]int{0, -1, +1, -2, +2}

// Piece is a tetromino in a particular rotation, without a position. The next
// piece preview is a Piece.
type Piece struct {
	Type  PieceType
	Shape Shape
}

func (p Piece) clone() Piece {
	return Piece{Type: p.Type, Shape: p.Shape.Clone()}
}

// ActivePiece is the falling piece.
type ActivePiece struct {
	Piece
	Position Position
}

// Game is one instance of the puzzle engine. It is not safe for concurrent
// use; drive it from a single goroutine, or through a Loop.
type Game struct {
	cfg      Config
	listener Listener

	status Status
	board  *Board
	active *ActivePiece
	next   Piece
	stats  Stats

	dropInterval time.Duration
	accumulator  time.Duration

	spawned *intmap.Map[PieceType, int]
}

// New creates an idle game. Configuration errors are reported by StartGame.
func New(opts ...Option) *Game {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Game{
		cfg:      cfg,
		listener: cfg.Listener,
		status:   StatusIdle,
		spawned:  intmap.New[PieceType, int](PieceCount),
	}
	if g.listener == nil {
		g.listener = ListenerFuncs{}
	}
	return g
}

// Config returns the configuration the game was created with.
func (g *Game) Config() Config {
	return g.cfg
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) Stats() Stats {
	return g.stats
}

// DropInterval is the current automatic drop interval.
func (g *Game) DropInterval() time.Duration {
	return g.dropInterval
}

// Active returns a copy of the falling piece, if there is one.
func (g *Game) Active() (ActivePiece, bool) {
	if g.active == nil {
		return ActivePiece{}, false
	}
	return ActivePiece{Piece: g.active.clone(), Position: g.active.Position}, true
}

// Next returns a copy of the preview piece.
func (g *Game) Next() Piece {
	return g.next.clone()
}

// Spawned returns how many pieces of type t have entered play this game.
func (g *Game) Spawned(t PieceType) int {
	n, _ := g.spawned.Get(t)
	return n
}

// StartGame discards any game in progress, builds a fresh board and stats,
// deals the first two pieces and starts play.
func (g *Game) StartGame() error {
	if err := g.cfg.Validate(); err != nil {
		return err
	}

	g.setStatus(StatusIdle)

	g.board = NewBoard(g.cfg.Width, g.cfg.Height)
	g.stats = Stats{Level: g.cfg.StartLevel}
	g.dropInterval = g.cfg.SpeedCurve(g.stats.Level)
	g.accumulator = 0
	g.spawned = intmap.New[PieceType, int](PieceCount)
	g.active = nil
	g.next = g.draw()

	g.setStatus(StatusPlaying)
	g.spawn()
	return nil
}

// Reset abandons the current game and returns to Idle.
func (g *Game) Reset() {
	g.board = nil
	g.active = nil
	g.next = Piece{}
	g.stats = Stats{}
	g.dropInterval = 0
	g.accumulator = 0
	g.spawned = intmap.New[PieceType, int](PieceCount)
	g.setStatus(StatusIdle)
}

// TogglePause switches between Playing and Paused. It does nothing in any
// other state.
func (g *Game) TogglePause() bool {
	switch g.status {
	case StatusPlaying:
		g.setStatus(StatusPaused)
	case StatusPaused:
		g.setStatus(StatusPlaying)
	default:
		return false
	}
	return true
}

// Tick advances the drop timer by dt. Once the accumulated time reaches the
// drop interval the piece is moved down one row and the timer restarts. It
// reports whether a drop step ran.
func (g *Game) Tick(dt time.Duration) bool {
	if g.status != StatusPlaying {
		return false
	}

	g.accumulator += dt
	if g.accumulator < g.dropInterval {
		return false
	}

	g.accumulator = 0
	g.Move(0, 1)
	return true
}

// Move shifts the falling piece by (dx, dy). A rejected downward move locks
// the piece in place.
func (g *Game) Move(dx, dy int) bool {
	if g.status != StatusPlaying || g.active == nil {
		return false
	}

	a := g.active
	candidate := Position{X: a.Position.X + dx, Y: a.Position.Y + dy}
	if g.board.Fits(a.Shape, candidate) {
		a.Position = candidate
		return true
	}

	if dy > 0 {
		g.lock(0)
	}
	return false
}

func (g *Game) MoveLeft() bool  { return g.Move(-1, 0) }
func (g *Game) MoveRight() bool { return g.Move(1, 0) }
func (g *Game) SoftDrop() bool  { return g.Move(0, 1) }

// Rotate turns the falling piece clockwise, trying each of KickOffsets until
// the rotated shape fits. The piece is left untouched if none does.
func (g *Game) Rotate() bool {
	if g.status != StatusPlaying || g.active == nil {
		return false
	}

	a := g.active
	rotated := a.Shape.Rotate()
	for _, dx := range KickOffsets {
		candidate := Position{X: a.Position.X + dx, Y: a.Position.Y}
		if g.board.Fits(rotated, candidate) {
			a.Shape = rotated
			a.Position = candidate
			return true
		}
	}
	return false
}

// HardDrop moves the falling piece straight down as far as it fits and locks
// it immediately.
func (g *Game) HardDrop() bool {
	if g.status != StatusPlaying || g.active == nil {
		return false
	}

	a := g.active
	y := g.restingY(a.Shape, a.Position)
	rows := y - a.Position.Y
	a.Position.Y = y
	g.lock(rows)
	return true
}

// restingY is the largest y at pos.X where shape still fits, scanning down
// from pos.Y.
func (g *Game) restingY(shape Shape, pos Position) int {
	y := pos.Y
	for g.board.Fits(shape, Position{X: pos.X, Y: y + 1}) {
		y++
	}
	return y
}

func (g *Game) lock(hardDropRows int) {
	a := g.active
	g.active = nil

	if g.board.Merge(a.Shape, a.Position) {
		g.gameOver()
		return
	}

	rows := g.board.ClearLines()
	delta, levelUp := applyClear(&g.stats, len(rows))
	if levelUp {
		g.dropInterval = g.cfg.SpeedCurve(g.stats.Level)
	}

	g.listener.OnLock(LockEvent{
		Piece:        a.Type,
		Position:     a.Position,
		Rows:         rows,
		Lines:        len(rows),
		ScoreDelta:   delta,
		HardDropRows: hardDropRows,
		LevelUp:      levelUp,
		Stats:        g.stats,
	})

	g.spawn()
}

// spawn promotes the preview piece to the falling piece at the top center and
// deals a new preview. A blocked spawn ends the game without placing the
// piece.
func (g *Game) spawn() {
	p := g.next
	g.next = g.draw()

	pos := Position{X: (g.board.Width() - p.Shape.Width()) / 2, Y: 0}
	if !g.board.Fits(p.Shape, pos) {
		g.gameOver()
		return
	}

	g.active = &ActivePiece{Piece: p, Position: pos}
	n, _ := g.spawned.Get(p.Type)
	g.spawned.Put(p.Type, n+1)
}

func (g *Game) draw() Piece {
	t := g.cfg.Randomizer.Next()
	if !t.Valid() {
		panic(fmt.Sprintf("tetris: randomizer returned invalid piece type %d", t))
	}
	return Piece{Type: t, Shape: ShapeOf(t)}
}

func (g *Game) gameOver() {
	g.active = nil
	g.setStatus(StatusGameOver)
	g.listener.OnGameOver(g.stats)
}

func (g *Game) setStatus(s Status) {
	if g.status == s {
		return
	}
	from := g.status
	g.status = s
	g.listener.OnStatusChange(from, s)
}
