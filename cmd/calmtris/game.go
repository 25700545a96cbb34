package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/plus3/calmtris/audio"
	"github.com/plus3/calmtris/tetris"
)

const (
	cellSize   = 28
	margin     = 24
	sidebarW   = 7 * cellSize
	lineHeight = 16
)

var (
	background = color.RGBA{0x1d, 0x21, 0x2b, 0xff}
	well       = color.RGBA{0x26, 0x2b, 0x37, 0xff}
	gridLine   = color.RGBA{0x30, 0x36, 0x44, 0xff}
	ghost      = color.RGBA{0x8a, 0x93, 0xa6, 0xff}
)

// bindings maps physical keys to game keys. More than one key may share a
// game key.
var bindings = []struct {
	key ebiten.Key
	to  tetris.Key
}{
	{ebiten.KeyArrowLeft, tetris.KeyLeft},
	{ebiten.KeyA, tetris.KeyLeft},
	{ebiten.KeyArrowRight, tetris.KeyRight},
	{ebiten.KeyD, tetris.KeyRight},
	{ebiten.KeyArrowDown, tetris.KeySoftDrop},
	{ebiten.KeyS, tetris.KeySoftDrop},
	{ebiten.KeySpace, tetris.KeyHardDrop},
	{ebiten.KeyArrowUp, tetris.KeyRotate},
	{ebiten.KeyW, tetris.KeyRotate},
	{ebiten.KeyX, tetris.KeyRotate},
	{ebiten.KeyP, tetris.KeyPause},
	{ebiten.KeyEnter, tetris.KeyStart},
}

var palette [tetris.PieceCount + 1]color.RGBA

func init() {
	for _, t := range tetris.Catalog() {
		palette[t.Type] = hexColor(t.Color)
	}
}

func hexColor(s string) color.RGBA {
	c := color.RGBA{A: 0xff}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return color.RGBA{0x80, 0x80, 0x80, 0xff}
	}
	return c
}

type game struct {
	loop   *tetris.Loop
	sound  *audio.SoundManager
	logger zerolog.Logger
	snap   tetris.Snapshot
	width  int
	height int
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.sound.SetMuted(!g.sound.Muted())
		g.logger.Debug().Bool("muted", g.sound.Muted()).Msg("sound toggled")
	}

	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) && !g.loop.Press(b.to) {
			g.logger.Warn().Stringer("key", b.to).Msg("input dropped")
		}
		if inpututil.IsKeyJustReleased(b.key) && !g.loop.Release(b.to) {
			g.logger.Warn().Stringer("key", b.to).Msg("input dropped")
		}
	}

	g.loop.Once(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	w := float32(g.width * cellSize)
	h := float32(g.height * cellSize)
	vector.DrawFilledRect(screen, margin, margin, w, h, well, false)
	vector.StrokeRect(screen, margin-1, margin-1, w+2, h+2, 2, gridLine, false)

	for y, row := range g.snap.Board {
		for x, c := range row {
			if c != tetris.CellEmpty {
				drawCell(screen, margin, margin, x, y, palette[c])
			}
		}
	}

	if a := g.snap.Active; a != nil {
		for y, row := range a.Shape {
			for x, c := range row {
				if c == tetris.CellEmpty {
					continue
				}
				gx := float32(margin + (a.Position.X+x)*cellSize)
				gy := float32(margin + (g.snap.GhostY+y)*cellSize)
				vector.StrokeRect(screen, gx+2, gy+2, cellSize-4, cellSize-4, 1, ghost, false)
				drawCell(screen, margin, margin, a.Position.X+x, a.Position.Y+y, palette[c])
			}
		}
	}

	g.drawSidebar(screen)
}

func (g *game) drawSidebar(screen *ebiten.Image) {
	left := 2*margin + g.width*cellSize
	top := margin

	ebitenutil.DebugPrintAt(screen, "NEXT", left, top)
	if g.snap.Status != tetris.StatusIdle {
		for y, row := range g.snap.Next.Shape {
			for x, c := range row {
				if c != tetris.CellEmpty {
					drawCell(screen, left, top+lineHeight+4, x, y, palette[c])
				}
			}
		}
	}

	top += lineHeight + 4 + 3*cellSize
	st := g.snap.Stats
	lines := []string{
		fmt.Sprintf("SCORE %d", st.Score),
		fmt.Sprintf("LEVEL %d", st.Level),
		fmt.Sprintf("LINES %d", st.LinesCleared),
		"",
		statusLine(g.snap.Status),
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, left, top+i*lineHeight)
	}

	help := []string{
		"<- ->  move",
		"up     rotate",
		"down   soft drop",
		"space  hard drop",
		"p      pause",
		"m      mute",
		"esc    quit",
	}
	top = margin + g.height*cellSize - len(help)*lineHeight
	for i, l := range help {
		ebitenutil.DebugPrintAt(screen, l, left, top+i*lineHeight)
	}
}

func statusLine(s tetris.Status) string {
	switch s {
	case tetris.StatusIdle:
		return "ENTER to start"
	case tetris.StatusPaused:
		return "PAUSED"
	case tetris.StatusGameOver:
		return "GAME OVER\nENTER to restart"
	default:
		return ""
	}
}

func drawCell(screen *ebiten.Image, ox, oy, x, y int, c color.RGBA) {
	px := float32(ox + x*cellSize)
	py := float32(oy + y*cellSize)
	vector.DrawFilledRect(screen, px+1, py+1, cellSize-2, cellSize-2, c, false)
}

func (g *game) Layout(_, _ int) (screenWidth, screenHeight int) {
	screenWidth = 3*margin + g.width*cellSize + sidebarW
	screenHeight = 2*margin + max(g.height*cellSize, 12*lineHeight+3*cellSize)
	return
}
