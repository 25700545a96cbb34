package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/calmtris/tetris"
)

const (
	// Each cell is two columns wide so blocks look square.
	cellCols = 2
	sidebarX = 4
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	emptyStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x40, 0x46, 0x54))
	ghostStyle  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x8a, 0x93, 0xa6))
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

var pieceStyles [tetris.PieceCount + 1]tcell.Style

func init() {
	for _, t := range tetris.Catalog() {
		pieceStyles[t.Type] = tcell.StyleDefault.Foreground(tcell.GetColor(t.Color))
	}
}

type renderer struct {
	screen tcell.Screen
}

func (r *renderer) Draw(s tetris.Snapshot) {
	r.screen.Clear()

	r.drawWell(s.Width, s.Height)

	for y, row := range s.Board {
		for x, c := range row {
			if c != tetris.CellEmpty {
				r.cell(x, y, '█', pieceStyles[c])
			}
		}
	}

	if a := s.Active; a != nil {
		r.shape(a.Shape, a.Position.X, s.GhostY, '░', ghostStyle)
		r.shape(a.Shape, a.Position.X, a.Position.Y, '█', tcell.StyleDefault)
	}

	left := cellCols*s.Width + sidebarX
	r.text(left, 1, "NEXT")
	if s.Status != tetris.StatusIdle {
		for y, row := range s.Next.Shape {
			for x, c := range row {
				if c != tetris.CellEmpty {
					r.put(left+x*cellCols, 2+y, '█', pieceStyles[c])
				}
			}
		}
	}

	lines := []string{
		fmt.Sprintf("SCORE %d", s.Stats.Score),
		fmt.Sprintf("LEVEL %d", s.Stats.Level),
		fmt.Sprintf("LINES %d", s.Stats.LinesCleared),
		"",
		statusLine(s.Status),
	}
	for i, l := range lines {
		r.text(left, 6+i, l)
	}

	r.screen.Show()
}

func statusLine(s tetris.Status) string {
	switch s {
	case tetris.StatusIdle:
		return "ENTER to start"
	case tetris.StatusPaused:
		return "PAUSED"
	case tetris.StatusGameOver:
		return "GAME OVER, ENTER to restart"
	default:
		return ""
	}
}

func (r *renderer) drawWell(w, h int) {
	right := 1 + cellCols*w
	for y := 0; y < h; y++ {
		r.screen.SetContent(0, y, '│', nil, borderStyle)
		r.screen.SetContent(right, y, '│', nil, borderStyle)
		for x := 0; x < w; x++ {
			r.cell(x, y, '·', emptyStyle)
		}
	}
	r.screen.SetContent(0, h, '└', nil, borderStyle)
	r.screen.SetContent(right, h, '┘', nil, borderStyle)
	for x := 1; x < right; x++ {
		r.screen.SetContent(x, h, '─', nil, borderStyle)
	}
}

// shape paints the non-empty cells of a piece at board position x, y. A zero
// style means each cell takes its piece color.
func (r *renderer) shape(shape tetris.Shape, px, py int, ch rune, style tcell.Style) {
	for y, row := range shape {
		for x, c := range row {
			if c == tetris.CellEmpty || py+y < 0 {
				continue
			}
			st := style
			if st == tcell.StyleDefault {
				st = pieceStyles[c]
			}
			r.cell(px+x, py+y, ch, st)
		}
	}
}

// cell paints board cell x, y.
func (r *renderer) cell(x, y int, ch rune, style tcell.Style) {
	r.put(1+x*cellCols, y, ch, style)
}

func (r *renderer) put(col, row int, ch rune, style tcell.Style) {
	for i := 0; i < cellCols; i++ {
		r.screen.SetContent(col+i, row, ch, nil, style)
	}
}

func (r *renderer) text(col, row int, s string) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(col+i, row, ch, nil, textStyle)
	}
}
