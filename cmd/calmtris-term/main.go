package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/calmtris/audio"
	"github.com/plus3/calmtris/internal/hostlog"
	"github.com/plus3/calmtris/internal/settings"
	"github.com/plus3/calmtris/tetris"
)

// keyFor maps a terminal key event to a game key.
func keyFor(ev *tcell.EventKey) (tetris.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return tetris.KeyLeft, true
	case tcell.KeyRight:
		return tetris.KeyRight, true
	case tcell.KeyDown:
		return tetris.KeySoftDrop, true
	case tcell.KeyUp:
		return tetris.KeyRotate, true
	case tcell.KeyEnter:
		return tetris.KeyStart, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h', 'a':
			return tetris.KeyLeft, true
		case 'l', 'd':
			return tetris.KeyRight, true
		case 'j', 's':
			return tetris.KeySoftDrop, true
		case 'k', 'w', 'x':
			return tetris.KeyRotate, true
		case ' ':
			return tetris.KeyHardDrop, true
		case 'p':
			return tetris.KeyPause, true
		}
	}
	return tetris.KeyNone, false
}

func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
		(ev.Key() == tcell.KeyRune && ev.Rune() == 'q')
}

// forward feeds terminal events into the loop until the user quits or the
// screen stops producing events. Terminals report no key releases, so every
// press is released right away and holding a key relies on the terminal's
// own repeat.
func forward(screen tcell.Screen, loop *tetris.Loop, sound *audio.SoundManager) {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventKey:
			if isQuit(ev) {
				return
			}
			if ev.Key() == tcell.KeyRune && ev.Rune() == 'm' {
				sound.SetMuted(!sound.Muted())
				continue
			}
			if k, ok := keyFor(ev); ok {
				loop.Press(k)
				loop.Release(k)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func main() {
	s := settings.Register(flag.CommandLine)
	flag.Parse()

	if err := s.Check(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	// The screen owns the terminal until Fini, so log lines are held back and
	// printed on exit.
	var logs bytes.Buffer
	logger := hostlog.New(&logs, s.Debug)

	sound := audio.NewSoundManager()
	sound.SetMuted(s.Mute)
	if !s.Mute {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			logger.Warn().Err(err).Msg("audio disabled")
		}
	}

	r := &renderer{screen: screen}
	game := tetris.New(s.GameOptions(
		tetris.WithListener(tetris.Listeners{sound, hostlog.Listener(logger)}),
	)...)
	loop := tetris.NewLoop(game,
		tetris.WithFrameHook(r.Draw),
		tetris.WithDispatcherOptions(tetris.WithAutoRepeat(0, 0)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		forward(screen, loop, sound)
	}()

	loop.Run(ctx, s.FrameInterval())

	sound.Cleanup()
	screen.Fini()
	os.Stderr.Write(logs.Bytes())

	stats := game.Stats()
	fmt.Printf("score %d, level %d, lines %d\n", stats.Score, stats.Level, stats.LinesCleared)
}
