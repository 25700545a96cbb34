package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plus3/calmtris/audio"
	"github.com/plus3/calmtris/internal/hostlog"
	"github.com/plus3/calmtris/internal/settings"
	"github.com/plus3/calmtris/tetris"
)

func main() {
	s := settings.Register(flag.CommandLine)
	flag.Parse()

	log.Logger = hostlog.New(os.Stderr, s.Debug)

	if err := s.Check(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}

	sound := audio.NewSoundManager()
	sound.SetMuted(s.Mute)
	if !s.Mute {
		if err := sound.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio disabled")
		}
	}
	defer sound.Cleanup()

	g := newGame(s, sound, log.Logger)

	ebiten.SetTPS(s.FPS)
	ebiten.SetWindowTitle("calmtris")
	ebiten.SetWindowSize(g.Layout(0, 0))

	err := ebiten.RunGame(g)
	stats := g.loop.Shutdown()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("game exited")
		sound.Cleanup()
		os.Exit(1)
	}

	log.Info().
		Int64("frames", stats.Frames).
		Dur("avg_frame", stats.AvgDuration).
		Dur("max_frame", stats.MaxDuration).
		Msg("bye")
}

func newGame(s *settings.Settings, sound *audio.SoundManager, logger zerolog.Logger) *game {
	g := &game{
		width:  s.Width,
		height: s.Height,
		sound:  sound,
		logger: logger,
	}

	engine := tetris.New(s.GameOptions(
		tetris.WithListener(tetris.Listeners{sound, hostlog.Listener(logger)}),
	)...)
	g.loop = tetris.NewLoop(engine, tetris.WithFrameHook(func(snap tetris.Snapshot) {
		g.snap = snap
	}))
	g.snap = engine.Snapshot()
	return g
}
