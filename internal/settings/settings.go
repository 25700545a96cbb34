// Package settings holds the command line flags shared by the calmtris hosts.
package settings

import (
	"flag"
	"fmt"
	"time"

	"github.com/plus3/calmtris/tetris"
)

type Settings struct {
	Width  int
	Height int
	Level  int
	Seed   uint64
	FPS    int
	Bag    bool
	Mute   bool
	Debug  bool
}

// Register binds the flags to fs and returns the settings they fill in once
// fs is parsed.
func Register(fs *flag.FlagSet) *Settings {
	s := &Settings{}
	fs.IntVar(&s.Width, "width", tetris.DefaultWidth, "The board width in cells.")
	fs.IntVar(&s.Height, "height", tetris.DefaultHeight, "The board height in cells.")
	fs.IntVar(&s.Level, "level", 1, "The level a new game starts on.")
	fs.Uint64Var(&s.Seed, "seed", 0, "Randomizer seed. Zero picks one from the clock.")
	fs.IntVar(&s.FPS, "fps", 60, "Frames processed per second.")
	fs.BoolVar(&s.Bag, "bag", false, "Deal pieces from a shuffled bag of seven instead of uniformly.")
	fs.BoolVar(&s.Mute, "mute", false, "Disable sound.")
	fs.BoolVar(&s.Debug, "debug", false, "Log every lock and status change.")
	return s
}

// Check rejects values no game could start with.
func (s *Settings) Check() error {
	if s.FPS < 1 {
		return fmt.Errorf("fps must be at least 1, got %d", s.FPS)
	}

	cfg := tetris.New(s.GameOptions()...).Config()
	return cfg.Validate()
}

// FrameInterval is the time between frames at the configured rate.
func (s *Settings) FrameInterval() time.Duration {
	if s.FPS < 1 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.FPS)
}

// Randomizer builds the piece source the flags ask for.
func (s *Settings) Randomizer() tetris.Randomizer {
	seed := s.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	if s.Bag {
		return tetris.NewBagRandomizer(seed)
	}
	return tetris.NewUniformRandomizer(seed)
}

// GameOptions turns the settings into engine options. Extra options are
// applied last.
func (s *Settings) GameOptions(extra ...tetris.Option) []tetris.Option {
	opts := []tetris.Option{
		tetris.WithSize(s.Width, s.Height),
		tetris.WithStartLevel(s.Level),
		tetris.WithRandomizer(s.Randomizer()),
	}
	return append(opts, extra...)
}
