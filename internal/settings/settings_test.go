package settings

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/calmtris/tetris"
)

func parse(t *testing.T, args ...string) *Settings {
	t.Helper()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	s := Register(fs)
	require.NoError(t, fs.Parse(args))
	return s
}

func TestDefaults(t *testing.T) {
	s := parse(t)

	assert.Equal(t, tetris.DefaultWidth, s.Width)
	assert.Equal(t, tetris.DefaultHeight, s.Height)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 60, s.FPS)
	assert.False(t, s.Bag)
	assert.False(t, s.Mute)
	assert.False(t, s.Debug)
	assert.NoError(t, s.Check())
	assert.Equal(t, time.Second/60, s.FrameInterval())
}

func TestGameOptions(t *testing.T) {
	s := parse(t, "-width", "8", "-height", "12", "-level", "3", "-seed", "42")

	g := tetris.New(s.GameOptions()...)
	cfg := g.Config()
	assert.Equal(t, 8, cfg.Width)
	assert.Equal(t, 12, cfg.Height)
	assert.Equal(t, 3, cfg.StartLevel)

	require.NoError(t, g.StartGame())
	assert.Equal(t, 3, g.Stats().Level)
	assert.Equal(t, tetris.DefaultSpeedCurve(3), g.DropInterval())
}

func TestSeededRandomizerRepeats(t *testing.T) {
	for _, bag := range []string{"false", "true"} {
		a := parse(t, "-seed", "7", "-bag="+bag).Randomizer()
		b := parse(t, "-seed", "7", "-bag="+bag).Randomizer()

		for range 50 {
			require.Equal(t, a.Next(), b.Next())
		}
	}

	_, ok := parse(t, "-bag").Randomizer().(*tetris.BagRandomizer)
	assert.True(t, ok)
	_, ok = parse(t).Randomizer().(*tetris.UniformRandomizer)
	assert.True(t, ok)
}

func TestCheck(t *testing.T) {
	err := parse(t, "-width", "3").Check()
	assert.True(t, errors.Is(err, tetris.ErrInvalidConfig))

	err = parse(t, "-level", "0").Check()
	assert.True(t, errors.Is(err, tetris.ErrInvalidConfig))

	assert.Error(t, parse(t, "-fps", "0").Check())
}

func TestExtraOptionsWin(t *testing.T) {
	s := parse(t, "-width", "8")
	g := tetris.New(s.GameOptions(tetris.WithSize(5, 5))...)
	assert.Equal(t, 5, g.Config().Width)
}
