package tetris

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20

	// MinWidth and MinHeight are the smallest fields that can hold the I
	// piece in either orientation.
	MinWidth  = 4
	MinHeight = 4
)

// ErrInvalidConfig is returned by StartGame when the game was configured with
// values it cannot play with.
var ErrInvalidConfig = errors.New("tetris: invalid config")

// SpeedCurve maps a level to the automatic drop interval.
type SpeedCurve func(level int) time.Duration

const (
	BaseDropInterval = 1000 * time.Millisecond
	MinDropInterval  = 100 * time.Millisecond
	DropIntervalStep = 100 * time.Millisecond
)

// DefaultSpeedCurve starts at one second on level 1 and gets 100ms faster per
// level, never going below 100ms.
func DefaultSpeedCurve(level int) time.Duration {
	interval := BaseDropInterval - time.Duration(level-1)*DropIntervalStep
	if interval < MinDropInterval {
		interval = MinDropInterval
	}
	return interval
}

// Config holds the settings a Game is created with.
type Config struct {
	Width      int
	Height     int
	StartLevel int
	SpeedCurve SpeedCurve
	Randomizer Randomizer
	Listener   Listener
}

// Option customizes a Game.
type Option func(*Config)

// WithSize sets the board dimensions.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithStartLevel sets the level a new game begins on.
func WithStartLevel(level int) Option {
	return func(c *Config) {
		c.StartLevel = level
	}
}

// WithSpeedCurve replaces the default drop interval curve.
func WithSpeedCurve(curve SpeedCurve) Option {
	return func(c *Config) {
		c.SpeedCurve = curve
	}
}

// WithRandomizer replaces the uniform piece randomizer.
func WithRandomizer(r Randomizer) Option {
	return func(c *Config) {
		c.Randomizer = r
	}
}

// WithListener registers the host's event listener.
func WithListener(l Listener) Option {
	return func(c *Config) {
		c.Listener = l
	}
}

func defaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		StartLevel: 1,
		SpeedCurve: DefaultSpeedCurve,
		Randomizer: NewUniformRandomizer(uint64(time.Now().UnixNano())),
	}
}

// Validate checks the config for values a game cannot start with.
func (c Config) Validate() error {
	if c.Width < MinWidth || c.Height < MinHeight {
		return fmt.Errorf("%w: board %dx%d is smaller than %dx%d", ErrInvalidConfig, c.Width, c.Height, MinWidth, MinHeight)
	}
	if c.StartLevel < 1 {
		return fmt.Errorf("%w: start level %d must be at least 1", ErrInvalidConfig, c.StartLevel)
	}
	if c.SpeedCurve == nil {
		return fmt.Errorf("%w: missing speed curve", ErrInvalidConfig)
	}
	if c.Randomizer == nil {
		return fmt.Errorf("%w: missing randomizer", ErrInvalidConfig)
	}
	return nil
}
