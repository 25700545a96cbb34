// Package hostlog sets up structured logging for the calmtris hosts and turns
// game events into log lines.
package hostlog

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/plus3/calmtris/tetris"
)

// New returns a human readable logger writing to w.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Listener logs level ups and finished games at info, every status change
// and lock at debug.
func Listener(logger zerolog.Logger) tetris.Listener {
	return tetris.ListenerFuncs{
		Lock: func(ev tetris.LockEvent) {
			logger.Debug().
				Stringer("piece", ev.Piece).
				Int("x", ev.Position.X).
				Int("y", ev.Position.Y).
				Int("lines", ev.Lines).
				Int("score_delta", ev.ScoreDelta).
				Msg("piece locked")

			if ev.LevelUp {
				logger.Info().
					Int("game_level", ev.Stats.Level).
					Int("lines", ev.Stats.LinesCleared).
					Msg("level up")
			}
		},
		GameOver: func(final tetris.Stats) {
			logger.Info().
				Int("score", final.Score).
				Int("game_level", final.Level).
				Int("lines", final.LinesCleared).
				Msg("game over")
		},
		StatusChange: func(from, to tetris.Status) {
			logger.Debug().
				Stringer("from", from).
				Stringer("to", to).
				Msg("status changed")
		},
	}
}
