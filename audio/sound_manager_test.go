package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/calmtris/tetris"
)

var _ tetris.Listener = (*SoundManager)(nil)

func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()

	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			break
		}
		require.Less(t, len(out), int(sampleRate)*10, "stream never ends")
	}
	require.NoError(t, s.Err())
	return out
}

func TestLockCue(t *testing.T) {
	tests := []struct {
		name string
		ev   tetris.LockEvent
		want Cue
	}{
		{"plain lock", tetris.LockEvent{}, CueLock},
		{"single", tetris.LockEvent{Lines: 1}, CueSingle},
		{"double", tetris.LockEvent{Lines: 2}, CueDouble},
		{"triple", tetris.LockEvent{Lines: 3}, CueTriple},
		{"tetris", tetris.LockEvent{Lines: 4}, CueTetris},
		{"level up", tetris.LockEvent{Lines: 2, LevelUp: true}, CueLevelUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LockCue(tt.ev))
		})
	}
}

func TestCueStreamer(t *testing.T) {
	assert.Nil(t, CueStreamer(CueNone))

	lengths := map[Cue]int{}
	for _, cue := range []Cue{CueLock, CueSingle, CueDouble, CueTriple, CueTetris, CueLevelUp, CueGameOver} {
		s := CueStreamer(cue)
		require.NotNil(t, s, "cue %d", cue)

		samples := drain(t, s)
		require.NotEmpty(t, samples)
		lengths[cue] = len(samples)

		for _, smp := range samples {
			assert.LessOrEqual(t, math.Abs(smp[0]), 1.0)
			assert.Equal(t, smp[0], smp[1], "cues are mono")
		}
	}

	assert.Equal(t, sampleRate.N(120*time.Millisecond), lengths[CueLock])
	assert.Less(t, lengths[CueDouble], lengths[CueTetris], "bigger clears ring longer")
}

func TestChimeGeneratorFades(t *testing.T) {
	d := 200 * time.Millisecond
	g := NewChimeGenerator(sampleRate, 440, 0.5, d)

	samples := drain(t, beep.Take(sampleRate.N(d), g))

	peak := func(from, to int) float64 {
		var p float64
		for _, s := range samples[from:to] {
			p = math.Max(p, math.Abs(s[0]))
		}
		return p
	}

	n := len(samples)
	assert.Zero(t, samples[0][0], "starts silent")
	assert.Greater(t, peak(0, n/4), 4*peak(3*n/4, n))
	assert.LessOrEqual(t, peak(0, n), 0.5)
}

func TestSoundManagerWithoutSpeaker(t *testing.T) {
	sm := NewSoundManager()

	assert.NotPanics(t, func() {
		sm.Play(CueTetris)
		sm.OnLock(tetris.LockEvent{Lines: 4})
		sm.OnGameOver(tetris.Stats{})
		sm.OnStatusChange(tetris.StatusPlaying, tetris.StatusPaused)
		sm.Cleanup()
	})
	assert.Zero(t, sm.mixer.Len())
}

func TestSoundManagerPauseAndMute(t *testing.T) {
	sm := NewSoundManager()

	sm.SetMuted(true)
	assert.True(t, sm.Muted())
	sm.SetMuted(false)
	assert.False(t, sm.Muted())

	sm.OnStatusChange(tetris.StatusPlaying, tetris.StatusPaused)
	assert.True(t, sm.paused)
	sm.OnStatusChange(tetris.StatusPaused, tetris.StatusPlaying)
	assert.False(t, sm.paused)
}
