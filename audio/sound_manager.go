// Package audio plays soft cues for game events. It is a tetris.Listener, so
// a host registers it with tetris.WithListener and never calls it directly.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/calmtris/tetris"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Cue is a sound the manager knows how to play.
type Cue int

const (
	CueNone Cue = iota
	CueLock
	CueSingle
	CueDouble
	CueTriple
	CueTetris
	CueLevelUp
	CueGameOver
)

// notes are the pentatonic steps the cues are built from, in Hz.
var notes = [...]float64{261.63, 293.66, 329.63, 392.00, 440.00, 523.25, 587.33, 659.25}

// LockCue picks the cue for a lock event. A level up wins over the line
// clear that caused it.
func LockCue(ev tetris.LockEvent) Cue {
	if ev.LevelUp {
		return CueLevelUp
	}
	switch ev.Lines {
	case 0:
		return CueLock
	case 1:
		return CueSingle
	case 2:
		return CueDouble
	case 3:
		return CueTriple
	default:
		return CueTetris
	}
}

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	paused      bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	sm.initialized = false
}

// SetMuted turns every cue off or back on.
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Muted reports whether cues are suppressed.
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Play queues cue on the mixer. It does nothing before Initialize, while
// muted, or while the game is paused.
func (sm *SoundManager) Play(cue Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || sm.paused {
		return
	}

	streamer := CueStreamer(cue)
	if streamer == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

func (sm *SoundManager) OnLock(ev tetris.LockEvent) {
	sm.Play(LockCue(ev))
}

func (sm *SoundManager) OnGameOver(tetris.Stats) {
	sm.Play(CueGameOver)
}

// OnStatusChange silences whatever is still ringing when the game pauses.
func (sm *SoundManager) OnStatusChange(_, to tetris.Status) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.paused = to == tetris.StatusPaused
	if sm.paused && sm.initialized {
		speaker.Lock()
		sm.mixer.Clear()
		speaker.Unlock()
	}
}

// CueStreamer builds the finite stream for cue, or nil for CueNone.
func CueStreamer(cue Cue) beep.Streamer {
	const step = 90 * time.Millisecond

	switch cue {
	case CueLock:
		return chime(sampleRate, 120*time.Millisecond, 0.12, notes[0]/2)
	case CueSingle:
		return chime(sampleRate, 400*time.Millisecond, 0.18, notes[2])
	case CueDouble:
		return arpeggio(step, notes[2], notes[4])
	case CueTriple:
		return arpeggio(step, notes[2], notes[4], notes[5])
	case CueTetris:
		return arpeggio(step, notes[2], notes[4], notes[5], notes[7])
	case CueLevelUp:
		return arpeggio(step, notes[0], notes[2], notes[4], notes[5], notes[7])
	case CueGameOver:
		return arpeggio(2*step, notes[5], notes[3], notes[1], notes[0]/2)
	default:
		return nil
	}
}

func arpeggio(step time.Duration, freqs ...float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(freqs))
	for i, f := range freqs {
		// The last note rings out.
		d := step
		if i == len(freqs)-1 {
			d = 4 * step
		}
		parts = append(parts, chime(sampleRate, d, 0.16, f))
	}
	return beep.Seq(parts...)
}

func chime(sr beep.SampleRate, d time.Duration, amplitude, freq float64) beep.Streamer {
	return beep.Take(sr.N(d), NewChimeGenerator(sr, freq, amplitude, d))
}

// ChimeGenerator generates a soft bell: a sine with a quiet octave and an
// exponential fade over its duration.
type ChimeGenerator struct {
	sr        beep.SampleRate
	freq      float64
	amplitude float64
	decay     float64
	pos       int
}

// NewChimeGenerator creates a chime that fades to about 1% over d.
func NewChimeGenerator(sr beep.SampleRate, freq, amplitude float64, d time.Duration) *ChimeGenerator {
	return &ChimeGenerator{
		sr:        sr,
		freq:      freq,
		amplitude: amplitude,
		decay:     math.Log(100) / d.Seconds(),
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Short attack to avoid clicks
		attack := math.Min(t/0.005, 1.0)
		envelope := attack * math.Exp(-t*g.decay)

		sample := math.Sin(2*math.Pi*g.freq*t) + 0.3*math.Sin(2*math.Pi*g.freq*2*t)
		sample *= g.amplitude * envelope / 1.3

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
