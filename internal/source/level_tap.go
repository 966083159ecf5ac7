// Package source derives a live measure in [0, 1] from audio playback, so a
// gauge can be bound to something that changes while it is on screen.
package source

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// LevelTap wraps a beep.Streamer and records the last samples it passed
// through in a ring buffer. Level reads from the buffer concurrently with
// playback.
type LevelTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	filled    int
	mu        sync.RWMutex

	smoothing float64
	level     float64
}

// NewLevelTap returns a tap over src that keeps ringSize samples.
// smoothing in [0, 1) weights the previous level against the new reading.
func NewLevelTap(src beep.Streamer, ringSize int, smoothing float64) *LevelTap {
	if ringSize < 1 {
		ringSize = 1
	}
	return &LevelTap{
		Source:    src,
		buffer:    make([][2]float64, ringSize),
		smoothing: math.Min(math.Max(smoothing, 0), 0.99),
	}
}

// Stream implements beep.Streamer.
func (t *LevelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.filled = min(t.filled+n, len(t.buffer))
		t.mu.Unlock()
	}
	return n, ok
}

// Err implements beep.Streamer.
func (t *LevelTap) Err() error { return t.Source.Err() }

// Snapshot returns up to the last n samples, oldest first.
func (t *LevelTap) Snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = max(0, min(n, t.filled))
	out := make([][2]float64, n)
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// Level returns the smoothed loudness of the last n samples in [0, 1].
// The RMS of the mono mix is compressed so quiet passages still move the
// gauge. Level is meant to be polled once per frame.
func (t *LevelTap) Level(n int) float64 {
	samples := t.Snapshot(n)
	reading := 0.0
	if len(samples) > 0 {
		reading = compress(rms(samples))
	}
	t.level = t.smoothing*t.level + (1-t.smoothing)*reading
	return t.level
}

func rms(samples [][2]float64) float64 {
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	return math.Sqrt(sumSquares / float64(len(samples)))
}

func compress(v float64) float64 {
	return clamp01(math.Pow(v, 0.3))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
