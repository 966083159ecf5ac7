package preview

import (
	"path/filepath"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/kpi-donut/internal/config"
	"github.com/iburimskiy/kpi-donut/internal/gauge"
	"github.com/iburimskiy/kpi-donut/internal/source"
)

// loadAndPlay starts path and binds the gauge to its level.
func (h *host) loadAndPlay(path string) error {
	streamer, format, err := source.OpenAudio(path)
	if err != nil {
		return err
	}

	// streamer -> tap -> ctrl
	tap := source.NewLevelTap(streamer, config.VisualRingSize, config.SmoothingFactor)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: false}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !h.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return err
		}
		h.initDone = true
	case h.format.SampleRate != format.SampleRate:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return err
		}
	default:
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	h.closeStreamer()

	h.streamer = streamer
	h.format = format
	h.ctrl = ctrl
	h.tap = tap
	h.paused = false
	h.duration = source.Duration(streamer, format)
	h.started = time.Now()
	h.audioName = filepath.Base(path)
	h.bound = true
	if h.name == "" {
		h.name = "Level"
	}

	speaker.Play(beep.Seq(ctrl, beep.Callback(h.watchFinished())))
	gauge.Logger().Info("preview: playing", "path", path, "duration", h.duration)
	return nil
}

// watchFinished gives the next track its own finished channel, so a signal
// left behind by an earlier track cannot stop it. The returned callback
// never blocks the speaker goroutine.
func (h *host) watchFinished() func() {
	done := make(chan struct{}, 1)
	h.finished = done
	return func() {
		select {
		case done <- struct{}{}:
		default:
		}
	}
}

// trackFinished reports whether the current track has played to its end.
func (h *host) trackFinished() bool {
	select {
	case <-h.finished:
		return true
	default:
		return false
	}
}

// stopAudio stops playback and unbinds the level.
func (h *host) stopAudio() {
	if h.initDone {
		speaker.Lock()
		speaker.Clear()
		speaker.Unlock()
	}
	h.closeStreamer()
	h.ctrl = nil
	h.tap = nil
	h.paused = false
}

func (h *host) closeStreamer() {
	if h.streamer != nil {
		_ = h.streamer.Close()
		h.streamer = nil
	}
}

func (h *host) togglePause() {
	if h.ctrl == nil {
		return
	}
	speaker.Lock()
	h.paused = !h.paused
	h.ctrl.Paused = h.paused
	speaker.Unlock()
}
