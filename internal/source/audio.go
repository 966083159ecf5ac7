package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/wav"
)

// Patterns lists the file patterns OpenAudio can decode.
var Patterns = []string{"*.wav", "*.mp3", "*.flac"}

// UnsupportedError reports a file type OpenAudio cannot decode.
type UnsupportedError struct {
	Ext string
}

func (e *UnsupportedError) Error() string {
	return "unsupported audio file type: " + e.Ext
}

// OpenAudio decodes path by its extension. Closing the streamer closes the
// file.
func OpenAudio(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, &UnsupportedError{Ext: filepath.Ext(path)}
	}
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return streamer, format, nil
}

// Duration returns the playing time of s.
func Duration(s beep.StreamSeeker, format beep.Format) time.Duration {
	return format.SampleRate.D(s.Len())
}

// FormatDuration formats d as MM:SS.
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
