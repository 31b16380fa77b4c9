package speech

import (
	"bytes"
	"fmt"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

// AudioDuration — длительность mp3 по числу фреймов, без декодирования всего потока
func AudioDuration(audio []byte) (time.Duration, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(audio))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotMP3, err)
	}
	if dec.Length() < 0 || dec.SampleRate() == 0 {
		return 0, fmt.Errorf("%w: unknown length", ErrNotMP3)
	}

	// decoder output is always 16-bit stereo: 4 bytes per sample
	samples := dec.Length() / 4
	return time.Duration(samples) * time.Second / time.Duration(dec.SampleRate()), nil
}
