package speech

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"
)

var ErrNotMP3 = errors.New("synthesized audio is not mp3")

// VerifyMP3 checks that audio starts with a decodable MP3 frame.
func VerifyMP3(audio []byte) error {
	if len(audio) == 0 {
		return fmt.Errorf("%w: empty body", ErrNotMP3)
	}
	// hide Seek so the decoder stops after the first frame instead of scanning the whole stream
	src := io.MultiReader(bytes.NewReader(audio))
	if _, err := mp3.NewDecoder(src); err != nil {
		return fmt.Errorf("%w: %v", ErrNotMP3, err)
	}
	return nil
}
