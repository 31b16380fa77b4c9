package speech

import "bytes"

// silentMP3 returns n MPEG-1 Layer III frames (128 kbps, 44.1 kHz, no CRC) of silence.
func silentMP3(n int) []byte {
	frame := make([]byte, 417)
	copy(frame, []byte{0xFF, 0xFB, 0x90, 0x04})
	return bytes.Repeat(frame, n)
}
