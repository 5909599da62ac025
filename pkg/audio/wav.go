package audio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DecodeWAV decodes PCM WAV data (8 or 16 bit, mono or stereo, any rate) into
// 16-bit stereo PCM resampled to SampleRate.
func DecodeWAV(data []byte) ([]byte, error) {
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWAVInvalidFormat, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWAVInvalidFormat, err)
	}
	return pcm, nil
}
