package audio

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"
)

// bytesPerFrame is 16-bit stereo.
const bytesPerFrame = 4

// SynthPop renders a short noise burst with a fast decay.
func SynthPop() []byte {
	rnd := rand.New(rand.NewPCG(7, 11))
	return render(120*time.Millisecond, func(t, progress float64) float32 {
		env := math.Exp(-progress * 8)
		noise := rnd.Float64()*2 - 1
		thump := math.Sin(2 * math.Pi * 90 * t)
		return float32((0.7*noise + 0.3*thump) * env * 0.8)
	})
}

// SynthPump renders a short rising whoosh.
func SynthPump() []byte {
	return render(200*time.Millisecond, func(t, progress float64) float32 {
		env := math.Sin(math.Pi * progress)
		freq := 180 + 240*progress
		return float32(math.Sin(2*math.Pi*freq*t) * env * 0.4)
	})
}

// render fills a 16-bit stereo buffer from a mono generator.
// The generator receives the time in seconds and the progress in [0, 1).
func render(d time.Duration, gen func(t, progress float64) float32) []byte {
	frames := int(d.Seconds() * SampleRate)
	buf := make([]byte, frames*bytesPerFrame)
	for i := 0; i < frames; i++ {
		t := float64(i) / SampleRate
		v := int16(clamp(gen(t, float64(i)/float64(frames)), -1, 1) * 32767)
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame+2:], uint16(v))
	}
	return buf
}

// clamp restricts a value to the range [min, max].
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
