package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sinshu/go-meltysynth/meltysynth"
)

// MIDIStream implements io.Reader for Ebitengine/audio.
// It renders audio samples from the MIDI sequencer.
type MIDIStream struct {
	sequencer   *meltysynth.MidiFileSequencer
	sampleCount int64
	stopped     bool
	mu          sync.Mutex
}

// Read implements io.Reader. It renders samples from the sequencer and
// converts them to 16-bit interleaved stereo.
func (s *MIDIStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.sequencer == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	samples := len(p) / bytesPerFrame
	if samples == 0 {
		return 0, nil
	}

	left := make([]float32, samples)
	right := make([]float32, samples)
	s.sequencer.Render(left, right)
	s.sampleCount += int64(samples)

	for i := range samples {
		l := int16(clamp(left[i], -1, 1) * 32767)
		r := int16(clamp(right[i], -1, 1) * 32767)
		binary.LittleEndian.PutUint16(p[i*bytesPerFrame:], uint16(l))
		binary.LittleEndian.PutUint16(p[i*bytesPerFrame+2:], uint16(r))
	}

	return samples * bytesPerFrame, nil
}

// Stop makes Read return silence.
func (s *MIDIStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}

// SampleCount returns the total number of samples rendered.
func (s *MIDIStream) SampleCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sampleCount
}

// MusicPlayer loops a MIDI file as background music through a SoundFont.
type MusicPlayer struct {
	synth    *meltysynth.Synthesizer
	audioCtx *audio.Context
	stream   *MIDIStream
	player   *audio.Player
	muted    bool
	mu       sync.Mutex
}

// NewMusicPlayer parses the SoundFont and prepares a synthesizer.
func NewMusicPlayer(sf2Data []byte, audioCtx *audio.Context) (*MusicPlayer, error) {
	soundFont, err := meltysynth.NewSoundFont(bytes.NewReader(sf2Data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SoundFont: %w", err)
	}
	settings := meltysynth.NewSynthesizerSettings(SampleRate)
	synth, err := meltysynth.NewSynthesizer(soundFont, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesizer: %w", err)
	}
	return &MusicPlayer{synth: synth, audioCtx: audioCtx}, nil
}

// Play starts looping the MIDI data, replacing any current song.
func (mp *MusicPlayer) Play(midiData []byte) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	midi, err := meltysynth.NewMidiFile(bytes.NewReader(midiData))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMIDIInvalidFormat, err)
	}

	mp.stopInternal()

	sequencer := meltysynth.NewMidiFileSequencer(mp.synth)
	sequencer.Play(midi, true)
	mp.stream = &MIDIStream{sequencer: sequencer}

	if mp.audioCtx == nil {
		return nil
	}
	player, err := mp.audioCtx.NewPlayer(mp.stream)
	if err != nil {
		return fmt.Errorf("failed to create audio player: %w", err)
	}
	if mp.muted {
		player.SetVolume(0)
	}
	player.Play()
	mp.player = player
	return nil
}

// Stop stops the music.
func (mp *MusicPlayer) Stop() {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.stopInternal()
}

func (mp *MusicPlayer) stopInternal() {
	if mp.stream != nil {
		mp.stream.Stop()
		mp.stream = nil
	}
	if mp.player != nil {
		mp.player.Close()
		mp.player = nil
	}
}

// IsPlaying reports whether a song is loaded.
func (mp *MusicPlayer) IsPlaying() bool {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	return mp.stream != nil
}

// SetMuted mutes or unmutes the music.
func (mp *MusicPlayer) SetMuted(muted bool) {
	mp.mu.Lock()
	defer mp.mu.Unlock()
	mp.muted = muted
	if mp.player != nil {
		if muted {
			mp.player.SetVolume(0)
		} else {
			mp.player.SetVolume(1)
		}
	}
}
