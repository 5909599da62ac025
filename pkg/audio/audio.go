// Package audio plays the game's sound effects and optional background music.
// This file implements the SoundBoard that mixes short clips using Ebitengine/audio.
package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/zurustar/balloon-pump/pkg/logger"
)

// SampleRate is the audio sample rate used for every clip and for MIDI synthesis.
const SampleRate = 44100

// Clip names.
const (
	ClipPop  = "pop"
	ClipPump = "pump"
)

// ClipSource reads raw sound files by name (see assets.Loader.LoadSound).
type ClipSource interface {
	LoadSound(name string) ([]byte, error)
}

// SoundBoard plays named PCM clips. Ebitengine/audio mixes simultaneous players.
//
// A SoundBoard without an audio context (headless mode) still counts plays
// but never produces sound.
type SoundBoard struct {
	audioCtx *audio.Context
	clips    map[string][]byte // 16-bit little-endian stereo PCM at SampleRate
	players  []*audio.Player
	plays    map[string]int
	muted    bool
	log      *slog.Logger
	mu       sync.Mutex
}

// NewSoundBoard creates a SoundBoard. audioCtx may be nil.
func NewSoundBoard(audioCtx *audio.Context) *SoundBoard {
	return &SoundBoard{
		audioCtx: audioCtx,
		clips:    make(map[string][]byte),
		plays:    make(map[string]int),
		log:      logger.Component("audio"),
	}
}

// LoadClips loads pop and pump clips from src, synthesizing any that are missing
// or cannot be decoded.
func (sb *SoundBoard) LoadClips(src ClipSource) {
	synth := map[string]func() []byte{
		ClipPop:  SynthPop,
		ClipPump: SynthPump,
	}
	for name, gen := range synth {
		if src != nil {
			err := sb.loadFrom(src, name)
			if err == nil {
				sb.log.Debug("Clip loaded", "name", name)
				continue
			}
			if !errors.Is(err, fs.ErrNotExist) {
				sb.log.Warn("Clip unusable, synthesizing", "name", name, "error", err)
			}
		}
		sb.SetClip(name, gen())
	}
}

func (sb *SoundBoard) loadFrom(src ClipSource, name string) error {
	data, err := src.LoadSound(name)
	if err != nil {
		return err
	}
	return sb.LoadWAV(name, data)
}

// LoadWAV decodes a WAV file and registers it under name.
func (sb *SoundBoard) LoadWAV(name string, data []byte) error {
	pcm, err := DecodeWAV(data)
	if err != nil {
		return err
	}
	sb.SetClip(name, pcm)
	return nil
}

// SetClip registers raw PCM under name.
func (sb *SoundBoard) SetClip(name string, pcm []byte) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.clips[name] = pcm
}

// HasClip reports whether a clip is registered.
func (sb *SoundBoard) HasClip(name string) bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	_, ok := sb.clips[name]
	return ok
}

// PlayPop plays the balloon pop sound.
func (sb *SoundBoard) PlayPop() {
	if err := sb.Play(ClipPop); err != nil {
		sb.log.Warn("Failed to play clip", "name", ClipPop, "error", err)
	}
}

// PlayPump plays the pump sound.
func (sb *SoundBoard) PlayPump() {
	if err := sb.Play(ClipPump); err != nil {
		sb.log.Warn("Failed to play clip", "name", ClipPump, "error", err)
	}
}

// Play starts the named clip.
func (sb *SoundBoard) Play(name string) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	pcm, ok := sb.clips[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrClipNotFound, name)
	}
	sb.plays[name]++

	if sb.audioCtx == nil || sb.muted {
		return nil
	}

	sb.cleanupFinishedPlayers()
	player := sb.audioCtx.NewPlayerFromBytes(pcm)
	player.Play()
	sb.players = append(sb.players, player)
	return nil
}

// Plays returns how many times the named clip was requested.
func (sb *SoundBoard) Plays(name string) int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.plays[name]
}

// SetMuted mutes or unmutes current and future playback.
func (sb *SoundBoard) SetMuted(muted bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.muted = muted
	for _, player := range sb.players {
		if muted {
			player.SetVolume(0)
		} else {
			player.SetVolume(1)
		}
	}
}

// IsMuted returns whether the board is muted.
func (sb *SoundBoard) IsMuted() bool {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.muted
}

// Update is called from the game loop to release finished players.
func (sb *SoundBoard) Update() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cleanupFinishedPlayers()
}

// StopAll stops every active clip.
func (sb *SoundBoard) StopAll() {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	for _, player := range sb.players {
		player.Close()
	}
	sb.players = nil
}

// cleanupFinishedPlayers must be called with sb.mu held.
func (sb *SoundBoard) cleanupFinishedPlayers() {
	active := sb.players[:0]
	for _, player := range sb.players {
		if player.IsPlaying() {
			active = append(active, player)
		} else {
			player.Close()
		}
	}
	sb.players = active
}
