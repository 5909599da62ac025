package audio

import "errors"

var (
	// ErrClipNotFound is returned when playing a clip that was never registered.
	ErrClipNotFound = errors.New("clip not found")

	// ErrWAVInvalidFormat is returned when the WAV data cannot be decoded.
	ErrWAVInvalidFormat = errors.New("invalid WAV file format")

	// ErrSoundFontNotFound is returned when the SoundFont file cannot be found.
	ErrSoundFontNotFound = errors.New("SoundFont file not found")

	// ErrMIDIFileNotFound is returned when the MIDI file cannot be found.
	ErrMIDIFileNotFound = errors.New("MIDI file not found")

	// ErrMIDIInvalidFormat is returned when the MIDI file has an invalid format.
	ErrMIDIInvalidFormat = errors.New("invalid MIDI file format")
)
