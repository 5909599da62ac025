package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/zurustar/balloon-pump/pkg/fileutil"
)

// ReadSoundFontFS reads a SoundFont file through fsys, or from the real file
// system when fsys is nil.
func ReadSoundFontFS(fsys fileutil.FileSystem, path string) ([]byte, error) {
	return readFS(fsys, path, ErrSoundFontNotFound)
}

// ReadMIDIFS reads a MIDI file through fsys, or from the real file system
// when fsys is nil.
func ReadMIDIFS(fsys fileutil.FileSystem, path string) ([]byte, error) {
	return readFS(fsys, path, ErrMIDIFileNotFound)
}

func readFS(fsys fileutil.FileSystem, path string, notFound error) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if fsys == nil {
		data, err = os.ReadFile(path)
	} else {
		data, err = fsys.ReadFile(path)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", notFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Location names a file inside a FileSystem. A nil FS means the real file
// system.
type Location struct {
	FS   fileutil.FileSystem
	Path string
}

// LoadMusic reads the SoundFont and MIDI file and starts looping the song.
func LoadMusic(soundFont, song Location, audioCtx *audio.Context) (*MusicPlayer, error) {
	sf2, err := ReadSoundFontFS(soundFont.FS, soundFont.Path)
	if err != nil {
		return nil, err
	}
	midi, err := ReadMIDIFS(song.FS, song.Path)
	if err != nil {
		return nil, err
	}
	player, err := NewMusicPlayer(sf2, audioCtx)
	if err != nil {
		return nil, err
	}
	if err := player.Play(midi); err != nil {
		return nil, err
	}
	return player, nil
}
