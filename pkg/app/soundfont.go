package app

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zurustar/balloon-pump/pkg/audio"
	"github.com/zurustar/balloon-pump/pkg/fileutil"
)

// SoundFontLocation represents the location of a SoundFont file.
type SoundFontLocation struct {
	// Path is the path to the SoundFont file
	Path string
	// FileSystem is the FileSystem to use for loading (nil for external files)
	FileSystem fileutil.FileSystem
	// IsEmbedded indicates whether the SoundFont is embedded
	IsEmbedded bool
}

// Location returns the location in the form the audio package reads.
func (l *SoundFontLocation) Location() audio.Location {
	return audio.Location{FS: l.FileSystem, Path: l.Path}
}

// DefaultSoundFontName is the default SoundFont filename to search for.
const DefaultSoundFontName = "GeneralUser-GS.sf2"

// findSoundFont searches for a SoundFont file in the following order:
// 1. Embedded soundfonts directory
// 2. Embedded assets directory
// 3. Current directory (external)
// 4. Asset directory (external)
//
// Returns nil if no SoundFont is found.
func findSoundFont(embedFS fs.FS, assetDir string) *SoundFontLocation {
	if embedFS != nil {
		for _, dir := range []string{"soundfonts", embeddedAssetDir} {
			if data, err := fs.ReadFile(embedFS, dir+"/"+DefaultSoundFontName); err == nil && len(data) > 0 {
				return &SoundFontLocation{
					Path:       DefaultSoundFontName, // FileSystemのベースパスがdirなので、ファイル名だけ
					FileSystem: fileutil.NewEmbedFS(embedFS, dir),
					IsEmbedded: true,
				}
			}
		}
	}

	if _, err := os.Stat(DefaultSoundFontName); err == nil {
		return &SoundFontLocation{
			Path:       DefaultSoundFontName,
			FileSystem: nil,
			IsEmbedded: false,
		}
	}

	if assetDir != "" {
		sfPath := filepath.Join(assetDir, DefaultSoundFontName)
		if _, err := os.Stat(sfPath); err == nil {
			return &SoundFontLocation{
				Path:       sfPath,
				FileSystem: nil,
				IsEmbedded: false,
			}
		}
	}

	return nil
}
