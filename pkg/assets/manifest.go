// Package assets はアセットのキーとファイル名の対応、および画像・効果音の読み込みを扱う
package assets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/zurustar/balloon-pump/pkg/fileutil"
)

// 画像キー
const (
	KeyBackground = "background"
	KeyParticle   = "particle"
	KeyRope       = "rope"
	KeyPumpHandle = "pumpHandle"
	KeyPumpBody   = "pumpBody"
	KeyOutlet     = "outputHandle"
	KeyCloud      = "cloudImage"
)

// 効果音キー
const (
	SoundPop  = "pop"
	SoundPump = "pump"
)

// バルーンと文字の画像数
const (
	BalloonSkins = 10
	Letters      = 26
)

// ManifestFile はアセットディレクトリ内のマニフェストのファイル名
const ManifestFile = "manifest.json"

// BalloonKey はn番目（1始まり）のバルーン画像のキーを返す
func BalloonKey(n int) string {
	return fmt.Sprintf("balloon%d", n)
}

// LetterKey はn番目（1始まり）の文字画像のキーを返す
func LetterKey(n int) string {
	return fmt.Sprintf("letter%d", n)
}

// Manifest はキーとファイル名の対応表
type Manifest struct {
	Images map[string]string `json:"images"`
	Sounds map[string]string `json:"sounds"`
}

// DefaultManifest は元の素材のファイル名を使った対応表を返す
func DefaultManifest() Manifest {
	m := Manifest{
		Images: map[string]string{
			KeyBackground: "Symbol 3 copy.png",
			KeyParticle:   "star.png",
			KeyRope:       "Symbol 100011.png",
			KeyPumpHandle: "Symbol 320001.png",
			KeyPumpBody:   "Symbol 320003.png",
			KeyOutlet:     "Symbol 320002.png",
			KeyCloud:      "Symbol 27.png",
		},
		Sounds: map[string]string{
			SoundPop:  "pop.wav",
			SoundPump: "pump.wav",
		},
	}
	for i := 1; i <= BalloonSkins; i++ {
		// 1〜9は "10000i"、10は "1000i"
		number := fmt.Sprintf("10000%d", i)
		if i >= 10 {
			number = fmt.Sprintf("1000%d", i)
		}
		m.Images[BalloonKey(i)] = "Symbol " + number + ".png"
	}
	for i := 1; i <= Letters; i++ {
		number := fmt.Sprintf("1000%d", i)
		if i >= 10 {
			number = fmt.Sprintf("100%d", i)
		}
		m.Images[LetterKey(i)] = "Symbol " + number + ".png"
	}
	return m
}

// ImageKeys は画像キーを辞書順で返す
func (m Manifest) ImageKeys() []string {
	keys := make([]string, 0, len(m.Images))
	for k := range m.Images {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge はoverrideの内容で上書きする
// 既定の対応表にないキーはErrUnknownAssetになる
func (m Manifest) Merge(override Manifest) (Manifest, error) {
	out := Manifest{
		Images: make(map[string]string, len(m.Images)),
		Sounds: make(map[string]string, len(m.Sounds)),
	}
	for k, v := range m.Images {
		out.Images[k] = v
	}
	for k, v := range m.Sounds {
		out.Sounds[k] = v
	}
	for k, v := range override.Images {
		if _, ok := out.Images[k]; !ok {
			return Manifest{}, fmt.Errorf("%w: image %q", ErrUnknownAsset, k)
		}
		out.Images[k] = v
	}
	for k, v := range override.Sounds {
		if _, ok := out.Sounds[k]; !ok {
			return Manifest{}, fmt.Errorf("%w: sound %q", ErrUnknownAsset, k)
		}
		out.Sounds[k] = v
	}
	return out, nil
}

// LoadManifest は既定の対応表に、fsys内のmanifest.jsonの内容を重ねて返す
// manifest.jsonがなければ既定の対応表をそのまま返す
func LoadManifest(fsys fileutil.FileSystem) (Manifest, error) {
	base := DefaultManifest()
	data, err := fsys.ReadFile(ManifestFile)
	if errors.Is(err, fs.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	var override Manifest
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&override); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return base.Merge(override)
}
