package assets

import (
	"fmt"

	"github.com/zurustar/balloon-pump/pkg/sprite"
)

// Library は読み込み済みのテクスチャ一式
type Library struct {
	textures map[string]*sprite.Texture
	sources  map[string]Source
}

// LoadLibrary はマニフェストのすべての画像を読み込む
func LoadLibrary(l *Loader) (*Library, error) {
	lib := &Library{
		textures: make(map[string]*sprite.Texture),
		sources:  make(map[string]Source),
	}
	for _, key := range l.Manifest().ImageKeys() {
		img, src, err := l.Load(key)
		if err != nil {
			return nil, fmt.Errorf("failed to load asset %s: %w", key, err)
		}
		lib.textures[key] = sprite.NewTexture(img)
		lib.sources[key] = src
	}
	l.log.Info("Assets loaded", "total", len(lib.textures), "generated", lib.Count(Generated))
	return lib, nil
}

// Texture はキーに対応するテクスチャを返す（ない場合はnil）
func (lib *Library) Texture(key string) *sprite.Texture {
	return lib.textures[key]
}

// Balloon はn番目のバルーンのテクスチャを返す
func (lib *Library) Balloon(n int) *sprite.Texture {
	return lib.textures[BalloonKey(n)]
}

// Letter はn番目の文字のテクスチャを返す
func (lib *Library) Letter(n int) *sprite.Texture {
	return lib.textures[LetterKey(n)]
}

// Source はキーに対応する画像の出どころを返す
func (lib *Library) Source(key string) Source {
	return lib.sources[key]
}

// Count は指定した出どころの画像数を返す
func (lib *Library) Count(src Source) int {
	n := 0
	for _, s := range lib.sources {
		if s == src {
			n++
		}
	}
	return n
}

// Len は画像の総数を返す
func (lib *Library) Len() int {
	return len(lib.textures)
}
