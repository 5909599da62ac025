package sprite

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Texture はデコード済みの画像と、それから遅延生成されるGPU画像の組
// サイズはデコード済み画像から求めるため、描画しないヘッドレス実行でも使える
type Texture struct {
	src image.Image
	img *ebiten.Image
}

// NewTexture はデコード済み画像からテクスチャを作成する
func NewTexture(src image.Image) *Texture {
	return &Texture{src: src}
}

// NewTextureFromImage は既存のebiten画像からテクスチャを作成する
func NewTextureFromImage(img *ebiten.Image) *Texture {
	return &Texture{src: img, img: img}
}

// Size は画像の幅と高さを返す
func (t *Texture) Size() (int, int) {
	if t == nil || t.src == nil {
		return 0, 0
	}
	b := t.src.Bounds()
	return b.Dx(), b.Dy()
}

// Source はデコード済み画像を返す
func (t *Texture) Source() image.Image {
	return t.src
}

// Image は描画用のebiten画像を返す（初回呼び出し時に生成する）
func (t *Texture) Image() *ebiten.Image {
	if t == nil || t.src == nil {
		return nil
	}
	if t.img == nil {
		t.img = ebiten.NewImageFromImage(t.src)
	}
	return t.img
}
