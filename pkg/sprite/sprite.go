// Package sprite provides display objects with origin, scale and depth ordering.
package sprite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Rect は表示矩形（ワールド座標）
type Rect struct {
	X, Y, W, H float64
}

// Contains は点が矩形の内側（境界を含む）にあるかを返す
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Sprite は画面に表示される1枚の画像
//
// 位置は原点（origin）の位置を表す。原点は画像内の相対位置で、
// (0.5, 0.5)なら中心、(0.5, 0)なら上辺中央になる。
type Sprite struct {
	id      int
	texture *Texture
	x, y    float64
	ox, oy  float64
	scale   float64
	depth   int
	visible bool
	alpha   float64

	// 表示サイズの上書き（0なら画像サイズ×スケール）
	displayW, displayH float64

	destroyed bool
}

// NewSprite は新しいスプライトを作成する（原点は中心）
func NewSprite(id int, tex *Texture) *Sprite {
	return &Sprite{
		id:      id,
		texture: tex,
		ox:      0.5,
		oy:      0.5,
		scale:   1.0,
		visible: true,
		alpha:   1.0,
	}
}

// ID はスプライトのIDを返す
func (s *Sprite) ID() int {
	return s.id
}

// Texture はスプライトのテクスチャを返す
func (s *Sprite) Texture() *Texture {
	return s.texture
}

// Position はスプライトの位置を返す
func (s *Sprite) Position() (float64, float64) {
	return s.x, s.y
}

// SetPosition はスプライトの位置を設定する
func (s *Sprite) SetPosition(x, y float64) {
	s.x = x
	s.y = y
}

// Origin は原点を返す
func (s *Sprite) Origin() (float64, float64) {
	return s.ox, s.oy
}

// SetOrigin は原点を設定する
func (s *Sprite) SetOrigin(ox, oy float64) {
	s.ox = ox
	s.oy = oy
}

// Scale はスケールを返す
func (s *Sprite) Scale() float64 {
	return s.scale
}

// SetScale はスケールを設定する
// 表示サイズの上書きは解除される
func (s *Sprite) SetScale(scale float64) {
	s.scale = scale
	s.displayW, s.displayH = 0, 0
}

// SetDisplaySize は表示サイズを直接指定する（背景の全画面表示など）
func (s *Sprite) SetDisplaySize(w, h float64) {
	s.displayW, s.displayH = w, h
}

// Depth は描画の深度を返す（大きいほど手前）
func (s *Sprite) Depth() int {
	return s.depth
}

// SetDepth は描画の深度を設定する
func (s *Sprite) SetDepth(d int) {
	s.depth = d
}

// Visible はスプライトの可視性を返す
func (s *Sprite) Visible() bool {
	return s.visible
}

// SetVisible はスプライトの可視性を設定する
func (s *Sprite) SetVisible(v bool) {
	s.visible = v
}

// Alpha はスプライトの透明度を返す（0.0〜1.0）
func (s *Sprite) Alpha() float64 {
	return s.alpha
}

// SetAlpha はスプライトの透明度を設定する（0.0〜1.0）
func (s *Sprite) SetAlpha(a float64) {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	s.alpha = a
}

// Destroyed は削除済みかどうかを返す
func (s *Sprite) Destroyed() bool {
	return s.destroyed
}

// DisplaySize は画面上の幅と高さを返す
func (s *Sprite) DisplaySize() (float64, float64) {
	if s.displayW > 0 || s.displayH > 0 {
		return s.displayW, s.displayH
	}
	w, h := s.texture.Size()
	return float64(w) * s.scale, float64(h) * s.scale
}

// Bounds は原点とスケールを考慮した表示矩形を返す
func (s *Sprite) Bounds() Rect {
	w, h := s.DisplaySize()
	return Rect{
		X: s.x - w*s.ox,
		Y: s.y - h*s.oy,
		W: w,
		H: h,
	}
}

// Contains は点がスプライトの表示矩形内にあるかを返す
func (s *Sprite) Contains(x, y float64) bool {
	if s.destroyed {
		return false
	}
	return s.Bounds().Contains(x, y)
}

// ============================================================================
// SpriteManager（スプライト管理）
// ============================================================================

// SpriteManager はスプライトを管理する
// 描画順序は深度の昇順、同じ深度なら作成順
type SpriteManager struct {
	sprites []*Sprite // 作成順
	nextID  int
	overlay *DebugOverlay
}

// NewSpriteManager は新しいSpriteManagerを作成する
func NewSpriteManager() *SpriteManager {
	return &SpriteManager{
		sprites: make([]*Sprite, 0),
		nextID:  1,
		overlay: NewDebugOverlay(),
	}
}

// CreateSprite は(x, y)に新しいスプライトを作成する
func (sm *SpriteManager) CreateSprite(tex *Texture, x, y float64) *Sprite {
	s := NewSprite(sm.nextID, tex)
	s.SetPosition(x, y)
	sm.nextID++
	sm.sprites = append(sm.sprites, s)
	return s
}

// DeleteSprite はスプライトを削除する
// 既に削除済みの場合は何もしない
func (sm *SpriteManager) DeleteSprite(s *Sprite) {
	if s == nil || s.destroyed {
		return
	}
	for i, other := range sm.sprites {
		if other == s {
			sm.sprites = append(sm.sprites[:i], sm.sprites[i+1:]...)
			break
		}
	}
	s.destroyed = true
}

// Count は登録されているスプライトの数を返す
func (sm *SpriteManager) Count() int {
	return len(sm.sprites)
}

// DrawOrder は描画順に並べたスプライトを返す
func (sm *SpriteManager) DrawOrder() []*Sprite {
	ordered := make([]*Sprite, len(sm.sprites))
	copy(ordered, sm.sprites)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].depth < ordered[j].depth
	})
	return ordered
}

// Overlay はデバッグオーバーレイを返す
func (sm *SpriteManager) Overlay() *DebugOverlay {
	return sm.overlay
}

// ============================================================================
// 描画（Drawing）
// ============================================================================

// Draw はすべての可視スプライトを描画順に描画する
func (sm *SpriteManager) Draw(screen *ebiten.Image) {
	for _, s := range sm.DrawOrder() {
		if !s.visible || s.alpha <= 0 {
			continue
		}
		img := s.texture.Image()
		if img == nil {
			continue
		}
		tw, th := s.texture.Size()
		if tw == 0 || th == 0 {
			continue
		}
		dw, dh := s.DisplaySize()
		b := s.Bounds()

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(dw/float64(tw), dh/float64(th))
		op.GeoM.Translate(b.X, b.Y)
		if s.alpha < 1.0 {
			op.ColorScale.ScaleAlpha(float32(s.alpha))
		}
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}

	if sm.overlay.IsEnabled() {
		sm.overlay.Draw(screen, sm)
	}
}

// ============================================================================
// デバッグ支援（Debug Support）
// ============================================================================

// PrintDrawOrder は描画順序のリストを出力する
func (sm *SpriteManager) PrintDrawOrder() string {
	var sb strings.Builder
	sb.WriteString("Draw Order:\n")

	for i, s := range sm.DrawOrder() {
		visibility := "visible"
		if !s.visible {
			visibility = "hidden"
		}
		fmt.Fprintf(&sb, "  %d. Sprite %d depth=%d pos=(%.0f,%.0f) scale=%.2f (%s)\n",
			i+1, s.id, s.depth, s.x, s.y, s.scale, visibility)
	}

	return sb.String()
}
