package sprite

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// デバッグオーバーレイの色定義
var (
	debugBgColor          = color.RGBA{0, 0, 0, 180}   // 半透明黒
	debugBoundingBoxColor = color.RGBA{0, 255, 0, 255} // 緑
	debugOriginColor      = color.RGBA{255, 0, 0, 255} // 赤（原点）
)

// デバッグオーバーレイの定数
const (
	debugLabelCharWidth  = 6  // ebitenutil.DebugPrintAtの文字幅
	debugLabelCharHeight = 16 // ebitenutil.DebugPrintAtの文字高さ
	debugLabelPadding    = 2  // ラベルのパディング
	debugBoundingBoxLine = 1  // バウンディングボックスの線幅
	debugOriginSize      = 3  // 原点マーカーの大きさ
)

// DebugOverlayOptions はデバッグオーバーレイの表示オプション
type DebugOverlayOptions struct {
	ShowSpriteInfo    bool // スプライト情報（ID、位置）を表示
	ShowBoundingBoxes bool // 表示矩形を表示
	ShowOrigins       bool // 原点を表示
}

// DefaultDebugOverlayOptions はデフォルトのデバッグオーバーレイオプションを返す
func DefaultDebugOverlayOptions() DebugOverlayOptions {
	return DebugOverlayOptions{
		ShowSpriteInfo:    false,
		ShowBoundingBoxes: true,
		ShowOrigins:       true,
	}
}

// DebugOverlay はスプライトの表示矩形と原点を重ねて描画する
type DebugOverlay struct {
	enabled bool
	options DebugOverlayOptions
}

// NewDebugOverlay は新しいDebugOverlayを作成する
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{
		options: DefaultDebugOverlayOptions(),
	}
}

// SetEnabled はデバッグオーバーレイの有効/無効を設定する
func (do *DebugOverlay) SetEnabled(enabled bool) {
	do.enabled = enabled
}

// IsEnabled はデバッグオーバーレイが有効かどうかを返す
func (do *DebugOverlay) IsEnabled() bool {
	return do.enabled
}

// SetOptions はデバッグオーバーレイのオプションを設定する
func (do *DebugOverlay) SetOptions(options DebugOverlayOptions) {
	do.options = options
}

// GetOptions はデバッグオーバーレイのオプションを取得する
func (do *DebugOverlay) GetOptions() DebugOverlayOptions {
	return do.options
}

// Draw は可視スプライトのデバッグ情報を描画する
func (do *DebugOverlay) Draw(screen *ebiten.Image, sm *SpriteManager) {
	if !do.enabled {
		return
	}
	for _, s := range sm.DrawOrder() {
		if !s.visible {
			continue
		}
		if do.options.ShowBoundingBoxes {
			do.drawBoundingBox(screen, s.Bounds())
		}
		if do.options.ShowOrigins {
			x, y := s.Position()
			vector.FillRect(screen, float32(x)-debugOriginSize/2, float32(y)-debugOriginSize/2,
				debugOriginSize, debugOriginSize, debugOriginColor, false)
		}
		if do.options.ShowSpriteInfo {
			do.drawSpriteInfo(screen, s)
		}
	}
}

// drawBoundingBox は矩形の枠線を描画する
func (do *DebugOverlay) drawBoundingBox(screen *ebiten.Image, r Rect) {
	x, y := float32(r.X), float32(r.Y)
	w, h := float32(r.W), float32(r.H)
	lw := float32(debugBoundingBoxLine)

	vector.FillRect(screen, x, y, w, lw, debugBoundingBoxColor, false)
	vector.FillRect(screen, x, y+h-lw, w, lw, debugBoundingBoxColor, false)
	vector.FillRect(screen, x, y, lw, h, debugBoundingBoxColor, false)
	vector.FillRect(screen, x+w-lw, y, lw, h, debugBoundingBoxColor, false)
}

// drawSpriteInfo はスプライト情報のラベルを描画する
func (do *DebugOverlay) drawSpriteInfo(screen *ebiten.Image, s *Sprite) {
	label := fmt.Sprintf("S%d d%d x%.2f", s.id, s.depth, s.scale)
	b := s.Bounds()

	bgX := float32(b.X) - debugLabelPadding
	bgY := float32(b.Y) - debugLabelPadding
	bgW := float32(len(label)*debugLabelCharWidth + debugLabelPadding*2)
	bgH := float32(debugLabelCharHeight + debugLabelPadding*2)
	vector.FillRect(screen, bgX, bgY, bgW, bgH, debugBgColor, false)

	// ebitenutil.DebugPrintAtは白色固定
	ebitenutil.DebugPrintAt(screen, label, int(b.X), int(b.Y))
}
