package scene

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// HUDの描画設定
const (
	hudX          = 8
	hudY          = 8
	hudLineHeight = 16
	hudPadding    = 6
	hudWidth      = 220
)

var (
	hudFace      = text.NewGoXFace(basicfont.Face7x13)
	hudTextColor = color.White
	hudBgColor   = color.RGBA{0, 0, 0, 160}
)

// HUD はデバッグ用の集計表示
type HUD struct{}

// NewHUD はHUDを作成する
func NewHUD() *HUD {
	return &HUD{}
}

// Lines は表示する行を返す
func (h *HUD) Lines(st Stats) []string {
	return []string{
		fmt.Sprintf("frame   %d (%.1fs)", st.Frames, st.Elapsed.Seconds()),
		fmt.Sprintf("pool    %d (flying %d)", st.Live, st.Flying),
		fmt.Sprintf("created %d launched %d", st.Balloons.Created, st.Balloons.Launched),
		fmt.Sprintf("popped  %d (taps %d)", st.Balloons.Popped, st.Taps),
		fmt.Sprintf("pumps   %d ignored %d", st.Pumps, st.Balloons.Ignored),
		fmt.Sprintf("sprites %d particles %d", st.Sprites, st.Particles),
		fmt.Sprintf("next    skin %d letter %c", st.NextSkin, 'A'+rune(st.NextLetter-1)),
	}
}

// Draw は画面左上に集計を描画する
func (h *HUD) Draw(screen *ebiten.Image, st Stats) {
	lines := h.Lines(st)
	height := float32(len(lines)*hudLineHeight + hudPadding*2)
	vector.FillRect(screen, hudX, hudY, hudWidth, height, hudBgColor, false)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(hudX+hudPadding, float64(hudY+hudPadding+i*hudLineHeight))
		op.ColorScale.ScaleWithColor(hudTextColor)
		text.Draw(screen, line, hudFace, op)
	}
}
