// Package artgen draws placeholder artwork for every asset the game needs,
// so the game is playable without any image files on disk.
//
// All functions are deterministic: the same arguments always produce the
// same pixels.
package artgen

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// Image sizes in pixels before any sprite scaling.
const (
	BalloonWidth  = 400
	BalloonHeight = 520
	LetterSize    = 220
	RopeWidth     = 40
	RopeHeight    = 300
	StarSize      = 64
)

// Palette holds one colour per balloon skin.
var Palette = [10]color.RGBA{
	{231, 76, 60, 255},   // red
	{241, 196, 15, 255},  // yellow
	{46, 204, 113, 255},  // green
	{52, 152, 219, 255},  // blue
	{155, 89, 182, 255},  // purple
	{230, 126, 34, 255},  // orange
	{26, 188, 156, 255},  // teal
	{236, 112, 160, 255}, // pink
	{149, 165, 166, 255}, // silver
	{52, 73, 94, 255},    // navy
}

var (
	fontOnce sync.Once
	fontTTF  *truetype.Font
	fontErr  error
)

func boldFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		fontTTF, fontErr = truetype.Parse(gobold.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("failed to parse font: %w", fontErr)
	}
	return truetype.NewFace(fontTTF, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// LetterRune returns the upper-case letter for a 1-based index (1 = 'A').
func LetterRune(n int) string {
	if n < 1 || n > 26 {
		return "?"
	}
	return string(rune('A' + n - 1))
}

// Balloon draws skin n (1..10) as a glossy balloon with a knot at the bottom.
func Balloon(n int) image.Image {
	c := Palette[(n-1+len(Palette))%len(Palette)]
	w, h := float64(BalloonWidth), float64(BalloonHeight)
	dc := gg.NewContext(BalloonWidth, BalloonHeight)

	cx, cy := w/2, h*0.45
	rx, ry := w*0.45, h*0.42

	// knot
	dc.MoveTo(cx-18, cy+ry+22)
	dc.LineTo(cx+18, cy+ry+22)
	dc.LineTo(cx, cy+ry-6)
	dc.ClosePath()
	dc.SetColor(shade(c, 0.75))
	dc.Fill()

	// body with a vertical gradient
	grad := gg.NewLinearGradient(cx, cy-ry, cx, cy+ry)
	grad.AddColorStop(0, tint(c, 0.35))
	grad.AddColorStop(0.6, c)
	grad.AddColorStop(1, shade(c, 0.7))
	dc.DrawEllipse(cx, cy, rx, ry)
	dc.SetFillStyle(grad)
	dc.Fill()

	dc.DrawEllipse(cx, cy, rx, ry)
	dc.SetLineWidth(4)
	dc.SetColor(shade(c, 0.6))
	dc.Stroke()

	// highlight
	dc.Push()
	dc.RotateAbout(gg.Radians(-30), cx-rx*0.45, cy-ry*0.5)
	dc.DrawEllipse(cx-rx*0.45, cy-ry*0.5, rx*0.16, ry*0.3)
	dc.SetRGBA(1, 1, 1, 0.55)
	dc.Fill()
	dc.Pop()

	return dc.Image()
}

// Letter draws letter n (1..26) as a white glyph with a dark outline.
func Letter(n int) (image.Image, error) {
	face, err := boldFace(LetterSize * 0.8)
	if err != nil {
		return nil, err
	}
	dc := gg.NewContext(LetterSize, LetterSize)
	dc.SetFontFace(face)

	s := LetterRune(n)
	x, y := float64(LetterSize)/2, float64(LetterSize)/2

	dc.SetRGBA(0, 0, 0, 0.6)
	for _, d := range [][2]float64{{-4, 0}, {4, 0}, {0, -4}, {0, 4}, {-3, -3}, {3, 3}, {-3, 3}, {3, -3}} {
		dc.DrawStringAnchored(s, x+d[0], y+d[1], 0.5, 0.35)
	}
	dc.SetRGB(1, 1, 1)
	dc.DrawStringAnchored(s, x, y, 0.5, 0.35)

	return dc.Image(), nil
}

// Rope draws a wavy string hanging from the top centre.
func Rope() image.Image {
	dc := gg.NewContext(RopeWidth, RopeHeight)
	cx := float64(RopeWidth) / 2
	dc.MoveTo(cx, 0)
	for y := 0.0; y <= RopeHeight; y += 4 {
		dc.LineTo(cx+math.Sin(y/28)*8, y)
	}
	dc.SetLineWidth(5)
	dc.SetRGB(0.95, 0.95, 0.95)
	dc.Stroke()
	return dc.Image()
}

// Star draws the burst particle.
func Star() image.Image {
	dc := gg.NewContext(StarSize, StarSize)
	c := float64(StarSize) / 2
	outer, inner := c-2, (c-2)*0.45
	for i := 0; i < 10; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/5 - math.Pi/2
		dc.LineTo(c+r*math.Cos(a), c+r*math.Sin(a))
	}
	dc.ClosePath()
	dc.SetRGB(1, 0.92, 0.3)
	dc.FillPreserve()
	dc.SetLineWidth(2)
	dc.SetRGB(1, 0.7, 0.1)
	dc.Stroke()
	return dc.Image()
}

// Background draws a sky gradient with a strip of grass.
func Background(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	grad := gg.NewLinearGradient(0, 0, 0, float64(h))
	grad.AddColorStop(0, color.RGBA{52, 152, 219, 255})
	grad.AddColorStop(0.8, color.RGBA{174, 214, 241, 255})
	grad.AddColorStop(1, color.RGBA{130, 190, 90, 255})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	dc.Fill()
	return dc.Image()
}

// Cloud draws the puffy cloud the pump stands on.
func Cloud() image.Image {
	const w, h = 360, 160
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.DrawRoundedRectangle(20, 80, w-40, 70, 35)
	dc.Fill()
	for _, p := range [][3]float64{{90, 90, 55}, {170, 70, 70}, {260, 90, 55}} {
		dc.DrawCircle(p[0], p[1], p[2])
		dc.Fill()
	}
	return dc.Image()
}

// PumpBody draws the pump barrel.
func PumpBody() image.Image {
	const w, h = 160, 260
	dc := gg.NewContext(w, h)
	dc.DrawRoundedRectangle(20, 10, w-40, h-40, 16)
	dc.SetRGB(0.85, 0.2, 0.2)
	dc.FillPreserve()
	dc.SetLineWidth(4)
	dc.SetRGB(0.5, 0.1, 0.1)
	dc.Stroke()
	// foot plate
	dc.DrawRoundedRectangle(0, h-34, w, 30, 8)
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.Fill()
	// hose socket
	dc.DrawCircle(30, h-70, 12)
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.Fill()
	return dc.Image()
}

// PumpHandle draws the T-handle and its rod.
func PumpHandle() image.Image {
	const w, h = 200, 300
	dc := gg.NewContext(w, h)
	dc.DrawRectangle(w/2-8, 30, 16, h-30)
	dc.SetRGB(0.7, 0.7, 0.72)
	dc.Fill()
	dc.DrawRoundedRectangle(10, 4, w-20, 34, 14)
	dc.SetRGB(0.15, 0.15, 0.15)
	dc.Fill()
	return dc.Image()
}

// Outlet draws the hose running from the pump to the nozzle.
func Outlet() image.Image {
	const w, h = 320, 80
	dc := gg.NewContext(w, h)
	dc.MoveTo(w-10, h-20)
	dc.QuadraticTo(w/2, h+10, 20, 20)
	dc.SetLineWidth(14)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.Stroke()
	dc.DrawRectangle(4, 4, 32, 24)
	dc.SetRGB(0.4, 0.4, 0.4)
	dc.Fill()
	return dc.Image()
}

// tint mixes c towards white by f.
func tint(c color.RGBA, f float64) color.RGBA {
	mix := func(v uint8) uint8 { return uint8(float64(v) + (255-float64(v))*f) }
	return color.RGBA{mix(c.R), mix(c.G), mix(c.B), c.A}
}

// shade scales c towards black by f.
func shade(c color.RGBA, f float64) color.RGBA {
	mul := func(v uint8) uint8 { return uint8(float64(v) * f) }
	return color.RGBA{mul(c.R), mul(c.G), mul(c.B), c.A}
}
