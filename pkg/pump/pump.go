// Package pump はポンプの見た目と押下時の動作を管理する
package pump

import (
	"log/slog"
	"time"

	"github.com/zurustar/balloon-pump/pkg/balloon"
	"github.com/zurustar/balloon-pump/pkg/logger"
	"github.com/zurustar/balloon-pump/pkg/sprite"
	"github.com/zurustar/balloon-pump/pkg/tween"
)

// 描画の深度
const (
	DepthBack  = 0 // ハンドル、雲、バルーン
	DepthFront = 1 // 本体、吹き出しホース
)

// 押下アニメーションの設定
const (
	AnimDuration = 200 * time.Millisecond
	HandleTravel = 50.0
	BodyTravel   = 10.0
	PartScale    = 0.5
	CloudScale   = 0.6
)

// Layout はポンプの基準点から求めた各部品の配置
type Layout struct {
	Base   balloon.Point
	Body   balloon.Point // 本体（下辺中央）
	Handle balloon.Point // ハンドル（下辺中央）
	Outlet balloon.Point // 吹き出しホース（下辺中央）
	Cloud  balloon.Point // 足元の雲（下辺中央）
	Nozzle balloon.Point // バルーンの生成位置
}

// BaseFor は画面サイズからポンプの基準点を求める（右下）
func BaseFor(width, height float64) balloon.Point {
	return balloon.Point{X: width - 100, Y: height - 10}
}

// NewLayout は基準点から配置を求める
func NewLayout(base balloon.Point) Layout {
	return Layout{
		Base:   base,
		Body:   balloon.Point{X: base.X, Y: base.Y + 20},
		Handle: balloon.Point{X: base.X, Y: base.Y - 120},
		Outlet: balloon.Point{X: base.X - 150, Y: base.Y - 20},
		Cloud:  balloon.Point{X: base.X, Y: base.Y + 125},
		Nozzle: balloon.Point{X: base.X - 209, Y: base.Y - 244},
	}
}

// Textures はポンプの部品画像
type Textures struct {
	Body   *sprite.Texture
	Handle *sprite.Texture
	Outlet *sprite.Texture
	Cloud  *sprite.Texture
}

// Inflater は押下時に呼ばれる膨張リクエストの受け口
type Inflater interface {
	Inflate() bool
}

// Pump はポンプ本体
// 位置は生成時に一度だけ決まり、画面サイズが変わっても再計算しない
type Pump struct {
	layout   Layout
	body     *sprite.Sprite
	handle   *sprite.Sprite
	outlet   *sprite.Sprite
	cloud    *sprite.Sprite
	tweens   *tween.Manager
	inflater Inflater
	log      *slog.Logger

	anims   []*tween.Tween
	pressed bool
	presses int
}

// New はポンプの部品スプライトを作成する
func New(sm *sprite.SpriteManager, tex Textures, layout Layout, tweens *tween.Manager, inflater Inflater) *Pump {
	p := &Pump{
		layout:   layout,
		tweens:   tweens,
		inflater: inflater,
		log:      logger.Component("pump"),
	}
	p.body = p.place(sm, tex.Body, layout.Body, PartScale, DepthFront)
	p.handle = p.place(sm, tex.Handle, layout.Handle, PartScale, DepthBack)
	p.outlet = p.place(sm, tex.Outlet, layout.Outlet, PartScale, DepthFront)
	p.cloud = p.place(sm, tex.Cloud, layout.Cloud, CloudScale, DepthBack)
	return p
}

func (p *Pump) place(sm *sprite.SpriteManager, tex *sprite.Texture, at balloon.Point, scale float64, depth int) *sprite.Sprite {
	s := sm.CreateSprite(tex, at.X, at.Y)
	s.SetOrigin(0.5, 1)
	s.SetScale(scale)
	s.SetDepth(depth)
	return s
}

// Layout は配置を返す
func (p *Pump) Layout() Layout { return p.layout }

// Nozzle はバルーンの生成位置を返す
func (p *Pump) Nozzle() balloon.Point { return p.layout.Nozzle }

// Body は本体スプライトを返す
func (p *Pump) Body() *sprite.Sprite { return p.body }

// Handle はハンドルスプライトを返す
func (p *Pump) Handle() *sprite.Sprite { return p.handle }

// Pressed は押下中かどうかを返す
func (p *Pump) Pressed() bool { return p.pressed }

// Presses は累計の押下回数を返す
func (p *Pump) Presses() int { return p.presses }

// Animating は押下アニメーションが動いているかを返す
func (p *Pump) Animating() bool {
	for _, t := range p.anims {
		if t.IsActive() {
			return true
		}
	}
	return false
}

// Contains は点がポンプ本体の上にあるかを返す
func (p *Pump) Contains(x, y float64) bool {
	return p.body.Contains(x, y)
}

// Press は膨張をリクエストし、押下アニメーションを再生する
// 膨張がガードで無視されてもアニメーションは再生する
func (p *Pump) Press() {
	p.pressed = true
	p.presses++
	accepted := p.inflater.Inflate()
	p.log.Debug("Pump pressed", "accepted", accepted)
	p.animate()
}

// Release はアニメーションを止めて部品を静止位置に戻す
func (p *Pump) Release() {
	p.pressed = false
	p.stop()
	p.rest()
}

// animate はハンドルと本体を押し下げて戻すアニメーションを開始する
func (p *Pump) animate() {
	p.stop()
	p.anims = append(p.anims,
		p.nudge(p.handle, HandleTravel),
		p.nudge(p.body, BodyTravel),
	)
}

func (p *Pump) nudge(s *sprite.Sprite, dy float64) *tween.Tween {
	return p.tweens.Add(tween.Config{
		Targets:  []tween.Property{yProperty(s)},
		By:       dy,
		ByUsed:   true,
		Duration: AnimDuration,
		Yoyo:     true,
		OnComplete: func() {
			p.rest()
		},
	})
}

func (p *Pump) stop() {
	for _, t := range p.anims {
		t.Stop()
	}
	p.anims = p.anims[:0]
}

// rest はハンドルと本体を静止位置に戻す
func (p *Pump) rest() {
	p.handle.SetPosition(p.layout.Handle.X, p.layout.Handle.Y)
	p.body.SetPosition(p.layout.Body.X, p.layout.Body.Y)
}

// yProperty はスプライトのY座標を補間対象にする
func yProperty(s *sprite.Sprite) tween.Property {
	return tween.Property{
		Get: func() float64 {
			_, y := s.Position()
			return y
		},
		Set: func(v float64) {
			x, _ := s.Position()
			s.SetPosition(x, v)
		},
	}
}
