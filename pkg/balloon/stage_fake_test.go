package balloon

import (
	"io"
	"log/slog"
	"time"
)

// fakeVisual はテスト用の描画オブジェクト
type fakeVisual struct {
	kind      string
	index     int
	x, y      float64
	scale     float64
	destroyed bool
}

func (v *fakeVisual) Position() (float64, float64) { return v.x, v.y }
func (v *fakeVisual) SetPosition(x, y float64)     { v.x, v.y = x, y }
func (v *fakeVisual) Scale() float64               { return v.scale }
func (v *fakeVisual) SetScale(s float64)           { v.scale = s }
func (v *fakeVisual) Destroy()                     { v.destroyed = true }

// fakeBody はテスト用のバルーン本体（画像サイズ200x250、中心原点）
type fakeBody struct {
	fakeVisual
	physics      bool
	noPhysics    bool // trueの場合EnablePhysicsしてもボディが得られない
	collideWorld bool
	vx, vy       float64
}

func (b *fakeBody) EnablePhysics(collide bool) {
	if b.noPhysics {
		return
	}
	b.physics = true
	b.collideWorld = collide
}
func (b *fakeBody) HasPhysics() bool             { return b.physics && !b.destroyed }
func (b *fakeBody) Velocity() (float64, float64) { return b.vx, b.vy }
func (b *fakeBody) SetVelocity(vx, vy float64)   { b.vx, b.vy = vx, vy }
func (b *fakeBody) Destroy()                     { b.destroyed = true; b.physics = false }
func (b *fakeBody) Contains(x, y float64) bool {
	w, h := 200*b.scale, 250*b.scale
	return x >= b.x-w/2 && x < b.x+w/2 && y >= b.y-h/2 && y < b.y+h/2
}

type fakeTween struct {
	targets    []Visual
	to         float64
	duration   time.Duration
	onComplete func()
}

type fakeTimer struct {
	delay time.Duration
	fn    func()
}

type burstPoint struct{ x, y float64 }

// fakeStage はエンジンサービスを記録するだけのStage
type fakeStage struct {
	bodies    []*fakeBody
	letters   []*fakeVisual
	ropes     []*fakeVisual
	tweens    []fakeTween
	timers    []fakeTimer
	bursts    []burstPoint
	noPhysics bool
}

func newFakeStage() *fakeStage { return &fakeStage{} }

func (s *fakeStage) SpawnBalloon(skin int, x, y float64) Body {
	b := &fakeBody{fakeVisual: fakeVisual{kind: "balloon", index: skin, x: x, y: y, scale: 1}, noPhysics: s.noPhysics}
	s.bodies = append(s.bodies, b)
	return b
}

func (s *fakeStage) SpawnLetter(letter int, x, y float64) Visual {
	v := &fakeVisual{kind: "letter", index: letter, x: x, y: y, scale: 1}
	s.letters = append(s.letters, v)
	return v
}

func (s *fakeStage) SpawnRope(x, y float64) Visual {
	v := &fakeVisual{kind: "rope", x: x, y: y, scale: 1}
	s.ropes = append(s.ropes, v)
	return v
}

func (s *fakeStage) TweenScale(targets []Visual, to float64, d time.Duration, onComplete func()) {
	s.tweens = append(s.tweens, fakeTween{targets: targets, to: to, duration: d, onComplete: onComplete})
}

func (s *fakeStage) After(d time.Duration, fn func()) {
	s.timers = append(s.timers, fakeTimer{delay: d, fn: fn})
}

func (s *fakeStage) Burst(x, y float64) {
	s.bursts = append(s.bursts, burstPoint{x, y})
}

// finishTweens は保留中のトゥイーンをすべて完了させる
func (s *fakeStage) finishTweens() {
	pending := s.tweens
	s.tweens = nil
	for _, tw := range pending {
		for _, t := range tw.targets {
			t.SetScale(tw.to)
		}
		if tw.onComplete != nil {
			tw.onComplete()
		}
	}
}

// fireTimers は保留中のタイマーをすべて発火させる
func (s *fakeStage) fireTimers() {
	pending := s.timers
	s.timers = nil
	for _, tm := range pending {
		tm.fn()
	}
}

// seqRand は決められた値を順番に返すRand
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) IntN(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// pump はInflateしてトゥイーンを完了させるまでを1回分として実行する
func pump(m *Manager, s *fakeStage) bool {
	ok := m.Inflate()
	s.finishTweens()
	return ok
}

// newBufferLogger はwに出力するデバッグレベルのロガーを返す
func newBufferLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
