package scene

import (
	"time"

	"github.com/zurustar/balloon-pump/pkg/assets"
	"github.com/zurustar/balloon-pump/pkg/balloon"
	"github.com/zurustar/balloon-pump/pkg/particle"
	"github.com/zurustar/balloon-pump/pkg/physics"
	"github.com/zurustar/balloon-pump/pkg/pump"
	"github.com/zurustar/balloon-pump/pkg/sprite"
	"github.com/zurustar/balloon-pump/pkg/tween"
)

// visual はスプライトをballoon.Visualとして扱うためのラッパー
type visual struct {
	scene  *Scene
	sprite *sprite.Sprite
}

func (v *visual) Position() (float64, float64) { return v.sprite.Position() }
func (v *visual) SetPosition(x, y float64)     { v.sprite.SetPosition(x, y) }
func (v *visual) Scale() float64               { return v.sprite.Scale() }
func (v *visual) SetScale(s float64)           { v.sprite.SetScale(s) }

func (v *visual) Destroy() {
	v.scene.sprites.DeleteSprite(v.sprite)
}

// balloonBody はバルーン本体のスプライトと、後付けの物理ボディの組
// 物理ボディがある間は位置の正はボディ側で、スプライトは毎フレーム追従する
type balloonBody struct {
	visual
	body *physics.Body
}

func (b *balloonBody) Position() (float64, float64) {
	if b.body != nil {
		return b.body.X, b.body.Y
	}
	return b.sprite.Position()
}

func (b *balloonBody) SetPosition(x, y float64) {
	b.sprite.SetPosition(x, y)
	if b.body != nil {
		b.body.X, b.body.Y = x, y
	}
}

func (b *balloonBody) SetScale(s float64) {
	b.sprite.SetScale(s)
	b.syncSize()
}

func (b *balloonBody) Destroy() {
	b.scene.world.Remove(b.body)
	b.body = nil
	b.scene.sprites.DeleteSprite(b.sprite)
}

func (b *balloonBody) EnablePhysics(collideWorldBounds bool) {
	if b.sprite.Destroyed() {
		return
	}
	if b.body == nil {
		x, y := b.sprite.Position()
		w, h := b.sprite.DisplaySize()
		b.body = b.scene.world.Add(x, y, w, h)
		b.scene.bodies = append(b.scene.bodies, b)
	}
	b.body.CollideWorldBounds = collideWorldBounds
}

func (b *balloonBody) HasPhysics() bool {
	return b.body != nil && b.body.Enabled()
}

func (b *balloonBody) Velocity() (float64, float64) {
	if b.body == nil {
		return 0, 0
	}
	return b.body.Velocity()
}

func (b *balloonBody) SetVelocity(vx, vy float64) {
	if b.body == nil {
		return
	}
	b.body.SetVelocity(vx, vy)
}

func (b *balloonBody) Contains(x, y float64) bool {
	if b.sprite.Destroyed() {
		return false
	}
	if b.body != nil {
		return b.body.Bounds().Contains(x, y)
	}
	return b.sprite.Contains(x, y)
}

// syncSize は物理ボディの大きさを表示サイズに合わせる
func (b *balloonBody) syncSize() {
	if b.body == nil {
		return
	}
	b.body.W, b.body.H = b.sprite.DisplaySize()
}

// syncSprite はスプライトを物理ボディの位置に合わせる
func (b *balloonBody) syncSprite() {
	if b.body == nil {
		return
	}
	b.sprite.SetPosition(b.body.X, b.body.Y)
}

// ---- balloon.Stage ----

// SpawnBalloon はskin番目のバルーン画像を(x, y)に置く
func (s *Scene) SpawnBalloon(skin int, x, y float64) balloon.Body {
	spr := s.sprites.CreateSprite(s.lib.Balloon(skin), x, y)
	spr.SetDepth(pump.DepthBack)
	return &balloonBody{visual: visual{scene: s, sprite: spr}}
}

// SpawnLetter はletter番目の文字画像を(x, y)に置く
func (s *Scene) SpawnLetter(letter int, x, y float64) balloon.Visual {
	spr := s.sprites.CreateSprite(s.lib.Letter(letter), x, y)
	spr.SetDepth(pump.DepthBack)
	return &visual{scene: s, sprite: spr}
}

// SpawnRope はロープを上端中央を基準に(x, y)へ置く
func (s *Scene) SpawnRope(x, y float64) balloon.Visual {
	spr := s.sprites.CreateSprite(s.lib.Texture(assets.KeyRope), x, y)
	spr.SetOrigin(0.5, 0)
	spr.SetDepth(pump.DepthBack)
	return &visual{scene: s, sprite: spr}
}

// TweenScale はtargetsのスケールをまとめて補間する
func (s *Scene) TweenScale(targets []balloon.Visual, to float64, d time.Duration, onComplete func()) {
	props := make([]tween.Property, 0, len(targets))
	for _, t := range targets {
		props = append(props, tween.Property{Get: t.Scale, Set: t.SetScale})
	}
	s.tweens.Add(tween.Config{
		Targets:    props,
		To:         to,
		Duration:   d,
		OnComplete: onComplete,
	})
}

// After はシーンの時計でfnを予約する
func (s *Scene) After(d time.Duration, fn func()) {
	s.clock.After(d, fn)
}

// Burst は破裂パーティクルを放出し、破裂音を鳴らす
func (s *Scene) Burst(x, y float64) {
	s.particles.Explode(particle.BurstConfig(), particle.BurstCount, x, y)
	if s.sounds != nil {
		s.sounds.PlayPop()
	}
}

// stepPhysics はボディの大きさを合わせてから物理を1ステップ進め、
// スプライトをボディの位置に追従させる
func (s *Scene) stepPhysics(dt time.Duration) {
	alive := s.bodies[:0]
	for _, b := range s.bodies {
		if b.body == nil {
			continue
		}
		b.syncSize()
		alive = append(alive, b)
	}
	s.bodies = alive

	s.world.Step(dt)

	for _, b := range s.bodies {
		b.syncSprite()
	}
}
