// Package scene はゲーム画面の構成と、フレームごとの処理順序を管理する
//
// balloon.Stageを実装し、スプライト・物理・トゥイーン・タイマー・パーティクルを
// バルーンのライフサイクル管理に提供する。
package scene

import (
	"image/color"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/zurustar/balloon-pump/pkg/assets"
	"github.com/zurustar/balloon-pump/pkg/balloon"
	"github.com/zurustar/balloon-pump/pkg/input"
	"github.com/zurustar/balloon-pump/pkg/logger"
	"github.com/zurustar/balloon-pump/pkg/particle"
	"github.com/zurustar/balloon-pump/pkg/physics"
	"github.com/zurustar/balloon-pump/pkg/pump"
	"github.com/zurustar/balloon-pump/pkg/sprite"
	"github.com/zurustar/balloon-pump/pkg/timer"
	"github.com/zurustar/balloon-pump/pkg/tween"
)

// 画面の既定サイズ
const (
	DefaultWidth  = 1024
	DefaultHeight = 768
)

// skyColor は背景画像の外側の塗りつぶし色
var skyColor = color.RGBA{0x34, 0x98, 0xdb, 0xff}

// Sounds はシーンが鳴らす効果音
type Sounds interface {
	PlayPop()
	PlayPump()
	Update()
}

// Options はシーンの生成オプション
type Options struct {
	Width, Height int
	Settings      balloon.Settings // ゼロ値なら既定値
	Seed          uint64           // 0の場合は時刻から決める
	Debug         bool
	Sounds        Sounds // nilの場合は無音
}

// Stats はシーン全体の集計
type Stats struct {
	Frames    int
	Elapsed   time.Duration
	Balloons  balloon.Stats
	Live      int // プール内のバルーン数
	Flying    int // 飛行中のバルーン数
	Pumps     int // ポンプが押された回数
	Taps      int // タップで破裂させた数
	Particles int
	Sprites   int

	NextSkin, NextLetter int // 次に作られるバルーンの画像番号と文字番号
}

// Scene はゲーム画面
type Scene struct {
	lib   *assets.Library
	log   *slog.Logger
	debug bool

	width, height int // 現在のビューポート

	sprites   *sprite.SpriteManager
	world     *physics.World
	tweens    *tween.Manager
	clock     *timer.Clock
	particles *particle.System
	sounds    Sounds

	manager    *balloon.Manager
	pump       *pump.Pump
	router     *input.Router
	background *sprite.Sprite
	hud        *HUD

	bodies  []*balloonBody
	frames  int
	elapsed time.Duration
}

// New はシーンを作成する
// 物理ワールドの境界とポンプの位置はここで決まり、以後のResizeでは変わらない
func New(lib *assets.Library, opts Options) *Scene {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Settings == (balloon.Settings{}) {
		opts.Settings = balloon.DefaultSettings()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	w, h := float64(opts.Width), float64(opts.Height)
	s := &Scene{
		lib:       lib,
		log:       logger.Component("scene"),
		debug:     opts.Debug,
		width:     opts.Width,
		height:    opts.Height,
		sprites:   sprite.NewSpriteManager(),
		world:     physics.NewWorld(physics.Rect{X: 0, Y: 0, W: w, H: h}),
		tweens:    tween.NewManager(),
		clock:     timer.NewClock(),
		particles: particle.NewSystem(nil, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
		sounds:    opts.Sounds,
	}

	// 背景は最初に作り、同じ深度の中で最も奥に置く
	s.background = s.sprites.CreateSprite(lib.Texture(assets.KeyBackground), w/2, h/2)
	s.background.SetDisplaySize(w, h)
	s.background.SetDepth(pump.DepthBack)

	layout := pump.NewLayout(pump.BaseFor(w, h))
	s.manager = balloon.NewManager(s, layout.Nozzle,
		balloon.WithSettings(opts.Settings),
		balloon.WithRand(rand.New(rand.NewPCG(seed, seed))),
	)
	s.pump = pump.New(s.sprites, pump.Textures{
		Body:   lib.Texture(assets.KeyPumpBody),
		Handle: lib.Texture(assets.KeyPumpHandle),
		Outlet: lib.Texture(assets.KeyOutlet),
		Cloud:  lib.Texture(assets.KeyCloud),
	}, layout, s.tweens, s.manager)
	s.router = input.NewRouter(s.pump, s.manager)
	s.hud = NewHUD()

	s.sprites.Overlay().SetEnabled(opts.Debug)

	s.log.Info("Scene created", "width", opts.Width, "height", opts.Height, "seed", seed, "nozzle_x", layout.Nozzle.X, "nozzle_y", layout.Nozzle.Y)
	return s
}

// Manager はバルーンのライフサイクル管理を返す
func (s *Scene) Manager() *balloon.Manager { return s.manager }

// Pump はポンプを返す
func (s *Scene) Pump() *pump.Pump { return s.pump }

// Sprites はスプライトマネージャーを返す
func (s *Scene) Sprites() *sprite.SpriteManager { return s.sprites }

// World は物理ワールドを返す
func (s *Scene) World() *physics.World { return s.world }

// Particles はパーティクルシステムを返す
func (s *Scene) Particles() *particle.System { return s.particles }

// Size は現在のビューポートのサイズを返す
func (s *Scene) Size() (int, int) { return s.width, s.height }

// Resize はビューポートのサイズだけを更新する
// ポンプ・背景・物理ワールドの境界は作成時のまま変えない
func (s *Scene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.log.Debug("Viewport resized", "width", width, "height", height)
	s.width, s.height = width, height
}

// SetDebug はデバッグ表示を切り替える
func (s *Scene) SetDebug(enabled bool) {
	s.debug = enabled
	s.sprites.Overlay().SetEnabled(enabled)
	if enabled {
		s.log.Debug("Debug display enabled", "draw_order", s.sprites.PrintDrawOrder())
	}
}

// IsDebug はデバッグ表示が有効かどうかを返す
func (s *Scene) IsDebug() bool { return s.debug }

// PointerDown はポインタ押下をポンプかバルーンに振り分ける
func (s *Scene) PointerDown(x, y float64) {
	target := s.router.PointerDown(x, y)
	if target == input.TargetPump && s.sounds != nil {
		s.sounds.PlayPump()
	}
}

// PointerUp はポインタ解放を処理する
func (s *Scene) PointerUp(x, y float64) {
	s.router.PointerUp(x, y)
}

// Update は1フレーム進める
// 入力はこの呼び出しの前に処理済みで、以降はトゥイーン、タイマー、物理、
// バルーンの毎フレーム処理、パーティクルの順
func (s *Scene) Update(dt time.Duration) error {
	s.tweens.Update(dt)
	s.clock.Update(dt)
	s.stepPhysics(dt)
	s.manager.Update()
	s.particles.Update(dt)
	if s.sounds != nil {
		s.sounds.Update()
	}
	s.frames++
	s.elapsed += dt
	return nil
}

// Draw は画面を描画する
func (s *Scene) Draw(screen *ebiten.Image) {
	if !s.particles.HasTexture() {
		s.particles.SetTexture(s.lib.Texture(assets.KeyParticle).Image())
	}
	screen.Fill(skyColor)
	s.sprites.Draw(screen)
	s.particles.Draw(screen)
	if s.debug {
		s.hud.Draw(screen, s.Stats())
	}
}

// Stats は現在の集計を返す
func (s *Scene) Stats() Stats {
	flying := 0
	for _, b := range s.manager.Balloons() {
		if b.State() == balloon.Flying {
			flying++
		}
	}
	skin, letter := s.manager.Cursor().Peek()
	return Stats{
		NextSkin:   skin,
		NextLetter: letter,
		Frames:     s.frames,
		Elapsed:    s.elapsed,
		Balloons:   s.manager.Stats(),
		Live:       s.manager.Len(),
		Flying:     flying,
		Pumps:      s.pump.Presses(),
		Taps:       s.router.Pops(),
		Particles:  s.particles.Count(),
		Sprites:    s.sprites.Count(),
	}
}
