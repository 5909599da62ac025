package scene

import (
	"math/rand/v2"
	"time"

	"github.com/zurustar/balloon-pump/pkg/balloon"
)

// Autopilot はヘッドレス実行でシーンを操作する
// 同じシードなら同じ操作列になる
type Autopilot struct {
	scene *Scene
	rnd   *rand.Rand

	// PressChance はガードが外れているフレームでポンプを押す確率（1/n）
	PressChance int
	// TapChance は飛行中のバルーンをタップする確率（1/n）
	TapChance int

	held bool
}

// NewAutopilot はAutopilotを作成する
func NewAutopilot(s *Scene, seed uint64) *Autopilot {
	return &Autopilot{
		scene:       s,
		rnd:         rand.New(rand.NewPCG(seed, seed+1)),
		PressChance: 3,
		TapChance:   45,
	}
}

// Step は1フレーム分の入力を行う
// ポンプは押した次のフレームで離す
func (a *Autopilot) Step() {
	x, y := a.pumpPoint()
	if a.held {
		a.scene.PointerUp(x, y)
		a.held = false
		return
	}
	if !a.scene.Manager().IsInflating() && a.rnd.IntN(a.PressChance) == 0 {
		a.scene.PointerDown(x, y)
		a.held = true
		return
	}
	if a.rnd.IntN(a.TapChance) == 0 {
		if bx, by, ok := a.pickFlying(); ok {
			a.scene.PointerDown(bx, by)
			a.scene.PointerUp(bx, by)
		}
	}
}

// Update は入力を行ってからシーンを進める
func (a *Autopilot) Update(dt time.Duration) error {
	a.Step()
	return a.scene.Update(dt)
}

// pumpPoint はポンプ本体の中心を返す
func (a *Autopilot) pumpPoint() (float64, float64) {
	r := a.scene.Pump().Body().Bounds()
	return r.X + r.W/2, r.Y + r.H/2
}

// pickFlying は飛行中のバルーンを1つ選んでその位置を返す
func (a *Autopilot) pickFlying() (float64, float64, bool) {
	var flying []*balloon.Balloon
	for _, b := range a.scene.Manager().Balloons() {
		if b.State() == balloon.Flying {
			flying = append(flying, b)
		}
	}
	if len(flying) == 0 {
		return 0, 0, false
	}
	x, y := flying[a.rnd.IntN(len(flying))].Position()
	return x, y, true
}
