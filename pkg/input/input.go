// Package input はポインタ操作をポンプとバルーンに振り分ける
package input

import (
	"log/slog"

	"github.com/zurustar/balloon-pump/pkg/logger"
)

// Pump はポインタを受け取るポンプ
type Pump interface {
	Contains(x, y float64) bool
	Press()
	Release()
}

// Tapper はタップ位置の飛行中バルーンを破裂させる
type Tapper interface {
	Tap(x, y float64) bool
}

// Target はポインタ押下の振り分け先
type Target int

const (
	TargetNone Target = iota
	TargetPump
	TargetBalloon
)

// String はTargetの名前を返す
func (t Target) String() string {
	switch t {
	case TargetPump:
		return "pump"
	case TargetBalloon:
		return "balloon"
	default:
		return "none"
	}
}

// Router はポインタイベントを振り分ける
type Router struct {
	pump   Pump
	tapper Tapper
	log    *slog.Logger

	pops int
}

// NewRouter はRouterを作成する
func NewRouter(pump Pump, tapper Tapper) *Router {
	return &Router{
		pump:   pump,
		tapper: tapper,
		log:    logger.Component("input"),
	}
}

// PointerDown はポインタ押下を処理する
// ポンプ本体の上ならポンプが押下を受け取り、バルーンには届かない
func (r *Router) PointerDown(x, y float64) Target {
	if r.pump.Contains(x, y) {
		r.pump.Press()
		return TargetPump
	}
	if r.tapper.Tap(x, y) {
		r.pops++
		r.log.Debug("Balloon tapped", "x", x, "y", y)
		return TargetBalloon
	}
	return TargetNone
}

// PointerUp はポインタ解放を処理する
// ポンプ本体の上で離されたときだけポンプを戻す
func (r *Router) PointerUp(x, y float64) {
	if r.pump.Contains(x, y) {
		r.pump.Release()
	}
}

// Pops はタップで破裂させた数を返す
func (r *Router) Pops() int {
	return r.pops
}
