package balloon

import "time"

// Visual は位置とスケールを持つ描画オブジェクト（文字・ロープ）
type Visual interface {
	Position() (float64, float64)
	SetPosition(x, y float64)
	Scale() float64
	SetScale(s float64)
	Destroy()
}

// Body はバルーン本体。物理ボディを後付けできる描画オブジェクト
type Body interface {
	Visual
	// EnablePhysics は物理ボディを登録する（既にある場合は設定のみ更新）
	EnablePhysics(collideWorldBounds bool)
	HasPhysics() bool
	Velocity() (float64, float64)
	SetVelocity(vx, vy float64)
	// Contains は画面上の現在の表示範囲に点が含まれるかを返す
	Contains(x, y float64) bool
}

// Stage はライフサイクル管理が利用するエンジンサービス
type Stage interface {
	SpawnBalloon(skin int, x, y float64) Body
	SpawnLetter(letter int, x, y float64) Visual
	SpawnRope(x, y float64) Visual
	// TweenScale はtargetsのスケールをdで線形補間し、完了時にonCompleteを呼ぶ
	TweenScale(targets []Visual, to float64, d time.Duration, onComplete func())
	// After はdの経過後にfnを1回だけ呼ぶ
	After(d time.Duration, fn func())
	// Burst は(x, y)で破裂パーティクルを1回だけ放出する
	Burst(x, y float64)
}

// Rand は一様乱数の供給元（math/rand/v2 の *rand.Rand を想定）
type Rand interface {
	IntN(n int) int
}

// between はmin以上max以下の整数を返す
func between(r Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + r.IntN(max-min+1)
}
