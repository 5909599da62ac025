// Package balloon はバルーンのライフサイクル（膨張・発射・漂流・破裂）を管理する。
//
// 描画・物理・トゥイーン・タイマー・パーティクルはStageインターフェース越しに
// 利用するため、このパッケージ自体はEbitengineに依存しない。
package balloon

// State はバルーンの状態を表す
type State int

const (
	Inflating State = iota // ポンプで膨らませている途中
	Flying                 // 発射後（物理・漂流の対象）
)

// String は状態名を返す
func (s State) String() string {
	switch s {
	case Inflating:
		return "Inflating"
	case Flying:
		return "Flying"
	default:
		return "Unknown"
	}
}

const (
	// MaxClicks は発射までに必要なポンプ回数
	MaxClicks = 4
	// BaseScale は生成直後のバルーンのスケール
	BaseScale = 0.1
	// ScaleStep はポンプ1回あたりのスケール増分
	ScaleStep = 0.1
	// SkinCount はバルーン画像の種類数
	SkinCount = 10
	// LetterCount は文字画像の種類数
	LetterCount = 26
)

// ScaleForClicks はポンプ回数に対応する目標スケールを返す
func ScaleForClicks(clicks int) float64 {
	return BaseScale + float64(clicks)*ScaleStep
}

// Point は画面上の座標
type Point struct {
	X, Y float64
}

// Balloon はプール内の1個のバルーン
type Balloon struct {
	id     int
	skin   int // 1..SkinCount
	letter int // 1..LetterCount
	state  State
	clicks int

	body   Body
	glyph  Visual // 文字（本体と同じ寿命）
	rope   Visual // 発射後のみ
	popped bool
}

// ID はバルーンの通し番号を返す
func (b *Balloon) ID() int { return b.id }

// Skin はバルーン画像の番号（1始まり）を返す
func (b *Balloon) Skin() int { return b.skin }

// Letter は文字画像の番号（1始まり）を返す
func (b *Balloon) Letter() int { return b.letter }

// State は現在の状態を返す
func (b *Balloon) State() State { return b.state }

// Clicks は受け付けたポンプ回数を返す
func (b *Balloon) Clicks() int { return b.clicks }

// Scale は本体の現在スケールを返す
func (b *Balloon) Scale() float64 { return b.body.Scale() }

// Position は本体の現在位置を返す
func (b *Balloon) Position() (float64, float64) { return b.body.Position() }

// Velocity は物理ボディの速度を返す（ボディがない場合は0）
func (b *Balloon) Velocity() (float64, float64) {
	if !b.body.HasPhysics() {
		return 0, 0
	}
	return b.body.Velocity()
}

// HasRope はロープが付いているかどうかを返す
func (b *Balloon) HasRope() bool { return b.rope != nil }

// Popped は破裂済みかどうかを返す
func (b *Balloon) Popped() bool { return b.popped }

// Snapshot はHUDやレポート用のバルーン情報
type Snapshot struct {
	ID     int
	Skin   int
	Letter int
	State  State
	Clicks int
	Scale  float64
	X, Y   float64
	VX, VY float64
}

// Snapshot は現在の状態をコピーして返す
func (b *Balloon) Snapshot() Snapshot {
	x, y := b.Position()
	vx, vy := b.Velocity()
	return Snapshot{
		ID:     b.id,
		Skin:   b.skin,
		Letter: b.letter,
		State:  b.state,
		Clicks: b.clicks,
		Scale:  b.Scale(),
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
	}
}
