package balloon

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/zurustar/balloon-pump/pkg/logger"
)

// Stats はセッション中の累計カウンタ
type Stats struct {
	Created  int // 生成したバルーン数
	Launched int // 発射したバルーン数
	Popped   int // 破裂させたバルーン数
	Presses  int // 受け付けた膨張リクエスト数
	Ignored  int // ガードにより無視した膨張リクエスト数
}

// Manager はバルーンのプールと膨張ガードを所有する
//
// すべてのメソッドは単一のゲームループから呼ばれる前提で、ロックは持たない。
type Manager struct {
	stage    Stage
	rnd      Rand
	log      *slog.Logger
	settings Settings
	nozzle   Point

	pool      []*Balloon // 挿入順
	inflating bool       // 膨張アニメーション中のガード
	cursor    Cursor
	nextID    int
	stats     Stats
}

// Option はManagerの生成オプション
type Option func(*Manager)

// WithSettings はチューニング値を指定する
func WithSettings(s Settings) Option {
	return func(m *Manager) { m.settings = s }
}

// WithRand は乱数の供給元を指定する
func WithRand(r Rand) Option {
	return func(m *Manager) { m.rnd = r }
}

// WithLogger はロガーを指定する
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager はManagerを作成する
// nozzleはポンプの吹き出し口の位置で、生成と発射の基準点になる
func NewManager(stage Stage, nozzle Point, opts ...Option) *Manager {
	m := &Manager{
		stage:    stage,
		nozzle:   nozzle,
		settings: DefaultSettings(),
		cursor:   NewCursor(),
		nextID:   1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rnd == nil {
		m.rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if m.log == nil {
		m.log = logger.Component("balloon")
	}
	return m
}

// IsInflating は膨張ガードが立っているかどうかを返す
func (m *Manager) IsInflating() bool { return m.inflating }

// Len はプール内のバルーン数を返す
func (m *Manager) Len() int { return len(m.pool) }

// At はindex番目のバルーンを返す（範囲外はnil）
func (m *Manager) At(index int) *Balloon {
	if index < 0 || index >= len(m.pool) {
		return nil
	}
	return m.pool[index]
}

// Balloons はプールのコピーを挿入順で返す
func (m *Manager) Balloons() []*Balloon {
	result := make([]*Balloon, len(m.pool))
	copy(result, m.pool)
	return result
}

// Cursor は現在のカーソルを返す
func (m *Manager) Cursor() Cursor { return m.cursor }

// Stats は累計カウンタを返す
func (m *Manager) Stats() Stats { return m.stats }

// Nozzle は生成・発射の基準点を返す
func (m *Manager) Nozzle() Point { return m.nozzle }

// Inflate はポンプ1回分の膨張リクエストを処理する
// ガードが立っている場合は何もせずfalseを返す
func (m *Manager) Inflate() bool {
	if m.inflating {
		m.stats.Ignored++
		return false
	}
	m.inflating = true
	m.stats.Presses++

	current := m.last()
	if current == nil || current.state == Flying || current.clicks >= MaxClicks {
		current = m.spawn()
	}

	// 生成直後は必ずclicks=0なので、ここを通らないのは到達不能な経路
	// その場合ガードは立ったまま残る
	if current.clicks < MaxClicks {
		current.clicks++
		m.animateInflate(current)
	}
	return true
}

// last はプールの末尾（最新）のバルーンを返す
func (m *Manager) last() *Balloon {
	if len(m.pool) == 0 {
		return nil
	}
	return m.pool[len(m.pool)-1]
}

// spawn は吹き出し口に新しいバルーンを生成してプールに追加する
func (m *Manager) spawn() *Balloon {
	skin, letter := m.cursor.Next()

	body := m.stage.SpawnBalloon(skin, m.nozzle.X, m.nozzle.Y)
	body.SetScale(BaseScale)
	body.EnablePhysics(true)

	x, y := body.Position()
	glyph := m.stage.SpawnLetter(letter, x, y)
	glyph.SetScale(m.settings.LetterInitialScale)

	b := &Balloon{
		id:     m.nextID,
		skin:   skin,
		letter: letter,
		state:  Inflating,
		body:   body,
		glyph:  glyph,
	}
	m.nextID++
	m.pool = append(m.pool, b)
	m.stats.Created++

	m.log.Debug("Balloon created", "id", b.id, "skin", skin, "letter", letter, "pool", len(m.pool))
	return b
}

// animateInflate は本体と文字を目標スケールまで補間する
func (m *Manager) animateInflate(b *Balloon) {
	target := ScaleForClicks(b.clicks)
	m.stage.TweenScale([]Visual{b.body, b.glyph}, target, time.Duration(m.settings.InflateDuration), func() {
		m.inflateComplete(b)
	})
}

// inflateComplete は膨張アニメーション完了時の遷移
func (m *Manager) inflateComplete(b *Balloon) {
	if b.popped {
		// アニメーション中に破裂した場合は発射しない
		m.inflating = false
		return
	}
	if b.clicks >= MaxClicks {
		m.launch(b)
		return
	}
	m.inflating = false
}

// launch はバルーンを飛行状態に遷移させる
func (m *Manager) launch(b *Balloon) {
	b.body.SetPosition(m.nozzle.X, m.nozzle.Y)
	b.state = Flying

	x, y := b.body.Position()
	b.rope = m.stage.SpawnRope(x, y)
	b.rope.SetScale(m.settings.RopeScale)

	b.body.EnablePhysics(true)
	if !b.body.HasPhysics() {
		// ボディが得られなければガードは解除されない
		m.log.Warn("Balloon launched without physics body", "id", b.id)
		return
	}
	b.body.SetVelocity(0, m.settings.LaunchVelocityY)
	m.stage.After(time.Duration(m.settings.DirectionChangeDelay), func() {
		m.changeDirection(b)
	})
	m.inflating = false
	m.stats.Launched++

	m.log.Debug("Balloon launched", "id", b.id, "x", x, "y", y)
}

// changeDirection は発射後1回だけ横方向の速度をランダムに付け直す
// 既に破裂している場合は何もしない
func (m *Manager) changeDirection(b *Balloon) {
	if b == nil || b.popped || !b.body.HasPhysics() {
		return
	}
	vx := between(m.rnd, -m.settings.DirectionSpread, m.settings.DirectionSpread)
	b.body.SetVelocity(float64(vx), m.settings.LaunchVelocityY)
}

// Burst はindex番目のバルーンを破裂させてプールから取り除く
// ガードには影響しない。範囲外のindexはfalseを返す
func (m *Manager) Burst(index int) bool {
	if index < 0 || index >= len(m.pool) {
		return false
	}
	b := m.pool[index]
	x, y := b.body.Position()
	m.stage.Burst(x, y)

	if b.rope != nil {
		b.rope.Destroy()
	}
	b.glyph.Destroy()
	b.body.Destroy()
	b.popped = true

	m.pool = append(m.pool[:index], m.pool[index+1:]...)
	m.stats.Popped++

	m.log.Debug("Balloon popped", "id", b.id, "x", x, "y", y, "pool", len(m.pool))
	return true
}

// HitTest は(x, y)を含む最初の飛行中バルーンのindexを返す
// 重なっている場合は挿入順で先のものが優先される
func (m *Manager) HitTest(x, y float64) (int, bool) {
	for i, b := range m.pool {
		if b.state == Flying && b.body.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// Tap は(x, y)にある飛行中バルーンを1つだけ破裂させる
func (m *Manager) Tap(x, y float64) bool {
	i, ok := m.HitTest(x, y)
	if !ok {
		return false
	}
	return m.Burst(i)
}

// Update は毎フレーム呼ばれ、飛行中バルーンの速度を揺らし、ロープと文字を追従させる
// 速度の上限は設けていない
func (m *Manager) Update() {
	for _, b := range m.pool {
		if b.state != Flying || !b.body.HasPhysics() {
			continue
		}
		x, y := b.body.Position()
		if b.rope != nil {
			b.rope.SetPosition(x, y+m.settings.RopeOffsetY)
		}

		vx, vy := b.body.Velocity()
		vx += float64(between(m.rnd, -m.settings.DriftX, m.settings.DriftX))
		vy += float64(between(m.rnd, -m.settings.DriftY, m.settings.DriftY))
		b.body.SetVelocity(vx, vy)

		b.glyph.SetPosition(x, y)
	}
}
