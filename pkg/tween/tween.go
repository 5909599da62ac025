// Package tween はフレーム駆動のプロパティ補間（トゥイーン）を提供する
//
// 時間の進行と補間比率はgweenのSequenceで管理し、各プロパティには
// 開始値と到達値の間を比率で線形補間した値を設定する。
package tween

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Property は補間対象の数値プロパティ
type Property struct {
	Get func() float64
	Set func(float64)
}

// Config はトゥイーンの設定
type Config struct {
	Targets  []Property
	To       float64 // 到達値（ByUsedがtrueの場合は無視）
	By       float64 // 開始値からの相対量
	ByUsed   bool
	Duration time.Duration
	// Yoyo がtrueの場合、到達後に同じ時間をかけて開始値へ戻る
	Yoyo       bool
	OnComplete func()
	// Ease は補間関数。nilの場合は線形
	Ease ease.TweenFunc
}

// Tween は実行中のトゥイーン
type Tween struct {
	targets    []Property
	from       []float64
	to         []float64
	seq        *gween.Sequence // 比率 0→1（Yoyoなら続けて 1→0）
	final      float32         // 完了時の比率
	onComplete func()

	stopped  bool
	finished bool
}

// Stop はトゥイーンを中断する（OnCompleteは呼ばれない）
func (t *Tween) Stop() {
	t.stopped = true
}

// IsActive は実行中かどうかを返す
func (t *Tween) IsActive() bool {
	return !t.stopped && !t.finished
}

// advance は時間を進めて各プロパティを更新し、完了したかどうかを返す
func (t *Tween) advance(dt time.Duration) bool {
	ratio, _, done := t.seq.Update(float32(dt.Seconds()))
	if done {
		ratio = t.final
	}
	t.apply(ratio)
	return done
}

func (t *Tween) apply(ratio float32) {
	r := float64(ratio)
	for i, p := range t.targets {
		p.Set(t.from[i] + (t.to[i]-t.from[i])*r)
	}
}

// Manager はトゥイーンをまとめて進める
type Manager struct {
	active  []*Tween
	pending []*Tween // Update中に追加されたもの
	running bool
}

// NewManager はManagerを作成する
func NewManager() *Manager {
	return &Manager{}
}

// Add はトゥイーンを登録する。開始値は登録時点の値
func (m *Manager) Add(cfg Config) *Tween {
	easing := cfg.Ease
	if easing == nil {
		easing = ease.Linear
	}
	seconds := float32(cfg.Duration.Seconds())

	t := &Tween{
		targets:    cfg.Targets,
		from:       make([]float64, len(cfg.Targets)),
		to:         make([]float64, len(cfg.Targets)),
		seq:        gween.NewSequence(gween.New(0, 1, seconds, easing)),
		final:      1,
		onComplete: cfg.OnComplete,
	}
	if cfg.Yoyo {
		t.seq.Add(gween.New(1, 0, seconds, easing))
		t.final = 0
	}
	for i, p := range cfg.Targets {
		t.from[i] = p.Get()
		if cfg.ByUsed {
			t.to[i] = t.from[i] + cfg.By
		} else {
			t.to[i] = cfg.To
		}
	}
	if m.running {
		m.pending = append(m.pending, t)
	} else {
		m.active = append(m.active, t)
	}
	return t
}

// Update はdtだけ時間を進め、完了したトゥイーンのOnCompleteを呼ぶ
// OnComplete内で追加されたトゥイーンは次回のUpdateから進む
func (m *Manager) Update(dt time.Duration) {
	m.running = true
	var done []*Tween
	kept := m.active[:0]
	for _, t := range m.active {
		if t.stopped {
			continue
		}
		if t.advance(dt) {
			t.finished = true
			done = append(done, t)
			continue
		}
		kept = append(kept, t)
	}
	m.active = kept

	for _, t := range done {
		if t.onComplete != nil && !t.stopped {
			t.onComplete()
		}
	}
	m.running = false

	m.active = append(m.active, m.pending...)
	m.pending = nil
}

// Len は実行中のトゥイーン数を返す
func (m *Manager) Len() int {
	n := 0
	for _, t := range m.active {
		if t.IsActive() {
			n++
		}
	}
	return n + len(m.pending)
}
