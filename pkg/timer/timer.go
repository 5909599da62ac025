// Package timer はゲームループ上で動く遅延コールバックを提供する
package timer

import (
	"sort"
	"time"
)

// event は予約された1回限りのコールバック
type event struct {
	due time.Duration
	seq int
	fn  func()
}

// Clock はフレームごとに進む仮想時計
// ゴルーチンは使わず、Updateを呼んだスレッド上でコールバックを実行する
type Clock struct {
	now     time.Duration
	seq     int
	pending []event
}

// NewClock はClockを作成する
func NewClock() *Clock {
	return &Clock{}
}

// Now は経過時間を返す
func (c *Clock) Now() time.Duration {
	return c.now
}

// After はdの経過後にfnを1回だけ呼ぶよう予約する
func (c *Clock) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	c.pending = append(c.pending, event{due: c.now + d, seq: c.seq, fn: fn})
	c.seq++
}

// Pending は未発火のイベント数を返す
func (c *Clock) Pending() int {
	return len(c.pending)
}

// Update は時計をdtだけ進め、期限が来たイベントを期限順（同時刻なら予約順）に呼ぶ
// コールバック内で予約されたイベントは同じUpdateでは発火しない
func (c *Clock) Update(dt time.Duration) {
	c.now += dt

	var due, rest []event
	for _, ev := range c.pending {
		if ev.due <= c.now {
			due = append(due, ev)
		} else {
			rest = append(rest, ev)
		}
	}
	if len(due) == 0 {
		return
	}
	c.pending = rest

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, ev := range due {
		ev.fn()
	}
}
