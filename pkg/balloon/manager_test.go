package balloon

import (
	"bytes"
	"errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"
)

var testNozzle = Point{X: 715, Y: 514}

func newTestManager(s *fakeStage, opts ...Option) *Manager {
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)
	return NewManager(s, testNozzle, opts...)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestInflate_CreatesBalloonOnEmptyPool(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	if !m.Inflate() {
		t.Fatal("expected first inflate to be accepted")
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 balloon, got %d", m.Len())
	}

	b := m.At(0)
	if b.State() != Inflating {
		t.Errorf("expected Inflating, got %v", b.State())
	}
	if b.Clicks() != 1 {
		t.Errorf("expected 1 click, got %d", b.Clicks())
	}
	x, y := b.Position()
	if x != testNozzle.X || y != testNozzle.Y {
		t.Errorf("expected balloon at nozzle (%v,%v), got (%v,%v)", testNozzle.X, testNozzle.Y, x, y)
	}
	if !s.bodies[0].physics || !s.bodies[0].collideWorld {
		t.Error("expected physics body with world bounds collision")
	}
	if vx, vy := b.Velocity(); vx != 0 || vy != 0 {
		t.Errorf("expected no initial velocity, got (%v,%v)", vx, vy)
	}
	if s.bodies[0].scale != BaseScale {
		t.Errorf("expected initial scale %v before tween, got %v", BaseScale, s.bodies[0].scale)
	}
	if s.letters[0].scale != 0.02 {
		t.Errorf("expected letter initial scale 0.02, got %v", s.letters[0].scale)
	}
	if len(s.tweens) != 1 {
		t.Fatalf("expected 1 tween, got %d", len(s.tweens))
	}
	tw := s.tweens[0]
	if !almostEqual(tw.to, 0.2) || tw.duration != 200*time.Millisecond {
		t.Errorf("unexpected tween to=%v duration=%v", tw.to, tw.duration)
	}
	if len(tw.targets) != 2 {
		t.Errorf("expected tween on balloon and letter, got %d targets", len(tw.targets))
	}
}

func TestInflate_GuardBlocksWhileAnimating(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	m.Inflate()
	if !m.IsInflating() {
		t.Fatal("guard should be set during inflate animation")
	}

	for i := 0; i < 5; i++ {
		if m.Inflate() {
			t.Fatal("inflate should be ignored while guard is set")
		}
	}
	if m.At(0).Clicks() != 1 {
		t.Errorf("ignored presses must not add clicks, got %d", m.At(0).Clicks())
	}
	if len(s.tweens) != 1 {
		t.Errorf("ignored presses must not start tweens, got %d", len(s.tweens))
	}
	if m.Stats().Ignored != 5 {
		t.Errorf("expected 5 ignored presses, got %d", m.Stats().Ignored)
	}

	s.finishTweens()
	if m.IsInflating() {
		t.Error("guard should be cleared after non-final inflate completes")
	}
}

// 空のプールで4回ポンプすると1個生成され、スケール0.5で飛行状態になる
func TestScenarioA_FourPressesLaunch(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for i := 0; i < MaxClicks; i++ {
		if !pump(m, s) {
			t.Fatalf("press %d was rejected", i+1)
		}
	}

	if m.Len() != 1 {
		t.Fatalf("expected exactly 1 balloon, got %d", m.Len())
	}
	b := m.At(0)
	if b.State() != Flying {
		t.Fatalf("expected Flying, got %v", b.State())
	}
	if !almostEqual(b.Scale(), 0.5) {
		t.Errorf("expected scale 0.5, got %v", b.Scale())
	}
	if vx, vy := b.Velocity(); vx != 0 || vy != -100 {
		t.Errorf("expected velocity (0,-100), got (%v,%v)", vx, vy)
	}
	if !b.HasRope() || s.ropes[0].scale != 0.4 {
		t.Error("expected rope with scale 0.4")
	}
	if m.IsInflating() {
		t.Error("guard should be cleared after launch")
	}
	if len(s.timers) != 1 || s.timers[0].delay != 2*time.Second {
		t.Errorf("expected one 2s direction change timer, got %+v", s.timers)
	}
	st := m.Stats()
	if st.Created != 1 || st.Launched != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
}

func TestScaleForClicks(t *testing.T) {
	tests := []struct {
		clicks int
		want   float64
	}{
		{1, 0.2},
		{2, 0.3},
		{3, 0.4},
		{4, 0.5},
	}
	for _, tt := range tests {
		if got := ScaleForClicks(tt.clicks); !almostEqual(got, tt.want) {
			t.Errorf("ScaleForClicks(%d) = %v, want %v", tt.clicks, got, tt.want)
		}
	}
}

func TestInflate_ScaleAfterEachClick(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for k := 1; k <= MaxClicks; k++ {
		pump(m, s)
		b := m.At(0)
		if b.Clicks() != k {
			t.Fatalf("expected %d clicks, got %d", k, b.Clicks())
		}
		if !almostEqual(b.Scale(), ScaleForClicks(k)) {
			t.Errorf("after %d clicks expected scale %v, got %v", k, ScaleForClicks(k), b.Scale())
		}
		if !almostEqual(s.letters[0].scale, b.Scale()) {
			t.Errorf("letter scale %v should match balloon scale %v", s.letters[0].scale, b.Scale())
		}
	}
}

func TestInflate_NextPressAfterLaunchCreatesNewBalloon(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for i := 0; i < MaxClicks; i++ {
		pump(m, s)
	}
	pump(m, s)

	if m.Len() != 2 {
		t.Fatalf("expected 2 balloons, got %d", m.Len())
	}
	if m.At(0).State() != Flying || m.At(1).State() != Inflating {
		t.Errorf("unexpected states: %v, %v", m.At(0).State(), m.At(1).State())
	}
	if m.At(0).Clicks() != MaxClicks {
		t.Errorf("flying balloon clicks changed: %d", m.At(0).Clicks())
	}
}

func TestCursor_Cycles(t *testing.T) {
	c := NewCursor()
	for i := 0; i < 60; i++ {
		skin, letter := c.Next()
		if skin != i%SkinCount+1 {
			t.Fatalf("balloon %d: expected skin %d, got %d", i+1, i%SkinCount+1, skin)
		}
		if letter != i%LetterCount+1 {
			t.Fatalf("balloon %d: expected letter %d, got %d", i+1, i%LetterCount+1, letter)
		}
	}
}

// 11個目のバルーンは画像1を再利用し、文字は独立して進む
func TestScenarioC_EleventhBalloonReusesFirstSkin(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for n := 0; n < 11; n++ {
		for i := 0; i < MaxClicks; i++ {
			pump(m, s)
		}
	}

	if m.Len() != 11 {
		t.Fatalf("expected 11 balloons, got %d", m.Len())
	}
	eleventh := m.At(10)
	if eleventh.Skin() != 1 {
		t.Errorf("expected skin 1 for 11th balloon, got %d", eleventh.Skin())
	}
	if eleventh.Letter() != 11 {
		t.Errorf("expected letter 11 for 11th balloon, got %d", eleventh.Letter())
	}
	if s.bodies[10].index != 1 || s.letters[10].index != 11 {
		t.Errorf("stage received skin=%d letter=%d", s.bodies[10].index, s.letters[10].index)
	}
}

func TestCursor_AdvancesPerBalloonNotPerClick(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	pump(m, s)
	pump(m, s)
	pump(m, s)

	skin, letter := m.Cursor().Peek()
	if skin != 2 || letter != 2 {
		t.Errorf("expected cursor at (2,2) after one balloon, got (%d,%d)", skin, letter)
	}
}

func TestBurst_RemovesOnlyTarget(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for n := 0; n < 3; n++ {
		for i := 0; i < MaxClicks; i++ {
			pump(m, s)
		}
	}
	s.bodies[1].SetPosition(300, 200)
	first, third := m.At(0), m.At(2)
	firstSnap, thirdSnap := first.Snapshot(), third.Snapshot()

	if !m.Burst(1) {
		t.Fatal("burst should succeed")
	}

	if m.Len() != 2 {
		t.Fatalf("expected 2 balloons, got %d", m.Len())
	}
	if m.At(0) != first || m.At(1) != third {
		t.Error("remaining balloons changed order or identity")
	}
	if first.Snapshot() != firstSnap || third.Snapshot() != thirdSnap {
		t.Error("remaining balloons' state changed")
	}
	if len(s.bursts) != 1 || s.bursts[0] != (burstPoint{300, 200}) {
		t.Errorf("expected one burst at (300,200), got %+v", s.bursts)
	}
	if !s.bodies[1].destroyed || !s.letters[1].destroyed || !s.ropes[1].destroyed {
		t.Error("balloon, letter and rope should all be destroyed")
	}
	if s.bodies[0].destroyed || s.bodies[2].destroyed {
		t.Error("other balloons must not be destroyed")
	}
}

func TestBurst_OutOfRange(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	if m.Burst(0) || m.Burst(-1) {
		t.Error("burst on empty pool should be a no-op")
	}
	if len(s.bursts) != 0 {
		t.Error("no particles expected")
	}
}

func TestBurst_DoesNotTouchGuard(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for i := 0; i < MaxClicks; i++ {
		pump(m, s)
	}
	m.Inflate() // 2個目の膨張中
	if !m.IsInflating() {
		t.Fatal("guard should be set")
	}

	m.Burst(0)
	if !m.IsInflating() {
		t.Error("burst must not clear the guard")
	}
	s.finishTweens()
	if m.IsInflating() {
		t.Error("guard should clear after inflate completes")
	}
}

func TestBurst_WhileInflatingDoesNotLaunch(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for i := 0; i < MaxClicks-1; i++ {
		pump(m, s)
	}
	m.Inflate() // 4回目の膨張中
	m.Burst(0)
	s.finishTweens()

	if m.IsInflating() {
		t.Error("guard should be released")
	}
	if len(s.ropes) != 0 || len(s.timers) != 0 {
		t.Error("popped balloon must not launch")
	}
	if m.Stats().Launched != 0 {
		t.Errorf("expected no launches, got %d", m.Stats().Launched)
	}
}

// 発射から2秒後、残っていれば横速度は[-50,50]、縦速度は-100に付け直される
func TestScenarioD_DirectionChange(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for i := 0; i < MaxClicks; i++ {
		pump(m, s)
	}
	for i := 0; i < 30; i++ {
		m.Update()
	}
	b := m.At(0)
	s.fireTimers()

	vx, vy := b.Velocity()
	if vx < -50 || vx > 50 || vx != math.Trunc(vx) {
		t.Errorf("expected integer vx in [-50,50], got %v", vx)
	}
	if vy != -100 {
		t.Errorf("expected vy -100, got %v", vy)
	}
}

func TestScenarioD_PoppedBeforeTimerIsNoop(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for i := 0; i < MaxClicks; i++ {
		pump(m, s)
	}
	s.bodies[0].vx, s.bodies[0].vy = 7, -3
	m.Burst(0)
	s.fireTimers()

	if s.bodies[0].vx != 7 || s.bodies[0].vy != -3 {
		t.Error("direction change must not touch a popped balloon")
	}
}

func TestHitTest_FirstFlyingWins(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for n := 0; n < 2; n++ {
		for i := 0; i < MaxClicks; i++ {
			pump(m, s)
		}
	}
	m.Inflate() // 3個目は膨張中のまま
	s.finishTweens()

	// 3個とも同じ位置に重ねる
	for _, b := range s.bodies {
		b.SetPosition(400, 300)
	}

	i, ok := m.HitTest(400, 300)
	if !ok || i != 0 {
		t.Fatalf("expected first flying balloon (0), got %d, %v", i, ok)
	}

	m.Tap(400, 300)
	m.Tap(400, 300)
	if m.Len() != 1 {
		t.Fatalf("expected inflating balloon to remain, got %d balloons", m.Len())
	}
	if m.Tap(400, 300) {
		t.Error("inflating balloon must not be tappable")
	}
	if _, ok := m.HitTest(0, 0); ok {
		t.Error("miss expected far from any balloon")
	}
}

func TestTap_OnePopPerTap(t *testing.T) {
	s := newFakeStage()
	m := newTestManager(s)

	for n := 0; n < 3; n++ {
		for i := 0; i < MaxClicks; i++ {
			pump(m, s)
		}
	}
	for _, b := range s.bodies {
		b.SetPosition(100, 100)
	}

	if !m.Tap(100, 100) {
		t.Fatal("expected a pop")
	}
	if m.Len() != 2 || len(s.bursts) != 1 {
		t.Errorf("expected exactly one pop per tap, pool=%d bursts=%d", m.Len(), len(s.bursts))
	}
}

func TestUpdate_DriftAndDecorations(t *testing.T) {
	s := newFakeStage()
	// IntN(21)=20 → +10, IntN(11)=10 → +5
	r := &seqRand{vals: []int{20, 10}}
	m := NewManager(s, testNozzle, WithRand(r))

	for i := 0; i < MaxClicks; i++ {
		pump(m, s)
	}
	m.Inflate() // 2個目（膨張中）は揺らさない
	s.bodies[0].SetPosition(500, 400)

	m.Update()
	m.Update()

	if s.bodies[0].vx != 20 || s.bodies[0].vy != -90 {
		t.Errorf("expected accumulated velocity (20,-90), got (%v,%v)", s.bodies[0].vx, s.bodies[0].vy)
	}
	if s.ropes[0].x != 500 || s.ropes[0].y != 416 {
		t.Errorf("expected rope at (500,416), got (%v,%v)", s.ropes[0].x, s.ropes[0].y)
	}
	if s.letters[0].x != 500 || s.letters[0].y != 400 {
		t.Errorf("expected letter centred at (500,400), got (%v,%v)", s.letters[0].x, s.letters[0].y)
	}
	if s.bodies[1].vx != 0 || s.bodies[1].vy != 0 {
		t.Error("inflating balloon must not drift")
	}
}

func TestUpdate_DriftIsUnbounded(t *testing.T) {
	s := newFakeStage()
	m := NewManager(s, testNozzle, WithRand(&seqRand{vals: []int{20, 10}}))

	for i := 0; i < MaxClicks; i++ {
		pump(m, s)
	}
	for i := 0; i < 1000; i++ {
		m.Update()
	}
	if s.bodies[0].vx != 10000 {
		t.Errorf("expected vx to keep growing to 10000, got %v", s.bodies[0].vx)
	}
}

func TestLaunch_WithoutPhysicsLeavesGuardSet(t *testing.T) {
	s := newFakeStage()
	s.noPhysics = true
	var buf bytes.Buffer
	m := newTestManager(s, WithLogger(newBufferLogger(&buf)))

	for i := 0; i < MaxClicks; i++ {
		pump(m, s)
	}

	if m.At(0).State() != Flying {
		t.Fatal("balloon should be marked flying")
	}
	if !m.IsInflating() {
		t.Error("guard stays set when no physics body is available")
	}
	if m.Inflate() {
		t.Error("further inflation should be frozen")
	}
	if len(s.timers) != 0 {
		t.Error("no direction change without a body")
	}
	if !strings.Contains(buf.String(), "without physics body") {
		t.Errorf("expected warning log, got: %s", buf.String())
	}
}

func TestSettings_Custom(t *testing.T) {
	s := newFakeStage()
	st := DefaultSettings()
	st.InflateDuration = Duration(50 * time.Millisecond)
	st.LaunchVelocityY = -250
	st.DirectionChangeDelay = Duration(time.Second)
	m := newTestManager(s, WithSettings(st))

	for i := 0; i < MaxClicks; i++ {
		m.Inflate()
		if s.tweens[0].duration != 50*time.Millisecond {
			t.Fatalf("expected 50ms tween, got %v", s.tweens[0].duration)
		}
		s.finishTweens()
	}
	if _, vy := m.At(0).Velocity(); vy != -250 {
		t.Errorf("expected launch vy -250, got %v", vy)
	}
	if s.timers[0].delay != time.Second {
		t.Errorf("expected 1s delay, got %v", s.timers[0].delay)
	}
}

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, s Settings)
	}{
		{
			name:  "空オブジェクトは既定値",
			input: `{}`,
			check: func(t *testing.T, s Settings) {
				if s != DefaultSettings() {
					t.Errorf("expected defaults, got %+v", s)
				}
			},
		},
		{
			name:  "文字列の時間",
			input: `{"inflateDuration": "350ms", "driftX": 3}`,
			check: func(t *testing.T, s Settings) {
				if time.Duration(s.InflateDuration) != 350*time.Millisecond || s.DriftX != 3 {
					t.Errorf("unexpected settings: %+v", s)
				}
			},
		},
		{
			name:  "ミリ秒の数値",
			input: `{"directionChangeDelay": 1500}`,
			check: func(t *testing.T, s Settings) {
				if time.Duration(s.DirectionChangeDelay) != 1500*time.Millisecond {
					t.Errorf("unexpected delay: %v", time.Duration(s.DirectionChangeDelay))
				}
			},
		},
		{name: "未知のキー", input: `{"maxSpeed": 3}`, wantErr: true},
		{name: "負の揺らぎ", input: `{"driftY": -1}`, wantErr: true},
		{name: "ゼロの時間", input: `{"inflateDuration": "0s"}`, wantErr: true},
		{name: "不正な時間", input: `{"inflateDuration": "soon"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadSettings(strings.NewReader(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrInvalidSettings) {
					t.Errorf("expected ErrInvalidSettings, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, s)
		})
	}
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	d := Duration(200 * time.Millisecond)
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != `"200ms"` {
		t.Errorf("expected \"200ms\", got %s", data)
	}
}

func TestStateString(t *testing.T) {
	if Inflating.String() != "Inflating" || Flying.String() != "Flying" || State(9).String() != "Unknown" {
		t.Error("unexpected state names")
	}
}
