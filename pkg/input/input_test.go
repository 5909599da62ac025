package input

import "testing"

type fakePump struct {
	minX, minY, maxX, maxY float64
	presses, releases      int
}

func (p *fakePump) Contains(x, y float64) bool {
	return x >= p.minX && x <= p.maxX && y >= p.minY && y <= p.maxY
}
func (p *fakePump) Press()   { p.presses++ }
func (p *fakePump) Release() { p.releases++ }

type fakeTapper struct {
	hit  bool
	taps [][2]float64
}

func (f *fakeTapper) Tap(x, y float64) bool {
	f.taps = append(f.taps, [2]float64{x, y})
	return f.hit
}

func newFakes() (*fakePump, *fakeTapper) {
	return &fakePump{minX: 900, minY: 700, maxX: 950, maxY: 780}, &fakeTapper{}
}

func TestPointerDown_Routing(t *testing.T) {
	tests := []struct {
		name        string
		x, y        float64
		hit         bool
		want        Target
		wantPresses int
		wantTaps    int
	}{
		{"ポンプ上", 920, 750, true, TargetPump, 1, 0},
		{"バルーン上", 300, 200, true, TargetBalloon, 0, 1},
		{"何もない場所", 300, 200, false, TargetNone, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, tp := newFakes()
			tp.hit = tt.hit
			r := NewRouter(p, tp)

			got := r.PointerDown(tt.x, tt.y)
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if p.presses != tt.wantPresses {
				t.Errorf("expected %d presses, got %d", tt.wantPresses, p.presses)
			}
			if len(tp.taps) != tt.wantTaps {
				t.Errorf("expected %d taps, got %d", tt.wantTaps, len(tp.taps))
			}
		})
	}
}

func TestPointerUp_ReleasesOnlyOverPump(t *testing.T) {
	p, tp := newFakes()
	r := NewRouter(p, tp)

	r.PointerUp(100, 100)
	if p.releases != 0 {
		t.Error("release outside the pump should be ignored")
	}
	r.PointerUp(910, 710)
	if p.releases != 1 {
		t.Errorf("expected 1 release, got %d", p.releases)
	}
}

func TestPops(t *testing.T) {
	p, tp := newFakes()
	tp.hit = true
	r := NewRouter(p, tp)

	r.PointerDown(10, 10)
	r.PointerDown(20, 20)
	r.PointerDown(920, 750)
	if r.Pops() != 2 {
		t.Errorf("expected 2 pops, got %d", r.Pops())
	}
}

func TestTarget_String(t *testing.T) {
	if TargetPump.String() != "pump" || TargetBalloon.String() != "balloon" || TargetNone.String() != "none" {
		t.Error("unexpected target names")
	}
}
