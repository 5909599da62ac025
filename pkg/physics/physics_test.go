package physics

import (
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestWorld_StepIntegratesVelocity(t *testing.T) {
	w := NewWorld(Rect{W: 1024, H: 768})
	b := w.Add(500, 400, 20, 25)
	b.SetVelocity(10, -100)

	w.Step(500 * time.Millisecond)

	if !approx(b.X, 505) || !approx(b.Y, 350) {
		t.Errorf("expected (505, 350), got (%v, %v)", b.X, b.Y)
	}
}

func TestWorld_NoGravity(t *testing.T) {
	w := NewWorld(Rect{W: 100, H: 100})
	b := w.Add(50, 50, 10, 10)
	for i := 0; i < 60; i++ {
		w.Step(time.Second / 60)
	}
	if b.X != 50 || b.Y != 50 || b.VY != 0 {
		t.Errorf("resting body moved: (%v, %v) vy=%v", b.X, b.Y, b.VY)
	}
}

func TestWorld_CollideWorldBounds(t *testing.T) {
	tests := []struct {
		name         string
		vx, vy       float64
		bounce       float64
		wantX, wantY float64
		wantVX       float64
		wantVY       float64
	}{
		{"上端で停止", 0, -1000, 0, 50, 5, 0, 0},
		{"左端で停止", -1000, 0, 0, 10, 50, 0, 0},
		{"右端で反射", 1000, 0, 0.5, 90, 50, -500, 0},
		{"下端で反射", 0, 1000, 1, 50, 95, 0, -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(Rect{W: 100, H: 100})
			b := w.Add(50, 50, 20, 10)
			b.CollideWorldBounds = true
			b.Bounce = tt.bounce
			b.SetVelocity(tt.vx, tt.vy)

			w.Step(time.Second)

			if !approx(b.X, tt.wantX) || !approx(b.Y, tt.wantY) {
				t.Errorf("position: expected (%v, %v), got (%v, %v)", tt.wantX, tt.wantY, b.X, b.Y)
			}
			vx, vy := b.Velocity()
			if !approx(vx, tt.wantVX) || !approx(vy, tt.wantVY) {
				t.Errorf("velocity: expected (%v, %v), got (%v, %v)", tt.wantVX, tt.wantVY, vx, vy)
			}
		})
	}
}

func TestWorld_FreeBodyLeavesBounds(t *testing.T) {
	w := NewWorld(Rect{W: 100, H: 100})
	b := w.Add(50, 50, 10, 10)
	b.SetVelocity(0, -1000)
	w.Step(time.Second)
	if !approx(b.Y, -950) {
		t.Errorf("expected y=-950, got %v", b.Y)
	}
}

func TestWorld_Remove(t *testing.T) {
	w := NewWorld(Rect{W: 100, H: 100})
	a := w.Add(10, 10, 1, 1)
	b := w.Add(20, 20, 1, 1)
	a.SetVelocity(10, 0)

	w.Remove(a)
	w.Remove(a)

	if w.Len() != 1 {
		t.Fatalf("expected 1 body, got %d", w.Len())
	}
	if a.Enabled() || !b.Enabled() {
		t.Error("unexpected enabled state after remove")
	}
	w.Step(time.Second)
	if a.X != 10 {
		t.Error("removed body must not be stepped")
	}
}

func TestWorld_TouchingEdgeIsNotBlocked(t *testing.T) {
	w := NewWorld(Rect{W: 100, H: 100})
	b := w.Add(90, 50, 20, 10) // 右端にちょうど接している
	b.CollideWorldBounds = true
	b.Bounce = 1
	b.SetVelocity(0, -10)

	w.Step(100 * time.Millisecond)

	if !approx(b.X, 90) || !approx(b.Y, 49) {
		t.Errorf("expected (90, 49), got (%v, %v)", b.X, b.Y)
	}
	if vx, vy := b.Velocity(); vx != 0 || vy != -10 {
		t.Errorf("velocity must be untouched, got (%v, %v)", vx, vy)
	}
}

func TestWorld_CornerClampsBothAxes(t *testing.T) {
	w := NewWorld(Rect{X: 10, Y: 20, W: 100, H: 100})
	b := w.Add(60, 70, 10, 10)
	b.CollideWorldBounds = true
	b.SetVelocity(-5000, -5000)

	w.Step(time.Second)

	if !approx(b.X, 15) || !approx(b.Y, 25) {
		t.Errorf("expected top-left corner (15, 25), got (%v, %v)", b.X, b.Y)
	}
	if vx, vy := b.Velocity(); vx != 0 || vy != 0 {
		t.Errorf("expected velocity stopped, got (%v, %v)", vx, vy)
	}
}

func TestWorld_StaysInsideOverManyFrames(t *testing.T) {
	w := NewWorld(Rect{W: 320, H: 240})
	b := w.Add(160, 200, 40, 52)
	b.CollideWorldBounds = true
	b.SetVelocity(35, -100)

	for i := 0; i < 600; i++ {
		w.Step(time.Second / 60)
		r := b.Bounds()
		if r.X < -1e-9 || r.Y < -1e-9 || r.X+r.W > 320+1e-9 || r.Y+r.H > 240+1e-9 {
			t.Fatalf("frame %d: body %+v left the bounds", i, r)
		}
	}
	if !approx(b.Y, 26) {
		t.Errorf("body should rest against the top, got y=%v", b.Y)
	}
}

func TestBody_Bounds(t *testing.T) {
	w := NewWorld(Rect{W: 100, H: 100})
	b := w.Add(50, 40, 20, 10)
	r := b.Bounds()
	if r != (Rect{X: 40, Y: 35, W: 20, H: 10}) {
		t.Errorf("unexpected bounds %+v", r)
	}
	if !r.Contains(40, 45) || r.Contains(61, 40) {
		t.Error("Contains disagrees with the rectangle")
	}
}
