package pump

import (
	"image"
	"testing"
	"time"

	"github.com/zurustar/balloon-pump/pkg/balloon"
	"github.com/zurustar/balloon-pump/pkg/sprite"
	"github.com/zurustar/balloon-pump/pkg/tween"
)

type countingInflater struct {
	calls  int
	accept bool
}

func (c *countingInflater) Inflate() bool {
	c.calls++
	return c.accept
}

func texture(w, h int) *sprite.Texture {
	return sprite.NewTexture(image.NewRGBA(image.Rect(0, 0, w, h)))
}

func newTestPump(inf Inflater) (*Pump, *tween.Manager, *sprite.SpriteManager) {
	sm := sprite.NewSpriteManager()
	tm := tween.NewManager()
	tex := Textures{
		Body:   texture(120, 200),
		Handle: texture(160, 240),
		Outlet: texture(200, 60),
		Cloud:  texture(300, 120),
	}
	p := New(sm, tex, NewLayout(BaseFor(1024, 768)), tm, inf)
	return p, tm, sm
}

func TestLayout(t *testing.T) {
	l := NewLayout(BaseFor(1024, 768))

	tests := []struct {
		name string
		got  balloon.Point
		want balloon.Point
	}{
		{"基準点", l.Base, balloon.Point{X: 924, Y: 758}},
		{"本体", l.Body, balloon.Point{X: 924, Y: 778}},
		{"ハンドル", l.Handle, balloon.Point{X: 924, Y: 638}},
		{"ホース", l.Outlet, balloon.Point{X: 774, Y: 738}},
		{"雲", l.Cloud, balloon.Point{X: 924, Y: 883}},
		{"吹き出し口", l.Nozzle, balloon.Point{X: 715, Y: 514}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, tt.got)
			}
		})
	}
}

func TestNew_PlacesParts(t *testing.T) {
	p, _, sm := newTestPump(&countingInflater{})
	if sm.Count() != 4 {
		t.Fatalf("expected 4 sprites, got %d", sm.Count())
	}
	if p.Body().Depth() != DepthFront || p.Handle().Depth() != DepthBack {
		t.Error("unexpected depths")
	}
	ox, oy := p.Body().Origin()
	if ox != 0.5 || oy != 1 {
		t.Errorf("expected bottom-centre origin, got (%v, %v)", ox, oy)
	}
	if p.Body().Scale() != PartScale {
		t.Errorf("expected scale %v, got %v", PartScale, p.Body().Scale())
	}
}

func TestContains_UsesBodyBounds(t *testing.T) {
	p, _, _ := newTestPump(&countingInflater{})
	// 本体 120x200 をスケール0.5、原点(0.5,1)で (924, 778) に配置
	if !p.Contains(924, 720) {
		t.Error("point on the body should hit")
	}
	if !p.Contains(894, 678) {
		t.Error("top-left corner should hit")
	}
	if p.Contains(924, 670) || p.Contains(990, 720) {
		t.Error("points outside the body should not hit")
	}
}

func TestPress_AnimatesEvenWhenRejected(t *testing.T) {
	inf := &countingInflater{accept: false}
	p, tm, _ := newTestPump(inf)

	p.Press()
	if inf.calls != 1 {
		t.Errorf("expected 1 inflate call, got %d", inf.calls)
	}
	if !p.Animating() || tm.Len() != 2 {
		t.Fatalf("expected 2 running pump tweens, got %d", tm.Len())
	}

	tm.Update(AnimDuration)
	_, hy := p.Handle().Position()
	_, by := p.Body().Position()
	if hy != 638+HandleTravel || by != 778+BodyTravel {
		t.Errorf("expected handle %v body %v at the bottom, got %v %v", 638+HandleTravel, 778+BodyTravel, hy, by)
	}

	tm.Update(AnimDuration)
	_, hy = p.Handle().Position()
	_, by = p.Body().Position()
	if hy != 638 || by != 778 {
		t.Errorf("expected parts back at rest, got handle %v body %v", hy, by)
	}
	if p.Animating() {
		t.Error("animation should have finished")
	}
}

func TestRelease_SnapsBackAndCancels(t *testing.T) {
	p, tm, _ := newTestPump(&countingInflater{accept: true})

	p.Press()
	tm.Update(100 * time.Millisecond)
	_, hy := p.Handle().Position()
	if hy == 638 {
		t.Fatal("handle should be displaced mid-animation")
	}

	p.Release()
	_, hy = p.Handle().Position()
	_, by := p.Body().Position()
	if hy != 638 || by != 778 {
		t.Errorf("expected rest position after release, got handle %v body %v", hy, by)
	}
	if p.Animating() || p.Pressed() {
		t.Error("release should stop the animation")
	}

	tm.Update(time.Second)
	_, hy = p.Handle().Position()
	if hy != 638 {
		t.Errorf("stopped tween must not move the handle, got %v", hy)
	}
}

func TestPress_RestartsAnimation(t *testing.T) {
	inf := &countingInflater{accept: true}
	p, tm, _ := newTestPump(inf)

	p.Press()
	tm.Update(100 * time.Millisecond)
	p.Press()

	if inf.calls != 2 || p.Presses() != 2 {
		t.Errorf("expected 2 presses, got calls=%d presses=%d", inf.calls, p.Presses())
	}
	if tm.Len() != 2 {
		t.Errorf("previous animation should be replaced, got %d tweens", tm.Len())
	}
}
