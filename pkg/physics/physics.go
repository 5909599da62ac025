// Package physics is a minimal arcade-style physics world: axis-aligned
// bodies with velocity, integrated once per frame and optionally kept
// inside the world bounds.
//
// Bodies and the four boundary walls live in a resolv Space. The space
// extends wallThickness past the bounds on every side, so a body that
// left the bounds is always found overlapping the wall it crossed.
package physics

import (
	"math"
	"time"

	"github.com/solarlune/resolv"
)

const (
	tagBody   = "body"
	tagBounds = "bounds"
	tagLeft   = "left"
	tagRight  = "right"
	tagTop    = "top"
	tagBottom = "bottom"

	wallThickness = 64
	cellSize      = 16
	// objects are grown by pad on every side so sub-pixel overlaps with a
	// wall still share a cell with it
	pad = 1
)

// Rect is an axis-aligned rectangle in world coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Body is a rectangular body whose position is its centre.
type Body struct {
	X, Y   float64
	W, H   float64
	VX, VY float64

	// CollideWorldBounds keeps the body fully inside the world bounds.
	CollideWorldBounds bool
	// Bounce is the fraction of velocity kept (and reversed) on a blocked axis.
	Bounce float64

	world *World
	obj   *resolv.Object
}

// Velocity returns the current velocity.
func (b *Body) Velocity() (float64, float64) {
	return b.VX, b.VY
}

// SetVelocity overrides the velocity.
func (b *Body) SetVelocity(vx, vy float64) {
	b.VX, b.VY = vx, vy
}

// Enabled reports whether the body is still registered with a world.
func (b *Body) Enabled() bool {
	return b.world != nil
}

// Bounds returns the body rectangle in world coordinates.
func (b *Body) Bounds() Rect {
	return Rect{X: b.X - b.W/2, Y: b.Y - b.H/2, W: b.W, H: b.H}
}

// World owns the bodies and steps them.
type World struct {
	bounds Rect
	bodies []*Body

	space  *resolv.Space
	spaceW float64
	spaceH float64
}

// NewWorld creates a world with the given bounds. The bounds are fixed
// for the lifetime of the world.
func NewWorld(bounds Rect) *World {
	w := &World{
		bounds: bounds,
		spaceW: bounds.W + 2*wallThickness,
		spaceH: bounds.H + 2*wallThickness,
	}
	w.space = resolv.NewSpace(int(math.Ceil(w.spaceW)), int(math.Ceil(w.spaceH)), cellSize, cellSize)

	t := float64(wallThickness)
	w.space.Add(
		resolv.NewObject(0, 0, t, w.spaceH, tagBounds, tagLeft),
		resolv.NewObject(t+bounds.W, 0, t, w.spaceH, tagBounds, tagRight),
		resolv.NewObject(0, 0, w.spaceW, t, tagBounds, tagTop),
		resolv.NewObject(0, t+bounds.H, w.spaceW, t, tagBounds, tagBottom),
	)
	return w
}

// Bounds returns the world bounds.
func (w *World) Bounds() Rect {
	return w.bounds
}

// Add creates a body centred at (x, y) with size (width, height).
func (w *World) Add(x, y, width, height float64) *Body {
	b := &Body{X: x, Y: y, W: width, H: height, world: w}
	b.obj = resolv.NewObject(0, 0, width, height, tagBody)
	w.space.Add(b.obj)
	w.sync(b)
	w.bodies = append(w.bodies, b)
	return b
}

// Remove detaches the body. Removing twice is a no-op.
func (w *World) Remove(b *Body) {
	if b == nil || b.world != w {
		return
	}
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	w.space.Remove(b.obj)
	b.world = nil
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Step integrates every body by dt: p = p + v*dt, then applies the
// world bounds to bodies that collide with them. There is no gravity.
func (w *World) Step(dt time.Duration) {
	sec := dt.Seconds()
	for _, b := range w.bodies {
		b.X += b.VX * sec
		b.Y += b.VY * sec
		w.sync(b)
		if b.CollideWorldBounds {
			w.constrain(b)
		}
	}
}

// sync moves the body's object to its current rectangle. Positions are
// clamped into the space so the cell lookup never falls outside it.
func (w *World) sync(b *Body) {
	r := b.Bounds()
	b.obj.Position.X = clamp(r.X-w.bounds.X+wallThickness-pad, 0, w.spaceW-1)
	b.obj.Position.Y = clamp(r.Y-w.bounds.Y+wallThickness-pad, 0, w.spaceH-1)
	b.obj.Size.X = math.Max(r.W, 0) + 2*pad
	b.obj.Size.Y = math.Max(r.H, 0) + 2*pad
	b.obj.Update()
}

// constrain clamps the body into the bounds and reflects the velocity on
// the blocked axis. Only the walls the body's object touches are checked.
func (w *World) constrain(b *Body) {
	hit := b.obj.Check(0, 0, tagBounds)
	if hit == nil {
		return
	}

	minX := w.bounds.X + b.W/2
	maxX := w.bounds.X + w.bounds.W - b.W/2
	minY := w.bounds.Y + b.H/2
	maxY := w.bounds.Y + w.bounds.H - b.H/2

	moved := false
	for _, wall := range hit.Objects {
		switch {
		case wall.HasTags(tagLeft) && minX <= maxX && b.X < minX:
			b.X = minX
			b.VX = -b.VX * b.Bounce
		case wall.HasTags(tagRight) && minX <= maxX && b.X > maxX:
			b.X = maxX
			b.VX = -b.VX * b.Bounce
		case wall.HasTags(tagTop) && minY <= maxY && b.Y < minY:
			b.Y = minY
			b.VY = -b.VY * b.Bounce
		case wall.HasTags(tagBottom) && minY <= maxY && b.Y > maxY:
			b.Y = maxY
			b.VY = -b.VY * b.Bounce
		default:
			continue
		}
		moved = true
	}
	if moved {
		w.sync(b)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
