// Package particle is a small one-shot particle emitter used for burst
// effects. Each particle's scale over its lifetime is a gween tween, which
// also decides when the particle dies.
package particle

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Range is an inclusive [Min, Max] float range.
type Range struct {
	Min, Max float64
}

func (r Range) pick(rnd *rand.Rand) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rnd.Float64()*(r.Max-r.Min)
}

// Config describes how emitted particles behave.
type Config struct {
	Speed      Range   // pixels per second
	Angle      Range   // degrees, 0 = +x, clockwise with y down
	GravityY   float64 // pixels per second squared
	ScaleStart float64
	ScaleEnd   float64
	Lifespan   time.Duration
	Ease       ease.TweenFunc // scale curve, linear when nil
}

// BurstConfig is the balloon pop effect.
func BurstConfig() Config {
	return Config{
		Speed:      Range{Min: 100, Max: 300},
		Angle:      Range{Min: 0, Max: 360},
		GravityY:   200,
		ScaleStart: 0.3,
		ScaleEnd:   0,
		Lifespan:   500 * time.Millisecond,
	}
}

// BurstCount is the number of particles in one pop.
const BurstCount = 10

// Particle is a single live particle.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Scale  float64

	gravity float64
	life    *gween.Tween
}

// System owns every live particle.
type System struct {
	texture   *ebiten.Image
	rnd       *rand.Rand
	particles []Particle
}

// NewSystem creates a particle system drawing with texture (may be nil
// for headless use).
func NewSystem(texture *ebiten.Image, rnd *rand.Rand) *System {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 1))
	}
	return &System{
		texture:   texture,
		rnd:       rnd,
		particles: make([]Particle, 0, 64),
	}
}

// SetTexture replaces the texture used by Draw.
func (s *System) SetTexture(texture *ebiten.Image) {
	s.texture = texture
}

// HasTexture reports whether Draw has anything to draw with.
func (s *System) HasTexture() bool {
	return s.texture != nil
}

// Explode emits n particles at (x, y) at once.
func (s *System) Explode(cfg Config, n int, x, y float64) {
	easing := cfg.Ease
	if easing == nil {
		easing = ease.Linear
	}
	life := float32(cfg.Lifespan.Seconds())
	for i := 0; i < n; i++ {
		speed := cfg.Speed.pick(s.rnd)
		angle := cfg.Angle.pick(s.rnd) * math.Pi / 180
		s.particles = append(s.particles, Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Scale:   cfg.ScaleStart,
			gravity: cfg.GravityY,
			life:    gween.New(float32(cfg.ScaleStart), float32(cfg.ScaleEnd), life, easing),
		})
	}
}

// Update ages, integrates and culls particles.
func (s *System) Update(dt time.Duration) {
	sec := dt.Seconds()
	alive := 0
	for i := range s.particles {
		p := &s.particles[i]
		scale, dead := p.life.Update(float32(sec))
		if dead {
			continue
		}
		p.VY += p.gravity * sec
		p.X += p.VX * sec
		p.Y += p.VY * sec
		p.Scale = float64(scale)

		s.particles[alive] = *p
		alive++
	}
	s.particles = s.particles[:alive]
}

// Count returns the current number of live particles.
func (s *System) Count() int {
	return len(s.particles)
}

// Particles returns the live particles.
func (s *System) Particles() []Particle {
	return s.particles
}

// Draw renders each particle centred on its position.
func (s *System) Draw(screen *ebiten.Image) {
	if s.texture == nil {
		return
	}
	b := s.texture.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	for _, p := range s.particles {
		if p.Scale <= 0 {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-w/2, -h/2)
		op.GeoM.Scale(p.Scale, p.Scale)
		op.GeoM.Translate(p.X, p.Y)
		screen.DrawImage(s.texture, op)
	}
}
