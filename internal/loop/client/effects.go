package client

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
)

// debrisPool is a sync.Pool for reusing debris particles to reduce allocations.
var debrisPool = sync.Pool{
	New: func() any {
		return &debris{}
	},
}

// debris is a short-lived spark thrown off by a collision. It is purely
// visual and never fed back into the session.
type debris struct {
	X, Y    float64 // Field position
	VX, VY  float64 // Field units per frame
	Life    int     // Frames remaining
	MaxLife int     // Initial life (for fade calculation)
}

const (
	debrisSpeed = 4.0  // Field units per frame before variation
	debrisLife  = 30   // Frames before variation
	debrisDrag  = 0.92 // Velocity multiplier per frame
)

// Effects turns tick events into debris particles.
type Effects struct {
	particles []*debris
	rng       *rand.Rand
}

// NewEffects creates an empty effect set. A nil rng is seeded from the clock.
func NewEffects(rng *rand.Rand) *Effects {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Effects{rng: rng}
}

// Apply spawns bursts for the events of one tick.
func (e *Effects) Apply(events []loop.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case loop.EventAsteroidDestroyed:
			e.burst(ev.X, ev.Y, config.DebrisParticlesPerKill, debrisSpeed)
		case loop.EventShipHit:
			e.burst(ev.X, ev.Y, config.DebrisParticlesPerHit, debrisSpeed*1.5)
		case loop.EventGameOver:
			e.burst(ev.X, ev.Y, config.DebrisParticlesPerHit*2, debrisSpeed*2)
		}
	}
}

// burst creates count particles flying out of (x,y) in random directions.
func (e *Effects) burst(x, y float64, count int, speed float64) {
	for range count {
		angle := e.rng.Float64() * 2 * math.Pi
		// Speed 50% to 150%, life 50% to 100%
		spd := speed * (0.5 + e.rng.Float64())
		life := int(debrisLife * (0.5 + e.rng.Float64()*0.5))

		p := debrisPool.Get().(*debris)
		*p = debris{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * spd,
			VY:      math.Sin(angle) * spd,
			Life:    max(life, 1),
			MaxLife: max(life, 1),
		}
		e.particles = append(e.particles, p)
	}
}

// Update advances every particle by one frame and releases expired ones.
func (e *Effects) Update() {
	kept := e.particles[:0]
	for _, p := range e.particles {
		p.Life--
		if p.Life <= 0 {
			debrisPool.Put(p)
			continue
		}
		p.VX *= debrisDrag
		p.VY *= debrisDrag
		p.X += p.VX
		p.Y += p.VY
		kept = append(kept, p)
	}
	clear(e.particles[len(kept):])
	e.particles = kept
}

// Draw plots the particles that are not yet faded out.
func (e *Effects) Draw(canvas *draw.Canvas) {
	for _, p := range e.particles {
		// Skip faded particles (< 25% lifetime)
		if float64(p.Life)/float64(p.MaxLife) < 0.25 {
			continue
		}
		canvas.SetFloat(p.X, p.Y)
	}
}

// Clear releases every particle.
func (e *Effects) Clear() {
	for _, p := range e.particles {
		debrisPool.Put(p)
	}
	clear(e.particles)
	e.particles = e.particles[:0]
}

// Len returns the number of live particles.
func (e *Effects) Len() int {
	return len(e.particles)
}

// Each calls fn for every particle with its remaining life as a fraction
// in (0,1], for hosts that draw particles themselves.
func (e *Effects) Each(fn func(x, y, life float64)) {
	for _, p := range e.particles {
		fn(p.X, p.Y, float64(p.Life)/float64(p.MaxLife))
	}
}
