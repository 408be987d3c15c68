// Package loop runs the simulation: one Session per player, advanced one
// tick at a time by a host frame callback.
package loop

import (
	"math/rand"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/object"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Session owns all simulation state for one player. Tick and Reset are
// serialized by the session mutex; Snapshot is lock-free.
type Session struct {
	mu sync.Mutex

	tuning  config.Tuning
	field   object.Field
	spawner *object.AsteroidSpawner

	state     GameState
	ship      *object.Ship
	bullets   []object.Bullet
	asteroids []object.Asteroid
	toSpawn   []object.Asteroid // Replacements added after the current phase
	score     int
	tick      uint64
	events    []Event

	// Reused by the resolver between ticks
	grid       *physics.Grid
	removed    []bool
	candidates []int

	snapshot atomic.Pointer[Snapshot]
}

// NewSession validates the tuning, places the ship in the middle of the
// field and spawns the initial asteroid population. A nil rng is seeded
// from the clock.
func NewSession(tuning config.Tuning, rng *rand.Rand) (*Session, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	field := object.Field{Width: tuning.Field.Width, Height: tuning.Field.Height}
	cx, cy := field.Center()
	margin := tuning.Asteroid.CullMargin

	s := &Session{
		tuning:  tuning,
		field:   field,
		spawner: object.NewAsteroidSpawner(field, tuning.Asteroid, rng),
		state:   StateReady,
		ship:    object.NewShip(cx, cy, tuning.Ship.MaxHitPoints),
		grid: physics.NewGrid(-margin, -margin, field.Width+margin, field.Height+margin,
			tuning.LargestHitRadius()),
	}
	s.asteroids = s.spawner.Populate(tuning.Asteroid.Count, cx, cy)
	s.publish()
	return s, nil
}

// Tuning returns the parameters the session was built with.
func (s *Session) Tuning() config.Tuning {
	return s.tuning
}

// Start leaves the title screen. It does nothing in any other state.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return
	}
	s.state = StatePlaying
	s.publish()
}

// Reset restores score, hit points and ship state and resumes play.
// The asteroid field is left as is.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cx, cy := s.field.Center()
	s.ship.Restore(cx, cy)
	s.bullets = s.bullets[:0]
	s.score = 0
	s.events = s.events[:0]
	s.state = StatePlaying
	s.publish()
}

// Snapshot returns the state published by the most recent tick, start or reset.
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// Tick advances the simulation by one step using the given controls.
// Outside StatePlaying it does nothing.
func (s *Session) Tick(controls input.Controls) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return
	}

	s.tick++
	s.events = s.events[:0]

	s.updateShip(controls)
	s.fire(controls)
	s.updateBullets()
	s.updateAsteroids()
	s.flushSpawned()

	s.resolveCollisions()
	s.flushSpawned()

	s.publish()
}

// spawn queues a replacement asteroid aimed at the ship's current position.
func (s *Session) spawn() {
	s.toSpawn = append(s.toSpawn, s.spawner.Spawn(s.ship.X, s.ship.Y))
}

// flushSpawned appends queued asteroids to the live list and clears the queue.
func (s *Session) flushSpawned() {
	s.asteroids = append(s.asteroids, s.toSpawn...)
	s.toSpawn = s.toSpawn[:0]
}

func (s *Session) emit(kind EventKind, x, y float64) {
	s.events = append(s.events, Event{Kind: kind, X: x, Y: y})
}

func (s *Session) stats() Stats {
	return Stats{
		State:        s.state,
		Score:        s.score,
		Destroyed:    s.score / s.tuning.Score.PointsPerKill,
		HitPoints:    s.ship.HitPoints,
		MaxHitPoints: s.ship.MaxHitPoints,
		Playing:      s.state == StatePlaying,
		GameOver:     s.state == StateGameOver,
		Invulnerable: s.ship.Invulnerable,
		Tick:         s.tick,
	}
}

// publish stores a fresh snapshot. Slices are cloned so the snapshot never
// aliases memory the next tick will write.
func (s *Session) publish() {
	s.snapshot.Store(&Snapshot{
		Stats:     s.stats(),
		Field:     s.field,
		Ship:      *s.ship,
		Bullets:   slices.Clone(s.bullets),
		Asteroids: slices.Clone(s.asteroids),
		Events:    slices.Clone(s.events),
	})
}
