package loop

import "github.com/tomz197/asteroids-arcade/internal/object"

// GameState is the session phase.
type GameState int

const (
	StateReady    GameState = iota // Title screen, nothing moves
	StatePlaying                   // Active gameplay
	StateGameOver                  // Out of hit points, frozen until reset
)

func (g GameState) String() string {
	switch g {
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Stats is the per-tick summary the UI reads. It is derived from the
// session state and never fed back into it.
type Stats struct {
	State        GameState
	Score        int
	Destroyed    int
	HitPoints    int
	MaxHitPoints int
	Playing      bool
	GameOver     bool
	Invulnerable bool
	Tick         uint64
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventBulletFired EventKind = iota
	EventAsteroidDestroyed
	EventShipHit
	EventGameOver
)

// Event is a tick event at a field position. Hosts use events for effects
// and logging only.
type Event struct {
	Kind EventKind
	X, Y float64
}

// Snapshot is an immutable copy of the session after a tick. Readers may
// hold on to it for as long as they like.
type Snapshot struct {
	Stats     Stats
	Field     object.Field
	Ship      object.Ship
	Bullets   []object.Bullet
	Asteroids []object.Asteroid
	Events    []Event // Events of the tick that produced this snapshot
}
