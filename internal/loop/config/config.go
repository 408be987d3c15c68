// Package config centralizes all tunable game parameters.
//
// The constants are the defaults. A YAML tuning file can override any subset
// of them at startup (see Load) and, for long-running hosts, on the fly
// through a Watcher.
package config

import "time"

// Field dimensions - the bounded play area in logical units.
// Renderers scale this to whatever surface they draw on.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Ship
const (
	MaxHitPoints         = 4
	ShipThrustAccel      = 0.25 // Velocity added per tick while thrusting
	ShipFriction         = 0.98 // Velocity multiplier applied every tick
	ShipHitRadius        = 36.0 // Ship-asteroid center distance that counts as a hit
	InvulnerabilityTicks = 120  // ~2 seconds at 60 ticks per second
	FlickerRate          = 0.4  // Radians of sine phase per remaining tick
	DestroyedOpacity     = 0.3
)

// Bullets
const (
	BulletSpeed       = 9.0
	BulletLifeTicks   = 70
	FireCooldownTicks = 8    // Ticks between shots while fire is held
	BulletHitRadius   = 28.0 // Bullet-asteroid center distance that counts as a hit
)

// Asteroids
const (
	AsteroidCount            = 8
	AsteroidMinSpeed         = 1.0
	AsteroidMaxSpeed         = 2.5
	AsteroidMaxRotationSpeed = 0.04 // Radians per tick, either direction
	AsteroidMinRadius        = 18.0 // Cosmetic polygon size, collisions stay circular
	AsteroidMaxRadius        = 30.0
	AsteroidSpawnMargin      = 60.0  // Distance outside the field where asteroids appear
	AsteroidCullMargin       = 140.0 // Distance outside the field past which they are replaced
)

// Scoring
const (
	PointsPerKill = 10
)

// Frame cadence
const (
	TicksPerSecond = 60
	FrameTime      = time.Second / TicksPerSecond
)

// Terminal rendering
const (
	MaxTermWidth           = 200 // Columns beyond this are left as border
	MaxTermHeight          = 60
	ThrustKeyHold          = 120 * time.Millisecond // Terminals report no key release
	DebrisParticlesPerKill = 10
	DebrisParticlesPerHit  = 16
)
