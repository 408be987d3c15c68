package object

import (
	"math"

	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Ship is the player-controlled spaceship. It faces the pointer.
type Ship struct {
	X, Y     float64 // Position (center of ship)
	VX, VY   float64 // Velocity per tick
	Rotation float64 // Heading in radians (0 = pointing right, y grows downward)

	Alive        bool
	HitPoints    int
	MaxHitPoints int

	Invulnerable      bool
	InvulnerableTicks int // Ticks left in the invulnerability window

	FireCooldown int     // Ticks until the next shot is allowed
	Opacity      float64 // Presentation only: 1 = solid, flickers while invulnerable
}

// NewShip creates a ship at full health at the given position, pointing up.
func NewShip(x, y float64, maxHitPoints int) *Ship {
	return &Ship{
		X:            x,
		Y:            y,
		Rotation:     -math.Pi / 2,
		Alive:        true,
		HitPoints:    maxHitPoints,
		MaxHitPoints: maxHitPoints,
		Opacity:      1,
	}
}

// Aim turns the ship toward the pointer. A pointer exactly on the ship
// leaves the heading unchanged.
func (s *Ship) Aim(px, py float64) {
	if angle, ok := physics.Angle(s.X, s.Y, px, py); ok {
		s.Rotation = angle
	}
}

// Thrust adds an impulse along the current heading.
func (s *Ship) Thrust(accel float64) {
	ax, ay := physics.FromAngle(s.Rotation, accel)
	s.VX += ax
	s.VY += ay
}

// Drift damps the velocity, moves the ship, and wraps it around the field.
func (s *Ship) Drift(friction float64, field Field) {
	s.VX *= friction
	s.VY *= friction
	s.X += s.VX
	s.Y += s.VY
	field.WrapPosition(&s.X, &s.Y)
}

// TryFire advances the fire cooldown and reports whether a shot leaves the
// ship this tick. A successful shot restarts the cooldown.
func (s *Ship) TryFire(active bool, cooldownTicks int) bool {
	if s.FireCooldown > 0 {
		s.FireCooldown--
	}
	if !active || s.FireCooldown > 0 {
		return false
	}
	s.FireCooldown = cooldownTicks
	return true
}

// UpdateInvulnerability counts the invulnerability window down by one tick
// and sets the flicker opacity while it lasts.
func (s *Ship) UpdateInvulnerability(flickerRate float64) {
	if !s.Invulnerable {
		return
	}
	s.InvulnerableTicks--
	if s.InvulnerableTicks <= 0 {
		s.InvulnerableTicks = 0
		s.Invulnerable = false
		s.Opacity = 1
		return
	}
	s.Opacity = 0.5 + 0.5*math.Sin(float64(s.InvulnerableTicks)*flickerRate)
}

// Hit removes one hit point and opens the invulnerability window.
// Hit points never drop below zero. Returns true when the ship is out of
// hit points.
func (s *Ship) Hit(invulnerableTicks int) bool {
	s.HitPoints = max(s.HitPoints-1, 0)
	s.Invulnerable = invulnerableTicks > 0
	s.InvulnerableTicks = max(invulnerableTicks, 0)
	if s.HitPoints == 0 {
		s.Alive = false
	}
	return !s.Alive
}

// Wreck marks the ship destroyed and dims it.
func (s *Ship) Wreck(opacity float64) {
	s.Alive = false
	s.Opacity = opacity
}

// Restore returns the ship to its starting condition at (x,y).
func (s *Ship) Restore(x, y float64) {
	s.X, s.Y = x, y
	s.VX, s.VY = 0, 0
	s.Alive = true
	s.HitPoints = s.MaxHitPoints
	s.Invulnerable = false
	s.InvulnerableTicks = 0
	s.FireCooldown = 0
	s.Opacity = 1
}

// Outline returns the triangle vertices of a ship of the given size:
// the nose along the heading and two wings ~143 degrees off it.
func (s *Ship) Outline(size float64) [3]draw.Point {
	const wingAngle = 2.5
	nose := s.Rotation
	left := s.Rotation + wingAngle
	right := s.Rotation - wingAngle

	return [3]draw.Point{
		{X: s.X + math.Cos(nose)*size, Y: s.Y + math.Sin(nose)*size},
		{X: s.X + math.Cos(left)*size*0.7, Y: s.Y + math.Sin(left)*size*0.7},
		{X: s.X + math.Cos(right)*size*0.7, Y: s.Y + math.Sin(right)*size*0.7},
	}
}
