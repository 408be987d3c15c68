package object

import "github.com/tomz197/asteroids-arcade/internal/draw"

// Asteroid is a drifting space rock. Its polygon is cosmetic; collisions
// always treat it as a point with a fixed hit radius.
type Asteroid struct {
	X, Y          float64   // Position (center)
	VX, VY        float64   // Velocity per tick
	Rotation      float64   // Current rotation angle
	RotationSpeed float64   // Radians per tick
	Radius        float64   // Nominal polygon radius
	Vertices      []float64 // Vertex distances from center, fixed at creation
}

// Update moves and rotates the asteroid by one tick. Returns true when it has
// drifted more than cullMargin outside the field and should be replaced.
func (a *Asteroid) Update(field Field, cullMargin float64) bool {
	a.X += a.VX
	a.Y += a.VY
	a.Rotation += a.RotationSpeed
	return field.Beyond(a.X, a.Y, cullMargin)
}

// Outline appends the polygon vertices to buf and returns it.
func (a *Asteroid) Outline(buf []draw.Point) []draw.Point {
	return rotatePoints(buf, a.X, a.Y, a.Rotation, a.Vertices)
}
