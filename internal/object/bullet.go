package object

import "github.com/tomz197/asteroids-arcade/internal/physics"

// Bullet is a shot fired by the ship.
type Bullet struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity per tick
	Life   int     // Ticks remaining before removal
}

// NewBullet creates a bullet at (x,y) travelling along heading at speed.
func NewBullet(x, y, heading, speed float64, life int) Bullet {
	vx, vy := physics.FromAngle(heading, speed)
	return Bullet{
		X:    x,
		Y:    y,
		VX:   vx,
		VY:   vy,
		Life: life,
	}
}

// Update moves the bullet one tick and burns one tick of life.
// Returns true if the bullet should be removed.
func (b *Bullet) Update(field Field) bool {
	b.X += b.VX
	b.Y += b.VY
	b.Life--
	return b.Life <= 0 || !field.Contains(b.X, b.Y)
}
