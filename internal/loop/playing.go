package loop

import (
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/object"
)

// updateShip runs invulnerability, heading, thrust and drift for one tick.
func (s *Session) updateShip(controls input.Controls) {
	ship := s.ship
	tun := s.tuning.Ship

	ship.UpdateInvulnerability(tun.FlickerRate)
	ship.Aim(controls.PointerX, controls.PointerY)
	if controls.Thrust {
		ship.Thrust(tun.ThrustAccel)
	}
	ship.Drift(tun.Friction, s.field)
}

// fire launches a bullet from the ship when the fire control is held and
// the cooldown has run out.
func (s *Session) fire(controls input.Controls) {
	tun := s.tuning.Bullet
	if !s.ship.TryFire(controls.Fire, tun.FireCooldownTicks) {
		return
	}
	s.bullets = append(s.bullets, object.NewBullet(s.ship.X, s.ship.Y, s.ship.Rotation, tun.Speed, tun.LifeTicks))
	s.emit(EventBulletFired, s.ship.X, s.ship.Y)
}

// updateBullets moves every bullet and drops expired or escaped ones.
func (s *Session) updateBullets() {
	kept := s.bullets[:0]
	for _, b := range s.bullets {
		if b.Update(s.field) {
			continue
		}
		kept = append(kept, b)
	}
	s.bullets = kept
}

// updateAsteroids moves every asteroid and replaces the ones that drifted
// past the cull margin.
func (s *Session) updateAsteroids() {
	cull := s.tuning.Asteroid.CullMargin

	kept := s.asteroids[:0]
	for _, a := range s.asteroids {
		if a.Update(s.field, cull) {
			s.spawn()
			continue
		}
		kept = append(kept, a)
	}
	s.asteroids = kept
}
