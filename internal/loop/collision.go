package loop

import "github.com/tomz197/asteroids-arcade/internal/physics"

// resolveCollisions applies bullet hits and then ship hits against the
// moved positions of this tick. Every destroyed asteroid is replaced.
func (s *Session) resolveCollisions() {
	s.indexAsteroids()

	kept := s.bullets[:0]
	for _, b := range s.bullets {
		if s.bulletHit(b.X, b.Y) {
			continue
		}
		kept = append(kept, b)
	}
	s.bullets = kept

	s.shipHit()

	s.compactAsteroids()
}

// indexAsteroids rebuilds the broad-phase grid and clears removal marks.
func (s *Session) indexAsteroids() {
	s.grid.Clear()
	if cap(s.removed) < len(s.asteroids) {
		s.removed = make([]bool, len(s.asteroids))
	}
	s.removed = s.removed[:len(s.asteroids)]
	clear(s.removed)

	for i := range s.asteroids {
		s.grid.Insert(s.asteroids[i].X, s.asteroids[i].Y, i)
	}
}

// bulletHit destroys the first live asteroid within reach of a bullet at
// (x,y). A bullet destroys at most one asteroid.
func (s *Session) bulletHit(x, y float64) bool {
	radius := s.tuning.Bullet.HitRadius

	s.candidates = s.grid.Candidates(x, y, s.candidates)
	for _, i := range s.candidates {
		if s.removed[i] {
			continue
		}
		a := &s.asteroids[i]
		if !physics.Within(x, y, a.X, a.Y, radius) {
			continue
		}

		s.removed[i] = true
		s.score += s.tuning.Score.PointsPerKill
		s.emit(EventAsteroidDestroyed, a.X, a.Y)
		s.spawn()
		return true
	}
	return false
}

// shipHit applies at most one asteroid hit to the ship. Invulnerable ships
// and finished games take no damage.
func (s *Session) shipHit() {
	ship := s.ship
	if ship.Invulnerable || s.state != StatePlaying {
		return
	}
	radius := s.tuning.Ship.HitRadius

	s.candidates = s.grid.Candidates(ship.X, ship.Y, s.candidates)
	for _, i := range s.candidates {
		if s.removed[i] {
			continue
		}
		a := &s.asteroids[i]
		if !physics.Within(ship.X, ship.Y, a.X, a.Y, radius) {
			continue
		}

		s.removed[i] = true
		s.spawn()
		s.emit(EventShipHit, ship.X, ship.Y)

		if ship.Hit(s.tuning.Ship.InvulnerabilityTicks) {
			s.gameOver()
		}
		return
	}
}

func (s *Session) gameOver() {
	s.state = StateGameOver
	s.ship.Wreck(s.tuning.Ship.DestroyedOpacity)
	s.emit(EventGameOver, s.ship.X, s.ship.Y)
}

// compactAsteroids drops removed asteroids, keeping list order.
func (s *Session) compactAsteroids() {
	kept := s.asteroids[:0]
	for i, a := range s.asteroids {
		if !s.removed[i] {
			kept = append(kept, a)
		}
	}
	s.asteroids = kept
}
