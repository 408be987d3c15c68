package loop

import (
	"math"
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/object"
)

func newSession(t *testing.T, mutate func(*config.Tuning)) *Session {
	t.Helper()
	tun := config.Default()
	if mutate != nil {
		mutate(&tun)
	}
	s, err := NewSession(tun, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.Start()
	return s
}

// idle points at the ship so the heading stays put, with nothing held.
func idle(s *Session) input.Controls {
	return input.Controls{PointerX: s.ship.X, PointerY: s.ship.Y}
}

// parkAsteroids moves every asteroid outside the field, between the spawn
// and cull margins, and stops it there.
func parkAsteroids(s *Session) {
	for i := range s.asteroids {
		a := &s.asteroids[i]
		a.X = -100 - float64(i)
		a.Y = -100
		a.VX, a.VY = 0, 0
	}
}

func stillAsteroid(x, y float64) object.Asteroid {
	return object.Asteroid{X: x, Y: y, Radius: 20, Vertices: []float64{20, 20, 20, 20, 20, 20, 20, 20}}
}

func TestNewSessionRejectsInvalidTuning(t *testing.T) {
	tun := config.Default()
	tun.Bullet.Speed = 0
	if _, err := NewSession(tun, nil); err == nil {
		t.Fatalf("expected error for invalid tuning")
	}
}

func TestNewSessionStartsReady(t *testing.T) {
	s, err := NewSession(config.Default(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	st := s.Snapshot().Stats
	if st.State != StateReady || st.Playing || st.GameOver {
		t.Fatalf("initial stats = %+v, want ready", st)
	}
	if len(s.Snapshot().Asteroids) != config.AsteroidCount {
		t.Fatalf("initial asteroids = %d, want %d", len(s.Snapshot().Asteroids), config.AsteroidCount)
	}

	// Ticks before Start change nothing.
	before := s.Snapshot()
	s.Tick(input.Controls{Fire: true, Thrust: true})
	if s.Snapshot() != before {
		t.Fatalf("tick in ready state republished the snapshot")
	}
}

func TestStartOnlyLeavesReady(t *testing.T) {
	s := newSession(t, nil)
	s.state = StateGameOver
	s.Start()
	if s.state != StateGameOver {
		t.Fatalf("Start changed state from game over to %v", s.state)
	}
}

func TestInvariantsHoldOverRandomPlay(t *testing.T) {
	s := newSession(t, nil)
	rng := rand.New(rand.NewSource(42))
	target := s.tuning.Asteroid.Count
	ppk := s.tuning.Score.PointsPerKill

	lastScore := 0
	for range 5000 {
		c := input.Controls{
			PointerX: rng.Float64() * s.field.Width,
			PointerY: rng.Float64() * s.field.Height,
			Fire:     rng.Intn(3) > 0,
			Thrust:   rng.Intn(4) == 0,
		}
		s.Tick(c)
		st := s.Snapshot().Stats

		if st.HitPoints < 0 || st.HitPoints > st.MaxHitPoints {
			t.Fatalf("tick %d: hit points %d outside [0,%d]", st.Tick, st.HitPoints, st.MaxHitPoints)
		}
		if n := len(s.Snapshot().Asteroids); n != target {
			t.Fatalf("tick %d: %d asteroids, want %d", st.Tick, n, target)
		}
		if st.Score < lastScore {
			t.Fatalf("tick %d: score dropped from %d to %d", st.Tick, lastScore, st.Score)
		}
		if st.Destroyed != st.Score/ppk {
			t.Fatalf("tick %d: destroyed %d, want %d", st.Tick, st.Destroyed, st.Score/ppk)
		}
		if st.GameOver != (st.HitPoints == 0) {
			t.Fatalf("tick %d: game over %v with %d hit points", st.Tick, st.GameOver, st.HitPoints)
		}
		lastScore = st.Score

		if st.GameOver {
			s.Reset()
			lastScore = 0
		}
	}
}

func TestBulletsExpireAndStayInField(t *testing.T) {
	s := newSession(t, nil)
	parkAsteroids(s)

	c := idle(s)
	c.PointerX += 100
	c.Fire = true
	for range 3 * s.tuning.Bullet.LifeTicks {
		s.Tick(c)
		parkAsteroids(s)
		for _, b := range s.bullets {
			if b.Life <= 0 || !s.field.Contains(b.X, b.Y) {
				t.Fatalf("stale bullet survived: %+v", b)
			}
		}
	}
}

func TestFireRateIsBounded(t *testing.T) {
	s := newSession(t, nil)
	parkAsteroids(s)

	c := idle(s)
	c.PointerX += 100
	c.Fire = true

	fired := 0
	ticks := 10 * s.tuning.Bullet.FireCooldownTicks
	for range ticks {
		s.Tick(c)
		parkAsteroids(s)
		for _, e := range s.Snapshot().Events {
			if e.Kind == EventBulletFired {
				fired++
			}
		}
	}
	if fired != 10 {
		t.Fatalf("fired %d bullets in %d ticks, want 10", fired, ticks)
	}
}

func TestShipWrapsAroundField(t *testing.T) {
	s := newSession(t, nil)
	parkAsteroids(s)

	s.ship.X = s.field.Width - 1
	s.ship.VX = 5
	s.Tick(input.Controls{PointerX: s.field.Width, PointerY: s.ship.Y})

	if s.ship.X < 0 || s.ship.X >= 10 {
		t.Fatalf("ship x = %g after crossing the right edge, want near 0", s.ship.X)
	}
}

func TestThrustFollowsPointer(t *testing.T) {
	s := newSession(t, nil)
	parkAsteroids(s)

	c := input.Controls{PointerX: s.ship.X, PointerY: s.ship.Y + 200, Thrust: true}
	s.Tick(c)

	if s.ship.VY <= 0 || math.Abs(s.ship.VX) > 1e-9 {
		t.Fatalf("velocity = (%g,%g), want straight down", s.ship.VX, s.ship.VY)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	s := newSession(t, nil)
	s.score = 70
	s.ship.HitPoints = 1
	s.ship.Invulnerable = true
	s.ship.InvulnerableTicks = 30
	s.state = StateGameOver

	s.Reset()
	once := s.Snapshot().Stats
	s.Reset()
	twice := s.Snapshot().Stats

	if once != twice {
		t.Fatalf("second reset changed stats: %+v vs %+v", once, twice)
	}
	want := Stats{
		State:        StatePlaying,
		Score:        0,
		Destroyed:    0,
		HitPoints:    s.tuning.Ship.MaxHitPoints,
		MaxHitPoints: s.tuning.Ship.MaxHitPoints,
		Playing:      true,
		GameOver:     false,
		Invulnerable: false,
		Tick:         once.Tick,
	}
	if once != want {
		t.Fatalf("stats after reset = %+v, want %+v", once, want)
	}
	if s.ship.Opacity != 1 || !s.ship.Alive {
		t.Fatalf("ship not restored: %+v", *s.ship)
	}
}

func TestResetKeepsAsteroidField(t *testing.T) {
	s := newSession(t, nil)
	before := append([]object.Asteroid(nil), s.asteroids...)
	s.bullets = append(s.bullets, object.NewBullet(10, 10, 0, 1, 5))

	s.Reset()

	if !reflect.DeepEqual(before, s.asteroids) {
		t.Fatalf("reset touched the asteroid field")
	}
	if len(s.bullets) != 0 {
		t.Fatalf("reset kept %d bullets", len(s.bullets))
	}
}

func TestGameOverFreezesSession(t *testing.T) {
	s := newSession(t, func(tun *config.Tuning) { tun.Ship.MaxHitPoints = 1 })
	parkAsteroids(s)
	s.asteroids[0] = stillAsteroid(s.ship.X, s.ship.Y)

	s.Tick(idle(s))
	frozen := s.Snapshot()
	if !frozen.Stats.GameOver || frozen.Stats.Playing {
		t.Fatalf("stats = %+v, want game over", frozen.Stats)
	}
	if frozen.Ship.Alive || frozen.Ship.Opacity != s.tuning.Ship.DestroyedOpacity {
		t.Fatalf("ship not wrecked: %+v", frozen.Ship)
	}

	for range 10 {
		s.Tick(input.Controls{PointerX: 0, PointerY: 0, Fire: true, Thrust: true})
	}
	after := s.Snapshot()
	if after != frozen {
		t.Fatalf("ticks after game over republished the snapshot")
	}
	if !reflect.DeepEqual(after.Asteroids, s.asteroids) || after.Ship != *s.ship {
		t.Fatalf("entities moved after game over")
	}
}

func TestResetConcurrentWithTick(t *testing.T) {
	s := newSession(t, nil)
	tun := s.Tuning()
	stop := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		rng := rand.New(rand.NewSource(9))
		for range 3000 {
			s.Tick(input.Controls{
				PointerX: rng.Float64() * tun.Field.Width,
				PointerY: rng.Float64() * tun.Field.Height,
				Fire:     rng.Intn(2) == 0,
				Thrust:   rng.Intn(3) == 0,
			})
		}
		close(stop)
	}()
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				s.Reset()
			}
		}
	}()

	for {
		select {
		case <-stop:
			wg.Wait()
			st := s.Snapshot().Stats
			if !st.Playing && !st.GameOver {
				t.Fatalf("final state %v, want playing or game over", st.State)
			}
			return
		default:
		}

		snap := s.Snapshot()
		st := snap.Stats
		if st.HitPoints < 0 || st.HitPoints > st.MaxHitPoints {
			t.Fatalf("HP %d outside [0,%d]", st.HitPoints, st.MaxHitPoints)
		}
		if len(snap.Asteroids) != tun.Asteroid.Count {
			t.Fatalf("asteroids = %d, want %d", len(snap.Asteroids), tun.Asteroid.Count)
		}
		if st.Destroyed != st.Score/tun.Score.PointsPerKill {
			t.Fatalf("destroyed %d does not match score %d", st.Destroyed, st.Score)
		}
		if st.GameOver != (st.HitPoints == 0) {
			t.Fatalf("game over %v with HP %d", st.GameOver, st.HitPoints)
		}
	}
}
