package object

import (
	"math"
	"testing"
)

func TestShipHitClampsAtZero(t *testing.T) {
	s := NewShip(100, 100, 2)

	if dead := s.Hit(10); dead {
		t.Fatalf("ship died after first of two hit points")
	}
	if s.HitPoints != 1 || !s.Invulnerable || s.InvulnerableTicks != 10 {
		t.Fatalf("after hit: hp=%d invulnerable=%v ticks=%d", s.HitPoints, s.Invulnerable, s.InvulnerableTicks)
	}

	if dead := s.Hit(10); !dead {
		t.Fatalf("ship should be out of hit points")
	}
	s.Hit(10)
	if s.HitPoints != 0 {
		t.Fatalf("hit points went to %d, want clamp at 0", s.HitPoints)
	}
	if s.Alive {
		t.Fatalf("ship with 0 hit points must not be alive")
	}
}

func TestShipInvulnerabilityCountsDown(t *testing.T) {
	s := NewShip(0, 0, 4)
	s.Hit(3)

	s.UpdateInvulnerability(0.4)
	s.UpdateInvulnerability(0.4)
	if !s.Invulnerable {
		t.Fatalf("window closed early at %d ticks left", s.InvulnerableTicks)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		t.Fatalf("flicker opacity %f out of [0,1]", s.Opacity)
	}

	s.UpdateInvulnerability(0.4)
	if s.Invulnerable || s.InvulnerableTicks != 0 {
		t.Fatalf("window still open: invulnerable=%v ticks=%d", s.Invulnerable, s.InvulnerableTicks)
	}
	if s.Opacity != 1 {
		t.Fatalf("opacity = %f after window, want 1", s.Opacity)
	}
}

func TestShipTryFireCooldown(t *testing.T) {
	s := NewShip(0, 0, 4)

	fired := 0
	for range 30 {
		if s.TryFire(true, 10) {
			fired++
		}
	}
	if fired != 3 {
		t.Fatalf("fired %d shots in 30 ticks with cooldown 10, want 3", fired)
	}

	if s.TryFire(false, 10) {
		t.Fatalf("fired without fire input")
	}
}

func TestShipAimKeepsHeadingOnSelf(t *testing.T) {
	s := NewShip(50, 50, 4)
	s.Aim(50, 100)
	if math.Abs(s.Rotation-math.Pi/2) > 1e-9 {
		t.Fatalf("Rotation = %f, want pi/2", s.Rotation)
	}
	s.Aim(50, 50)
	if math.Abs(s.Rotation-math.Pi/2) > 1e-9 {
		t.Fatalf("pointer on ship changed heading to %f", s.Rotation)
	}
}

func TestShipDriftWraps(t *testing.T) {
	field := Field{Width: 100, Height: 80}
	s := NewShip(99, 1, 4)
	s.VX, s.VY = 3, -3

	s.Drift(1, field)
	if math.Abs(s.X-2) > 1e-9 || math.Abs(s.Y-78) > 1e-9 {
		t.Fatalf("wrapped position = (%f,%f), want (2,78)", s.X, s.Y)
	}
}

func TestShipThrustAndFriction(t *testing.T) {
	field := Field{Width: 1000, Height: 1000}
	s := NewShip(500, 500, 4)
	s.Rotation = 0

	s.Thrust(1)
	s.Drift(0.5, field)
	if math.Abs(s.VX-0.5) > 1e-9 || math.Abs(s.VY) > 1e-9 {
		t.Fatalf("velocity = (%f,%f), want (0.5,0)", s.VX, s.VY)
	}
	if math.Abs(s.X-500.5) > 1e-9 {
		t.Fatalf("X = %f, want 500.5", s.X)
	}
}

func TestShipRestore(t *testing.T) {
	s := NewShip(10, 10, 3)
	s.Hit(50)
	s.Hit(50)
	s.Hit(50)
	s.Wreck(0.3)
	s.FireCooldown = 4

	s.Restore(40, 30)
	if !s.Alive || s.HitPoints != 3 || s.Invulnerable || s.Opacity != 1 || s.FireCooldown != 0 {
		t.Fatalf("restore left ship in %+v", *s)
	}
	if s.X != 40 || s.Y != 30 || s.VX != 0 || s.VY != 0 {
		t.Fatalf("restore position/velocity = (%f,%f)/(%f,%f)", s.X, s.Y, s.VX, s.VY)
	}
}
