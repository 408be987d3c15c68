package client

import (
	"math/rand"
	"testing"

	"github.com/tomz197/asteroids-arcade/internal/loop"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
)

func TestEffectsBurstAndExpire(t *testing.T) {
	e := NewEffects(rand.New(rand.NewSource(1)))

	e.Apply([]loop.Event{
		{Kind: loop.EventBulletFired, X: 1, Y: 1},
		{Kind: loop.EventAsteroidDestroyed, X: 100, Y: 100},
		{Kind: loop.EventShipHit, X: 200, Y: 200},
	})

	want := config.DebrisParticlesPerKill + config.DebrisParticlesPerHit
	if e.Len() != want {
		t.Fatalf("particles = %d, want %d", e.Len(), want)
	}

	for range debrisLife {
		e.Update()
	}
	if e.Len() != 0 {
		t.Fatalf("%d particles outlived their maximum life", e.Len())
	}
}

func TestEffectsClear(t *testing.T) {
	e := NewEffects(rand.New(rand.NewSource(1)))
	e.Apply([]loop.Event{{Kind: loop.EventGameOver}})
	if e.Len() == 0 {
		t.Fatalf("game over produced no debris")
	}
	e.Clear()
	if e.Len() != 0 {
		t.Fatalf("Clear left %d particles", e.Len())
	}
}
