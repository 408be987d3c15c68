package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/physics"
)

// Edge identifies a side of the field.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// AsteroidSpawner creates asteroids just outside the field, aimed at a target.
// It owns no schedule: the loop asks for one asteroid per removal.
type AsteroidSpawner struct {
	field  Field
	tuning config.AsteroidTuning
	rng    *rand.Rand
}

// NewAsteroidSpawner creates a spawner for the given field.
func NewAsteroidSpawner(field Field, tuning config.AsteroidTuning, rng *rand.Rand) *AsteroidSpawner {
	return &AsteroidSpawner{
		field:  field,
		tuning: tuning,
		rng:    rng,
	}
}

// Populate creates the initial burst of n asteroids aimed at (targetX, targetY).
func (s *AsteroidSpawner) Populate(n int, targetX, targetY float64) []Asteroid {
	asteroids := make([]Asteroid, 0, n)
	for range n {
		asteroids = append(asteroids, s.Spawn(targetX, targetY))
	}
	return asteroids
}

// Spawn creates one asteroid on a random edge, moving toward (targetX, targetY).
// The target is where the ship is now; the ship keeps moving, so this biases
// asteroids toward the player without guaranteeing a hit.
func (s *AsteroidSpawner) Spawn(targetX, targetY float64) Asteroid {
	x, y := s.edgePosition(Edge(s.rng.Intn(4)))
	speed := s.between(s.tuning.MinSpeed, s.tuning.MaxSpeed)

	ux, uy, dist := physics.Direction(x, y, targetX, targetY)
	if dist == 0 {
		ux, uy = physics.FromAngle(s.rng.Float64()*2*math.Pi, 1)
	}

	radius := s.between(s.tuning.MinRadius, s.tuning.MaxRadius)

	// Irregular polygon (8-12 vertices), each ±30% off the nominal radius
	numVerts := 8 + s.rng.Intn(5)
	vertices := make([]float64, numVerts)
	for i := range vertices {
		vertices[i] = radius * (0.7 + s.rng.Float64()*0.6)
	}

	return Asteroid{
		X:             x,
		Y:             y,
		VX:            ux * speed,
		VY:            uy * speed,
		Rotation:      s.rng.Float64() * 2 * math.Pi,
		RotationSpeed: (s.rng.Float64()*2 - 1) * s.tuning.MaxRotationSpeed,
		Radius:        radius,
		Vertices:      vertices,
	}
}

// edgePosition picks a uniform point along the given edge, SpawnMargin
// outside the visible field.
func (s *AsteroidSpawner) edgePosition(edge Edge) (x, y float64) {
	m := s.tuning.SpawnMargin
	w := s.field.Width
	h := s.field.Height

	switch edge {
	case EdgeTop:
		return s.rng.Float64() * w, -m
	case EdgeBottom:
		return s.rng.Float64() * w, h + m
	case EdgeLeft:
		return -m, s.rng.Float64() * h
	default:
		return w + m, s.rng.Float64() * h
	}
}

func (s *AsteroidSpawner) between(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
