package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is returned (wrapped) when a tuning fails validation.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning is the full set of simulation parameters for one session.
// Distances are in field units, speeds in units per tick, durations in ticks.
type Tuning struct {
	Field    FieldTuning    `yaml:"field"`
	Ship     ShipTuning     `yaml:"ship"`
	Bullet   BulletTuning   `yaml:"bullet"`
	Asteroid AsteroidTuning `yaml:"asteroid"`
	Score    ScoreTuning    `yaml:"score"`
	Frame    FrameTuning    `yaml:"frame"`
}

type FieldTuning struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type ShipTuning struct {
	MaxHitPoints         int     `yaml:"max_hit_points"`
	ThrustAccel          float64 `yaml:"thrust_accel"`
	Friction             float64 `yaml:"friction"`
	HitRadius            float64 `yaml:"hit_radius"`
	InvulnerabilityTicks int     `yaml:"invulnerability_ticks"`
	FlickerRate          float64 `yaml:"flicker_rate"`
	DestroyedOpacity     float64 `yaml:"destroyed_opacity"`
}

type BulletTuning struct {
	Speed             float64 `yaml:"speed"`
	LifeTicks         int     `yaml:"life_ticks"`
	FireCooldownTicks int     `yaml:"fire_cooldown_ticks"`
	HitRadius         float64 `yaml:"hit_radius"`
}

type AsteroidTuning struct {
	Count            int     `yaml:"count"`
	MinSpeed         float64 `yaml:"min_speed"`
	MaxSpeed         float64 `yaml:"max_speed"`
	MaxRotationSpeed float64 `yaml:"max_rotation_speed"`
	MinRadius        float64 `yaml:"min_radius"`
	MaxRadius        float64 `yaml:"max_radius"`
	SpawnMargin      float64 `yaml:"spawn_margin"`
	CullMargin       float64 `yaml:"cull_margin"`
}

type ScoreTuning struct {
	PointsPerKill int `yaml:"points_per_kill"`
}

type FrameTuning struct {
	TicksPerSecond int `yaml:"ticks_per_second"`
}

// Default returns the tuning built from the package constants.
func Default() Tuning {
	return Tuning{
		Field: FieldTuning{
			Width:  FieldWidth,
			Height: FieldHeight,
		},
		Ship: ShipTuning{
			MaxHitPoints:         MaxHitPoints,
			ThrustAccel:          ShipThrustAccel,
			Friction:             ShipFriction,
			HitRadius:            ShipHitRadius,
			InvulnerabilityTicks: InvulnerabilityTicks,
			FlickerRate:          FlickerRate,
			DestroyedOpacity:     DestroyedOpacity,
		},
		Bullet: BulletTuning{
			Speed:             BulletSpeed,
			LifeTicks:         BulletLifeTicks,
			FireCooldownTicks: FireCooldownTicks,
			HitRadius:         BulletHitRadius,
		},
		Asteroid: AsteroidTuning{
			Count:            AsteroidCount,
			MinSpeed:         AsteroidMinSpeed,
			MaxSpeed:         AsteroidMaxSpeed,
			MaxRotationSpeed: AsteroidMaxRotationSpeed,
			MinRadius:        AsteroidMinRadius,
			MaxRadius:        AsteroidMaxRadius,
			SpawnMargin:      AsteroidSpawnMargin,
			CullMargin:       AsteroidCullMargin,
		},
		Score: ScoreTuning{
			PointsPerKill: PointsPerKill,
		},
		Frame: FrameTuning{
			TicksPerSecond: TicksPerSecond,
		},
	}
}

// Load reads a YAML tuning file. Keys missing from the file keep their
// defaults. The result is validated before it is returned.
func Load(path string) (Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault loads path, or returns the defaults when path is empty.
func LoadOrDefault(path string) (Tuning, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes YAML tuning data over the defaults and validates it.
func Parse(data []byte) (Tuning, error) {
	t := Default()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("config: unmarshal tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// FrameTime is the wall-clock duration of one tick.
func (t Tuning) FrameTime() time.Duration {
	if t.Frame.TicksPerSecond <= 0 {
		return FrameTime
	}
	return time.Second / time.Duration(t.Frame.TicksPerSecond)
}

// LargestHitRadius is the biggest collision distance any check uses.
func (t Tuning) LargestHitRadius() float64 {
	return max(t.Ship.HitRadius, t.Bullet.HitRadius)
}

// Validate reports every inconsistent parameter at once.
func (t Tuning) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(t.Field.Width > 0 && t.Field.Height > 0,
		"field: size must be positive, got %gx%g", t.Field.Width, t.Field.Height)

	check(t.Ship.MaxHitPoints >= 1, "ship: max_hit_points must be >= 1, got %d", t.Ship.MaxHitPoints)
	check(t.Ship.ThrustAccel >= 0, "ship: thrust_accel must be >= 0, got %g", t.Ship.ThrustAccel)
	check(t.Ship.Friction > 0 && t.Ship.Friction <= 1, "ship: friction must be in (0,1], got %g", t.Ship.Friction)
	check(t.Ship.HitRadius > 0, "ship: hit_radius must be positive, got %g", t.Ship.HitRadius)
	check(t.Ship.InvulnerabilityTicks >= 0, "ship: invulnerability_ticks must be >= 0, got %d", t.Ship.InvulnerabilityTicks)
	check(t.Ship.DestroyedOpacity >= 0 && t.Ship.DestroyedOpacity <= 1,
		"ship: destroyed_opacity must be in [0,1], got %g", t.Ship.DestroyedOpacity)

	check(t.Bullet.Speed > 0, "bullet: speed must be positive, got %g", t.Bullet.Speed)
	check(t.Bullet.LifeTicks >= 1, "bullet: life_ticks must be >= 1, got %d", t.Bullet.LifeTicks)
	check(t.Bullet.FireCooldownTicks >= 0, "bullet: fire_cooldown_ticks must be >= 0, got %d", t.Bullet.FireCooldownTicks)
	check(t.Bullet.HitRadius > 0, "bullet: hit_radius must be positive, got %g", t.Bullet.HitRadius)

	a := t.Asteroid
	check(a.Count >= 0, "asteroid: count must be >= 0, got %d", a.Count)
	check(a.MinSpeed > 0 && a.MaxSpeed >= a.MinSpeed,
		"asteroid: need 0 < min_speed <= max_speed, got %g..%g", a.MinSpeed, a.MaxSpeed)
	check(a.MaxRotationSpeed >= 0, "asteroid: max_rotation_speed must be >= 0, got %g", a.MaxRotationSpeed)
	check(a.MinRadius > 0 && a.MaxRadius >= a.MinRadius,
		"asteroid: need 0 < min_radius <= max_radius, got %g..%g", a.MinRadius, a.MaxRadius)
	// Fresh asteroids must not be able to hit anything inside the field on
	// the tick they appear, and must not be culled before they enter it.
	check(a.SpawnMargin > t.LargestHitRadius(),
		"asteroid: spawn_margin %g must exceed the largest hit radius %g", a.SpawnMargin, t.LargestHitRadius())
	check(a.CullMargin > a.SpawnMargin,
		"asteroid: cull_margin %g must exceed spawn_margin %g", a.CullMargin, a.SpawnMargin)

	check(t.Score.PointsPerKill >= 1, "score: points_per_kill must be >= 1, got %d", t.Score.PointsPerKill)
	check(t.Frame.TicksPerSecond >= 1, "frame: ticks_per_second must be >= 1, got %d", t.Frame.TicksPerSecond)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w: %w", ErrInvalidTuning, errors.Join(errs...))
}
