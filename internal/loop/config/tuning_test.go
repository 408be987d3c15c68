package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestParseOverridesSubset(t *testing.T) {
	data := []byte(`
ship:
  max_hit_points: 6
asteroid:
  count: 3
`)
	tun, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tun.Ship.MaxHitPoints != 6 {
		t.Errorf("MaxHitPoints = %d, want 6", tun.Ship.MaxHitPoints)
	}
	if tun.Asteroid.Count != 3 {
		t.Errorf("Asteroid.Count = %d, want 3", tun.Asteroid.Count)
	}
	// Untouched keys keep their defaults.
	if tun.Bullet.Speed != BulletSpeed {
		t.Errorf("Bullet.Speed = %g, want default %g", tun.Bullet.Speed, BulletSpeed)
	}
	if tun.Field.Width != FieldWidth {
		t.Errorf("Field.Width = %g, want default %d", tun.Field.Width, FieldWidth)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	data := []byte(`
ship:
  max_hit_points: 0
asteroid:
  spawn_margin: 10
`)
	_, err := Parse(data)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("error %v does not wrap ErrInvalidTuning", err)
	}
	msg := err.Error()
	for _, want := range []string{"max_hit_points", "spawn_margin"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %s", msg, want)
		}
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("ship: [unterminated")); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want wrapped os.ErrNotExist", err)
	}
}

func TestCullMarginMustExceedSpawnMargin(t *testing.T) {
	tun := Default()
	tun.Asteroid.CullMargin = tun.Asteroid.SpawnMargin
	if err := tun.Validate(); !errors.Is(err, ErrInvalidTuning) {
		t.Fatalf("Validate = %v, want ErrInvalidTuning", err)
	}
}

func TestFrameTime(t *testing.T) {
	tun := Default()
	tun.Frame.TicksPerSecond = 50
	if got := tun.FrameTime(); got != 20*time.Millisecond {
		t.Fatalf("FrameTime = %v, want 20ms", got)
	}
}

func TestLoadOrDefaultEmptyPath(t *testing.T) {
	tun, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if tun != Default() {
		t.Fatalf("LoadOrDefault(\"\") = %+v, want defaults", tun)
	}
}
