package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/gamemove/game"
)

func TestDefaultSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should be valid: %v", err)
	}
}

func TestValidateClampsTransitionTimes(t *testing.T) {
	s := DefaultSettings()
	s.Movement.DuckTime = 2500
	s.Movement.ProneTime = -4
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Movement.DuckTime != game.MaxTransitionTime {
		t.Fatalf("expected duck time clamped to %v, got %v", game.MaxTransitionTime, s.Movement.DuckTime)
	}
	if s.Movement.ProneTime != 0 {
		t.Fatalf("expected prone time clamped to 0, got %v", s.Movement.ProneTime)
	}
}

func TestValidateRejectsBadHulls(t *testing.T) {
	s := DefaultSettings()
	s.Hulls.Duck.Maxs.Z = 90
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for a duck hull taller than the standing hull")
	}

	s = DefaultSettings()
	s.Hulls.Prone.Mins.X = 20
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for an inverted prone hull")
	}
}

func TestSaveDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := SaveDefault(path); err != nil {
		t.Fatalf("failed saving default settings: %v", err)
	}
	if err := SaveDefault(path); err == nil {
		t.Fatalf("expected error when the settings file already exists")
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("failed loading settings: %v", err)
	}
	if s.Movement.MaxSpeed != game.DefaultMaxSpeed {
		t.Fatalf("expected max speed %v, got %v", game.DefaultMaxSpeed, s.Movement.MaxSpeed)
	}
	if s.Hulls.Stand.Maxs.Z != 72 {
		t.Fatalf("expected standing hull height 72, got %v", s.Hulls.Stand.Maxs.Z)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	data := []byte("[Movement]\nMaxSpeed = 250.0\nFriction = 0.0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("failed loading settings: %v", err)
	}
	if s.Movement.MaxSpeed != 250 {
		t.Fatalf("expected overridden max speed 250, got %v", s.Movement.MaxSpeed)
	}
	if s.Movement.Friction != 0 {
		t.Fatalf("expected overridden friction 0, got %v", s.Movement.Friction)
	}
	if s.Movement.Gravity != game.DefaultGravity {
		t.Fatalf("expected default gravity to survive, got %v", s.Movement.Gravity)
	}
}

func TestValidateSessionLatency(t *testing.T) {
	s := DefaultSettings()
	s.Session.Latency = 10
	s.Session.HistorySize = 4
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Session.HistorySize != 11 {
		t.Fatalf("expected history to grow past the latency, got %d", s.Session.HistorySize)
	}

	s.Session.Latency = -1
	if err := s.Validate(); err == nil {
		t.Fatalf("expected error for a negative latency")
	}
}
