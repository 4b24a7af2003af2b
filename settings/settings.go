package settings

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/game"
	"github.com/pelletier/go-toml"
)

// Settings contains everything that can be configured for the movement predictor and the tools
// built around it.
type Settings struct {
	Movement Movement
	Hulls    Hulls
	Session  Session
	Log      struct {
		// Level is a logrus level name.
		Level string
	}
}

// Movement holds the per-player movement constants. Every value is in world units, seconds or,
// where noted, milliseconds.
type Movement struct {
	Gravity         float32
	Friction        float32
	StopSpeed       float32
	Accelerate      float32
	AirAccelerate   float32
	WaterAccelerate float32
	WaterFriction   float32
	MaxSpeed        float32
	MaxVelocity     float32
	StepSize        float32
	Bounce          float32
	RollAngle       float32
	RollSpeed       float32
	AirSpeedCap     float32
	JumpHeight      float32

	NoClipSpeed      float32
	NoClipAccelerate float32
	SpecSpeed        float32
	SpecAccelerate   float32

	// DuckTime and ProneTime are stance transition durations in milliseconds.
	DuckTime  float32
	ProneTime float32

	DuckSpeedFactor  float32
	ProneSpeedFactor float32

	ClimbSpeed     float32
	LadderDistance float32

	// Check intervals are in ticks. A value of 1 runs the check every tick.
	GroundCheckInterval int
	StuckCheckInterval  int
	LadderCheckInterval int
}

// Vec is a TOML friendly three component vector.
type Vec struct {
	X, Y, Z float32
}

// Vec3 converts v to an mgl32.Vec3.
func (v Vec) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Hull describes the bounding volume and eye position of a stance, relative to the player origin.
type Hull struct {
	Mins       Vec
	Maxs       Vec
	ViewOffset Vec
}

// Hulls holds the hull of every stance.
type Hulls struct {
	Stand Hull
	Duck  Hull
	Prone Hull
}

// Session configures the dual-context scenario runner.
type Session struct {
	// TickRate is the amount of simulation ticks per second.
	TickRate int
	// HistorySize is the amount of predicted ticks kept for comparison with the authoritative ones.
	HistorySize int
	// Latency is the amount of ticks the authoritative context runs behind the predicting one.
	Latency int
	// RecordPath, if not empty, is where a compressed tick recording is written.
	RecordPath string
	// SentryDSN, if not empty, enables reporting of prediction divergences to Sentry.
	SentryDSN string
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	s := Settings{}
	s.Movement = Movement{
		Gravity:         game.DefaultGravity,
		Friction:        game.DefaultFriction,
		StopSpeed:       game.DefaultStopSpeed,
		Accelerate:      game.DefaultAccelerate,
		AirAccelerate:   game.DefaultAirAccelerate,
		WaterAccelerate: game.DefaultWaterAccelerate,
		WaterFriction:   game.DefaultWaterFriction,
		MaxSpeed:        game.DefaultMaxSpeed,
		MaxVelocity:     game.DefaultMaxVelocity,
		StepSize:        game.DefaultStepSize,
		Bounce:          game.DefaultBounce,
		RollAngle:       game.DefaultRollAngle,
		RollSpeed:       game.DefaultRollSpeed,
		AirSpeedCap:     game.AirSpeedCap,
		JumpHeight:      game.JumpHeight,

		NoClipSpeed:      game.DefaultNoClipSpeed,
		NoClipAccelerate: game.DefaultNoClipAccelerate,
		SpecSpeed:        game.DefaultSpecSpeed,
		SpecAccelerate:   game.DefaultSpecAccelerate,

		DuckTime:  game.DuckTime,
		ProneTime: game.ProneTime,

		DuckSpeedFactor:  game.DuckSpeedFactor,
		ProneSpeedFactor: game.ProneSpeedFactor,

		ClimbSpeed:     game.ClimbSpeed,
		LadderDistance: game.LadderDistance,

		GroundCheckInterval: 1,
		StuckCheckInterval:  1,
		LadderCheckInterval: 1,
	}
	s.Hulls = Hulls{
		Stand: Hull{Mins: Vec{-16, -16, 0}, Maxs: Vec{16, 16, 72}, ViewOffset: Vec{0, 0, 64}},
		Duck:  Hull{Mins: Vec{-16, -16, 0}, Maxs: Vec{16, 16, 36}, ViewOffset: Vec{0, 0, 28}},
		Prone: Hull{Mins: Vec{-16, -16, 0}, Maxs: Vec{16, 16, 24}, ViewOffset: Vec{0, 0, 12}},
	}
	s.Session = Session{TickRate: 60, HistorySize: 64, Latency: 2}
	s.Log.Level = "info"
	return s
}

// Validate checks s for values the predictor cannot work with and clamps transition durations to
// game.MaxTransitionTime.
func (s *Settings) Validate() error {
	m := &s.Movement
	if m.MaxSpeed <= 0 {
		return fmt.Errorf("movement max speed must be positive, got %v", m.MaxSpeed)
	}
	if m.MaxVelocity <= 0 {
		return fmt.Errorf("movement max velocity must be positive, got %v", m.MaxVelocity)
	}
	if m.Gravity < 0 {
		return fmt.Errorf("movement gravity must not be negative, got %v", m.Gravity)
	}
	if m.Friction < 0 || m.StopSpeed < 0 || m.StepSize < 0 {
		return errors.New("movement friction, stop speed and step size must not be negative")
	}
	m.DuckTime = game.ClampFloat(m.DuckTime, 0, game.MaxTransitionTime)
	m.ProneTime = game.ClampFloat(m.ProneTime, 0, game.MaxTransitionTime)
	m.GroundCheckInterval = max(m.GroundCheckInterval, 1)
	m.StuckCheckInterval = max(m.StuckCheckInterval, 1)
	m.LadderCheckInterval = max(m.LadderCheckInterval, 1)

	for _, h := range []struct {
		name string
		hull Hull
	}{{"stand", s.Hulls.Stand}, {"duck", s.Hulls.Duck}, {"prone", s.Hulls.Prone}} {
		if h.hull.Mins.X >= h.hull.Maxs.X || h.hull.Mins.Y >= h.hull.Maxs.Y || h.hull.Mins.Z >= h.hull.Maxs.Z {
			return fmt.Errorf("%s hull has mins %v not below maxs %v", h.name, h.hull.Mins, h.hull.Maxs)
		}
	}
	if s.Hulls.Duck.Maxs.Z > s.Hulls.Stand.Maxs.Z || s.Hulls.Prone.Maxs.Z > s.Hulls.Duck.Maxs.Z {
		return errors.New("hulls must shrink from stand to duck to prone")
	}
	if s.Session.TickRate <= 0 {
		return fmt.Errorf("session tick rate must be positive, got %d", s.Session.TickRate)
	}
	if s.Session.Latency < 0 {
		return fmt.Errorf("session latency must not be negative, got %d", s.Session.Latency)
	}
	if s.Session.HistorySize <= s.Session.Latency {
		s.Session.HistorySize = s.Session.Latency + 1
	}
	return nil
}

// Load reads the settings file at path on top of the default settings and validates the result.
func Load(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed reading settings file: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed decoding settings file: %w", err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}
