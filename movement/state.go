package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/collision"
)

// MoveType selects the locomotion mode the predictor runs for a player.
type MoveType uint8

const (
	MoveTypeNone MoveType = iota
	MoveTypeWalk
	MoveTypeNoClip
	MoveTypeLadder
	MoveTypeFlyToss
	MoveTypeObserver
)

func (t MoveType) String() string {
	switch t {
	case MoveTypeNone:
		return "none"
	case MoveTypeWalk:
		return "walk"
	case MoveTypeNoClip:
		return "noclip"
	case MoveTypeLadder:
		return "ladder"
	case MoveTypeFlyToss:
		return "flytoss"
	case MoveTypeObserver:
		return "observer"
	}
	return "unknown"
}

// WaterLevel is how deep a player is submerged.
type WaterLevel uint8

const (
	WaterLevelDry WaterLevel = iota
	WaterLevelFeet
	WaterLevelWaist
	WaterLevelEyes
)

// Stance is a settled player posture.
type Stance uint8

const (
	StanceStanding Stance = iota
	StanceDucked
	StanceProned
	stanceCount
)

func (s Stance) String() string {
	switch s {
	case StanceStanding:
		return "standing"
	case StanceDucked:
		return "ducked"
	case StanceProned:
		return "proned"
	}
	return "unknown"
}

// Transition is a stance change in progress.
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionDucking
	TransitionUnducking
	TransitionProning
	TransitionUnproning
)

// prone returns true if the transition is timed by the prone timer.
func (t Transition) prone() bool {
	return t == TransitionProning || t == TransitionUnproning
}

// Buttons is the button bit set of a MoveCommand.
type Buttons uint32

const (
	ButtonJump Buttons = 1 << iota
	ButtonDuck
	ButtonProne
)

// Has returns true if every bit of b2 is set in b.
func (b Buttons) Has(b2 Buttons) bool {
	return b&b2 == b2
}

// PlayerState is the per-player record advanced by the predictor. It is owned by the invoking
// context, which must not share one PlayerState between concurrent Advance calls.
type PlayerState struct {
	// Slot is the player slot, used to stagger periodic checks between players.
	Slot int
	// Entity is the handle of the player itself, ignored by its own sweeps.
	Entity collision.Handle

	Origin       mgl32.Vec3
	Velocity     mgl32.Vec3
	BaseVelocity mgl32.Vec3

	// ViewAngles are the pitch, yaw and roll of the view in degrees.
	ViewAngles    mgl32.Vec3
	PunchAngle    mgl32.Vec3
	PunchAngleVel mgl32.Vec3
	ViewOffset    mgl32.Vec3

	MoveType MoveType

	GroundEntity    collision.Handle
	GroundNormal    mgl32.Vec3
	Surface         collision.Surface
	SurfaceFriction float32

	WaterLevel WaterLevel
	WaterType  collision.Contents

	Stance           Stance
	Transition       Transition
	TransitionTarget Stance

	// DuckTime and ProneTime are the milliseconds spent in the current duck or prone transition.
	DuckTime  float32
	ProneTime float32
	// JumpTime counts down, in milliseconds, after a jump.
	JumpTime float32

	WaterJumpTime float32
	WaterJumpVel  mgl32.Vec3

	FallVelocity float32
	LadderNormal mgl32.Vec3
	OldButtons   Buttons

	// Gravity scales world gravity for this player. Zero means 1.
	Gravity float32
	// MaxSpeed caps the speed the player may request. Zero uses the configured max speed.
	MaxSpeed float32
	Dead     bool

	// Frame flags, valid for the tick that produced them.
	OnLadder   bool
	JustJumped bool
	Stuck      bool
}

// NewPlayerState returns a standing, walking player at origin.
func NewPlayerState(slot int, origin mgl32.Vec3) PlayerState {
	return PlayerState{
		Slot:            slot,
		Origin:          origin,
		MoveType:        MoveTypeWalk,
		SurfaceFriction: 1,
		Surface:         collision.DefaultSurface,
	}
}

// Settled returns true if no stance transition is in progress.
func (s *PlayerState) Settled() bool {
	return s.Transition == TransitionNone
}

// OnGround returns true if the player is supported by a surface.
func (s *PlayerState) OnGround() bool {
	return s.GroundEntity.Valid()
}

// MoveCommand is the input of a single tick.
type MoveCommand struct {
	// Number is the command sequence number. It must increase from one command to the next.
	Number uint64
	// Time is the world simulation time in seconds at which the command runs.
	Time float64

	ForwardMove float32
	SideMove    float32
	UpMove      float32
	Buttons     Buttons
	// AngleDelta is added to the player's view angles before moving.
	AngleDelta mgl32.Vec3
}
