package session

import (
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/internal"
	"github.com/oomph-ac/gamemove/movement"
	"github.com/zeebo/xxh3"
)

// hashedState holds the fields of a PlayerState that affect future ticks.
type hashedState struct {
	Origin        mgl32.Vec3
	Velocity      mgl32.Vec3
	BaseVelocity  mgl32.Vec3
	ViewAngles    mgl32.Vec3
	PunchAngle    mgl32.Vec3
	PunchAngleVel mgl32.Vec3
	ViewOffset    mgl32.Vec3
	GroundNormal  mgl32.Vec3
	WaterJumpVel  mgl32.Vec3
	LadderNormal  mgl32.Vec3

	GroundEntity    uint32
	WaterType       uint32
	OldButtons      uint32
	SurfaceFriction float32
	DuckTime        float32
	ProneTime       float32
	JumpTime        float32
	WaterJumpTime   float32
	FallVelocity    float32
	Gravity         float32
	MaxSpeed        float32
	Friction        float32
	JumpFactor      float32

	MoveType         uint8
	WaterLevel       uint8
	Stance           uint8
	Transition       uint8
	TransitionTarget uint8
	Dead             bool
}

// HashState returns a 64-bit digest of s. Two states of the same player with the same digest behave
// identically on every following tick. Slot, Entity and the frame flags are not hashed.
func HashState(s *movement.PlayerState) uint64 {
	buf := internal.GetBuffer()
	defer internal.PutBuffer(buf)

	binary.Write(buf, binary.LittleEndian, hashedState{
		Origin:           s.Origin,
		Velocity:         s.Velocity,
		BaseVelocity:     s.BaseVelocity,
		ViewAngles:       s.ViewAngles,
		PunchAngle:       s.PunchAngle,
		PunchAngleVel:    s.PunchAngleVel,
		ViewOffset:       s.ViewOffset,
		GroundNormal:     s.GroundNormal,
		WaterJumpVel:     s.WaterJumpVel,
		LadderNormal:     s.LadderNormal,
		GroundEntity:     uint32(s.GroundEntity),
		WaterType:        uint32(s.WaterType),
		OldButtons:       uint32(s.OldButtons),
		SurfaceFriction:  s.SurfaceFriction,
		DuckTime:         s.DuckTime,
		ProneTime:        s.ProneTime,
		JumpTime:         s.JumpTime,
		WaterJumpTime:    s.WaterJumpTime,
		FallVelocity:     s.FallVelocity,
		Gravity:          s.Gravity,
		MaxSpeed:         s.MaxSpeed,
		Friction:         s.Surface.Friction,
		JumpFactor:       s.Surface.JumpFactor,
		MoveType:         uint8(s.MoveType),
		WaterLevel:       uint8(s.WaterLevel),
		Stance:           uint8(s.Stance),
		Transition:       uint8(s.Transition),
		TransitionTarget: uint8(s.TransitionTarget),
		Dead:             s.Dead,
	})
	buf.WriteString(s.Surface.Name)
	return xxh3.Hash(buf.Bytes())
}
