package event

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/movement"
)

// Context identifies which simulation context produced a tick.
type Context uint8

const (
	ContextServer Context = iota
	ContextClient
)

func (c Context) String() string {
	if c == ContextServer {
		return "server"
	}
	return "client"
}

// TickEvent records the command a context ran and the state it ended up in.
type TickEvent struct {
	NopEvent

	Payload TickPayload
}

// TickPayload is the fixed size body of a TickEvent.
type TickPayload struct {
	Context Context
	Command uint64

	ForwardMove float32
	SideMove    float32
	UpMove      float32
	Buttons     uint32
	AngleDelta  mgl32.Vec3

	Origin     mgl32.Vec3
	Velocity   mgl32.Vec3
	ViewAngles mgl32.Vec3
	ViewOffset mgl32.Vec3

	MoveType     uint8
	Stance       uint8
	Transition   uint8
	WaterLevel   uint8
	GroundEntity uint32

	Hash uint64
}

// NewTickEvent builds the TickEvent of a context that ran cmd and ended in state s.
func NewTickEvent(ctx Context, cmd movement.MoveCommand, s *movement.PlayerState, hash uint64) TickEvent {
	ev := TickEvent{Payload: TickPayload{
		Context:      ctx,
		Command:      cmd.Number,
		ForwardMove:  cmd.ForwardMove,
		SideMove:     cmd.SideMove,
		UpMove:       cmd.UpMove,
		Buttons:      uint32(cmd.Buttons),
		AngleDelta:   cmd.AngleDelta,
		Origin:       s.Origin,
		Velocity:     s.Velocity,
		ViewAngles:   s.ViewAngles,
		ViewOffset:   s.ViewOffset,
		MoveType:     uint8(s.MoveType),
		Stance:       uint8(s.Stance),
		Transition:   uint8(s.Transition),
		WaterLevel:   uint8(s.WaterLevel),
		GroundEntity: uint32(s.GroundEntity),
		Hash:         hash,
	}}
	ev.EvTime = int64(cmd.Time * 1e9)
	return ev
}

func (TickEvent) ID() byte {
	return EventIDTick
}

func (ev TickEvent) Encode() []byte {
	return encode(ev, ev.Payload)
}
