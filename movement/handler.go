package movement

import "github.com/oomph-ac/gamemove/collision"

// Handler receives notifications of state changes during Advance. Calls are made synchronously on
// the goroutine running Advance and their effects never feed back into the tick being predicted.
type Handler interface {
	// HandleLand is called when a player that had no ground entity lands on one.
	HandleLand(fallVelocity float32)
	// HandleJump is called when a jump is started.
	HandleJump()
	// HandleStanceTransition is called when a stance transition starts, or when an airborne stance
	// change is applied instantly.
	HandleStanceTransition(from, to Stance)
	// HandleWaterLevel is called once per tick when the water level of a player changed.
	HandleWaterLevel(old, new WaterLevel)
	// HandleStep is called when a player is moved up a step.
	HandleStep(height float32)
	// HandleMoveCollision is called for every surface a sweep was blocked by.
	HandleMoveCollision(tr collision.Trace)
}

// NopHandler implements Handler and does nothing.
type NopHandler struct{}

// Compile time check to make sure NopHandler implements Handler.
var _ Handler = NopHandler{}

func (NopHandler) HandleLand(float32)                      {}
func (NopHandler) HandleJump()                             {}
func (NopHandler) HandleStanceTransition(Stance, Stance)   {}
func (NopHandler) HandleWaterLevel(WaterLevel, WaterLevel) {}
func (NopHandler) HandleStep(float32)                      {}
func (NopHandler) HandleMoveCollision(collision.Trace)     {}
