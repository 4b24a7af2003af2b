package movement

// Blocked is a set of flags describing which kinds of surface stopped a sweep.
type Blocked uint8

const (
	// BlockedFloor is set when a surface steep enough to stand on was hit.
	BlockedFloor Blocked = 1 << iota
	// BlockedWall is set when a vertical surface was hit.
	BlockedWall
	// BlockedSolid is set when the hull was embedded in solid for the whole sweep.
	BlockedSolid
)

// Result is a summary of what happened during a single Advance call.
type Result struct {
	// Blocked accumulates the flags of every sweep in the tick.
	Blocked Blocked
	// Bumps is the highest amount of sweep iterations a single slide move needed.
	Bumps int
	// Stuck is true if the player was embedded in geometry and movement was skipped.
	Stuck bool
	// Jumped is true if a jump was started.
	Jumped bool
	// Landed is true if the player gained a ground entity this tick.
	Landed bool
	// FallVelocity is the downward speed at the moment of landing.
	FallVelocity float32
	// StepHeight is the total height the player was moved up steps.
	StepHeight float32
	// Clamped is true if velocity had to be sanitised or clamped.
	Clamped bool
}
