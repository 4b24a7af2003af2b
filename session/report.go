package session

import (
	"github.com/oomph-ac/gamemove/movement"
	"github.com/sirupsen/logrus"
)

// Report summarises a session.
type Report struct {
	// Ticks is the amount of commands the server ran.
	Ticks int
	// Matched is the amount of commands the client predicted exactly.
	Matched int
	// Divergences is the amount of commands the client mispredicted.
	Divergences int
	// Reconciled is the amount of times the client was rewound to the server state.
	Reconciled int
	// Missing is the amount of commands that had no prediction left in the history.
	Missing int
	// Stuck is the amount of server ticks spent stuck in geometry.
	Stuck int
	// MaxDistance is the largest distance between a prediction and the server origin.
	MaxDistance float32

	// Final is the server state after the last command.
	Final movement.PlayerState
}

// Fields returns r as log fields.
func (r Report) Fields() logrus.Fields {
	return logrus.Fields{
		"ticks":       r.Ticks,
		"matched":     r.Matched,
		"divergences": r.Divergences,
		"reconciled":  r.Reconciled,
		"missing":     r.Missing,
		"stuck":       r.Stuck,
		"maxDistance": r.MaxDistance,
		"origin":      r.Final.Origin,
		"stance":      r.Final.Stance.String(),
	}
}
