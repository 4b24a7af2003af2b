package movement

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/assert"
	"github.com/oomph-ac/gamemove/settings"
)

// HullSet holds the bounding volume and view offset of every stance.
type HullSet struct {
	boxes [stanceCount]cube.BBox
	views [stanceCount]mgl32.Vec3
}

// NewHullSet builds a HullSet from configured hulls.
func NewHullSet(h settings.Hulls) HullSet {
	var set HullSet
	for st, hull := range [stanceCount]settings.Hull{h.Stand, h.Duck, h.Prone} {
		mins, maxs := hull.Mins.Vec3(), hull.Maxs.Vec3()
		assert.IsTrue(mins[0] < maxs[0] && mins[1] < maxs[1] && mins[2] < maxs[2], "movement: %v hull is inverted", Stance(st))
		set.boxes[st] = cube.Box(mins[0], mins[1], mins[2], maxs[0], maxs[1], maxs[2])
		set.views[st] = hull.ViewOffset.Vec3()
	}
	return set
}

// Box returns the bounding volume of a stance, relative to the player origin.
func (h HullSet) Box(st Stance) cube.BBox {
	return h.boxes[st]
}

// ViewOffset returns the eye offset of a stance.
func (h HullSet) ViewOffset(st Stance) mgl32.Vec3 {
	return h.views[st]
}

// height returns the vertical size of the hull of a stance.
func (h HullSet) height(st Stance) float32 {
	return h.boxes[st].Max()[2] - h.boxes[st].Min()[2]
}

// contains returns true if the hull of inner lies within the hull of outer on every axis.
func (h HullSet) contains(outer, inner Stance) bool {
	oMin, oMax := h.boxes[outer].Min(), h.boxes[outer].Max()
	iMin, iMax := h.boxes[inner].Min(), h.boxes[inner].Max()
	for i := 0; i < 3; i++ {
		if iMin[i] < oMin[i] || iMax[i] > oMax[i] {
			return false
		}
	}
	return true
}

// StanceFor maps ducked/proned flags to a stance. Prone wins if both are set.
func StanceFor(ducked, proned bool) Stance {
	switch {
	case proned:
		return StanceProned
	case ducked:
		return StanceDucked
	}
	return StanceStanding
}

// PlayerMins returns the minimum extent of the hull for the given flags.
func (p *Predictor) PlayerMins(ducked, proned bool) mgl32.Vec3 {
	return p.Hulls.Box(StanceFor(ducked, proned)).Min()
}

// PlayerMaxs returns the maximum extent of the hull for the given flags.
func (p *Predictor) PlayerMaxs(ducked, proned bool) mgl32.Vec3 {
	return p.Hulls.Box(StanceFor(ducked, proned)).Max()
}

// ViewOffset returns the eye offset for the given flags.
func (p *Predictor) ViewOffset(ducked, proned bool) mgl32.Vec3 {
	return p.Hulls.ViewOffset(StanceFor(ducked, proned))
}

// Hull returns the bounding volume a player in state s sweeps with. During a transition this is
// the hull of the stance being left; it only changes once the transition completes.
func (p *Predictor) Hull(s *PlayerState) cube.BBox {
	return p.Hulls.Box(s.Stance)
}
