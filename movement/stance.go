package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/game"
)

// transitionEpsilon is how close, in milliseconds, a transition timer has to get to its duration to
// count as complete.
const transitionEpsilon = 0.01

// stance runs the stance controller. A transition in progress always completes before another is
// started, and the hull only changes when a transition completes, before any sweep of the tick.
func (m *Move) stance() {
	s := m.state
	target := StanceStanding
	switch {
	case m.cmd.Buttons.Has(ButtonProne):
		target = StanceProned
	case m.cmd.Buttons.Has(ButtonDuck):
		target = StanceDucked
	}

	advanced := false
	if s.Transition != TransitionNone {
		m.advanceTransition()
		advanced = true
	}
	if s.Transition == TransitionNone && target != s.Stance {
		if m.beginTransition(target) && !advanced {
			// The tick a transition starts in counts towards it.
			m.advanceTransition()
		}
	}

	m.hull = m.p.Hulls.Box(s.Stance)
	m.updateViewOffset()
	m.cropSpeed()
}

// beginTransition starts moving the player towards target. Changes that do not fit, or that are
// not allowed in the player's surroundings, are refused. It returns true if a timed transition was
// started.
func (m *Move) beginTransition(target Stance) bool {
	s := m.state
	from := s.Stance
	grounded := s.OnGround()

	var kind Transition
	switch {
	case target == StanceProned:
		if !grounded || s.WaterLevel >= WaterLevelWaist || s.MoveType == MoveTypeLadder {
			return false
		}
		if !m.fitsFrom(from, target, s.Origin) {
			m.log.Debugf("movement: player %d has no room to go prone", s.Slot)
			return false
		}
		kind = TransitionProning
	case from == StanceProned:
		if !m.fits(target, s.Origin) {
			m.log.Debugf("movement: player %d has no room to leave prone", s.Slot)
			return false
		}
		kind = TransitionUnproning
	case target == StanceDucked:
		if !grounded {
			// Airborne players tuck their legs in at once, keeping their head where it is.
			origin := s.Origin
			origin[2] += m.p.Hulls.height(StanceStanding) - m.p.Hulls.height(StanceDucked)
			if !m.fitsFrom(from, target, origin) {
				return false
			}
			s.Origin = origin
			m.settle(from, target)
			return false
		}
		if !m.fitsFrom(from, target, s.Origin) {
			m.log.Debugf("movement: player %d has no room to duck", s.Slot)
			return false
		}
		kind = TransitionDucking
	default:
		if !grounded {
			origin := s.Origin
			origin[2] -= m.p.Hulls.height(StanceStanding) - m.p.Hulls.height(StanceDucked)
			if !m.fits(target, origin) {
				m.log.Debugf("movement: player %d has no room to unduck in the air", s.Slot)
				return false
			}
			s.Origin = origin
			m.settle(from, target)
			return false
		}
		if !m.fits(target, s.Origin) {
			m.log.Debugf("movement: player %d has no room to unduck", s.Slot)
			return false
		}
		kind = TransitionUnducking
	}

	s.Transition, s.TransitionTarget = kind, target
	s.DuckTime, s.ProneTime = 0, 0
	m.handler.HandleStanceTransition(from, target)
	if m.transitionDuration(kind) <= 0 {
		m.completeTransition()
		return false
	}
	return true
}

// settle applies an instant stance change.
func (m *Move) settle(from, to Stance) {
	s := m.state
	s.Stance = to
	s.Transition = TransitionNone
	s.DuckTime, s.ProneTime = 0, 0
	m.handler.HandleStanceTransition(from, to)
}

// advanceTransition moves the transition in progress forward by a tick.
func (m *Move) advanceTransition() {
	s := m.state
	elapsed := &s.DuckTime
	if s.Transition.prone() {
		elapsed = &s.ProneTime
	}
	*elapsed += m.frameMsec()
	if *elapsed >= m.transitionDuration(s.Transition)-transitionEpsilon {
		m.completeTransition()
	}
}

// completeTransition settles the player in the target stance of its transition. A hull that reaches
// outside the current one and no longer fits keeps the player in the stance it started from.
func (m *Move) completeTransition() {
	s := m.state
	target := s.TransitionTarget
	if !m.fitsFrom(s.Stance, target, s.Origin) {
		m.log.Debugf("movement: player %d lost the room to become %v", s.Slot, target)
	} else {
		s.Stance = target
	}
	s.Transition = TransitionNone
	s.DuckTime, s.ProneTime = 0, 0
}

// transitionDuration returns the duration of a transition in milliseconds.
func (m *Move) transitionDuration(kind Transition) float32 {
	if kind.prone() {
		return game.ClampFloat(m.cfg.ProneTime, 0, game.MaxTransitionTime)
	}
	return game.ClampFloat(m.cfg.DuckTime, 0, game.MaxTransitionTime)
}

// fitsFrom is fits, skipped when the hull of to lies within the hull of from at the same origin.
func (m *Move) fitsFrom(from, to Stance, origin mgl32.Vec3) bool {
	if origin == m.state.Origin && m.p.Hulls.contains(from, to) {
		return true
	}
	return m.fits(to, origin)
}

// fits returns true if the hull of stance st does not overlap any solid at origin.
func (m *Move) fits(st Stance, origin mgl32.Vec3) bool {
	tr := m.p.World.Sweep(origin, origin, m.p.Hulls.Box(st), collision.MaskPlayerSolid, m.p.Group, m.state.Entity)
	return !tr.StartSolid
}

// updateViewOffset eases the eye position between the stances of the transition in progress.
func (m *Move) updateViewOffset() {
	s := m.state
	if s.Transition == TransitionNone {
		s.ViewOffset = m.p.Hulls.ViewOffset(s.Stance)
		return
	}
	elapsed := s.DuckTime
	if s.Transition.prone() {
		elapsed = s.ProneTime
	}
	frac := game.SplineFraction(elapsed, m.transitionDuration(s.Transition))
	from, to := m.p.Hulls.ViewOffset(s.Stance), m.p.Hulls.ViewOffset(s.TransitionTarget)
	s.ViewOffset = from.Add(to.Sub(from).Mul(frac))
}

// cropSpeed scales the requested movement of a grounded player that is low, or getting low. It
// applies at most once per tick.
func (m *Move) cropSpeed() {
	s := m.state
	if m.speedCropped || !s.OnGround() {
		return
	}
	factor := float32(1)
	switch {
	case s.Stance == StanceProned || s.Transition.prone():
		factor = m.cfg.ProneSpeedFactor
	case s.Stance == StanceDucked || s.Transition == TransitionDucking:
		factor = m.cfg.DuckSpeedFactor
	}
	if factor == 1 {
		return
	}
	m.cmd.ForwardMove *= factor
	m.cmd.SideMove *= factor
	m.cmd.UpMove *= factor
	m.speedCropped = true
}
