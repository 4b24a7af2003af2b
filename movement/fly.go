package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/game"
)

// fullNoClipMove flies the player freely, ignoring all geometry. A positive maxAccel makes the
// player accelerate and slow down smoothly, zero moves at the wished velocity directly and a negative
// value additionally drops the velocity after moving.
func (m *Move) fullNoClipMove(factor, maxAccel float32) {
	s := m.state
	maxSpeed := m.cfg.MaxSpeed * factor

	wishVel := m.forward.Mul(m.cmd.ForwardMove * factor).Add(m.right.Mul(m.cmd.SideMove * factor))
	wishVel[2] += m.cmd.UpMove * factor

	wishDir := wishVel
	wishSpeed := game.NormalizeInPlace(&wishDir)
	if wishSpeed > maxSpeed {
		wishVel = wishVel.Mul(maxSpeed / wishSpeed)
		wishSpeed = maxSpeed
	}

	if maxAccel > 0 {
		s.SurfaceFriction = 1
		m.accelerate(wishDir, wishSpeed, maxAccel)

		spd := s.Velocity.Len()
		if spd < 1 {
			s.Velocity = mgl32.Vec3{}
			return
		}
		// Bleed off speed, at least as if moving at a quarter of max speed.
		control := math32.Max(spd, maxSpeed/4)
		drop := control * m.cfg.Friction * m.dt
		newSpeed := math32.Max(spd-drop, 0)
		s.Velocity = s.Velocity.Mul(newSpeed / spd)
	} else {
		s.Velocity = wishVel
	}

	s.Origin = s.Origin.Add(s.Velocity.Mul(m.dt))
	if maxAccel < 0 {
		s.Velocity = mgl32.Vec3{}
	}
}

func fullObserverMove(m *Move) {
	m.fullNoClipMove(m.cfg.SpecSpeed, m.cfg.SpecAccelerate)
}

func fullNoClipMove(m *Move) {
	m.fullNoClipMove(m.cfg.NoClipSpeed, m.cfg.NoClipAccelerate)
}

// fullTossMove moves a ballistic player: gravity and collision only, with no control. A floor hit
// during the move is only taken as ground once the move is done.
func fullTossMove(m *Move) {
	s := m.state
	m.tossLanding = nil

	if s.Velocity[2] > 0 {
		m.setGroundEntity(nil)
	}
	if s.OnGround() && s.Velocity == m.baseVelocity() {
		// Resting.
		m.checkWater()
		return
	}

	m.checkVelocity()
	s.Velocity[2] -= m.gravityScale() * m.cfg.Gravity * m.dt
	s.Velocity[2] += s.BaseVelocity[2] * m.dt
	s.BaseVelocity[2] = 0
	m.checkVelocity()

	move := s.Velocity.Add(m.baseVelocity()).Mul(m.dt)
	tr := m.pushEntity(move)
	m.checkVelocity()

	switch {
	case tr.AllSolid:
		s.Velocity = mgl32.Vec3{}
		m.tossLanding = &tr
	case tr.Fraction < 1:
		m.tossCollision(tr)
	}

	if m.tossLanding != nil {
		m.setGroundEntity(m.tossLanding)
		if m.tossLanding.AllSolid {
			s.Velocity = mgl32.Vec3{}
		}
	} else if s.Velocity[2] != 0 {
		m.setGroundEntity(nil)
	}
	m.checkWater()
}

// tossCollision bounces a ballistic player off the surface it hit.
func (m *Move) tossCollision(tr collision.Trace) {
	s := m.state
	s.Velocity, _ = clipVelocity(s.Velocity, tr.Plane.Normal, 1+m.cfg.Bounce)
	if tr.Plane.Normal[2] <= game.MinGroundNormalZ {
		return
	}

	landing := tr
	if s.Velocity[2] < m.cfg.Gravity*m.dt {
		// Rolling along the floor.
		s.Velocity[2] = 0
		m.tossLanding = &landing
	}
	if m.cfg.Bounce <= 0 || s.Velocity.LenSqr() < 30*30 {
		s.Velocity = mgl32.Vec3{}
		m.tossLanding = &landing
		return
	}
	move := s.Velocity.Mul((1 - tr.Fraction) * m.dt * 0.9)
	m.pushEntity(move)
}
