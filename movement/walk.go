package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/game"
)

// Walk runs the walking mode: gravity, jumping, friction, acceleration and collision for a player on
// foot, or swimming if it is deep enough in water.
func (m *Move) Walk() {
	fullWalkMove(m)
}

func fullWalkMove(m *Move) {
	s := m.state
	if !m.checkWater() {
		m.startGravity()
	}

	if s.WaterJumpTime > 0 {
		m.waterJump()
		m.tryPlayerMove(nil, nil)
		m.checkWater()
		return
	}

	if s.WaterLevel >= WaterLevelWaist {
		if s.WaterLevel == WaterLevelWaist {
			m.checkWaterJump()
		}
		if s.Velocity[2] < 0 && s.WaterJumpTime > 0 {
			s.WaterJumpTime = 0
		}
		if m.cmd.Buttons.Has(ButtonJump) {
			m.checkJumpButton()
		}
		m.waterMove()
		m.categorizePosition()
		if s.OnGround() {
			s.Velocity[2] = 0
		}
		return
	}

	if m.cmd.Buttons.Has(ButtonJump) {
		m.checkJumpButton()
	}
	if s.OnGround() {
		s.Velocity[2] = 0
		m.friction()
	}
	m.checkVelocity()

	if s.OnGround() {
		m.walkMove()
	} else {
		m.airMove()
	}

	m.categorizePosition()
	m.checkVelocity()
	if !m.checkWater() {
		m.finishGravity()
	}
	if s.OnGround() {
		s.Velocity[2] = 0
	}
	m.checkFalling()
}

// wishVelocity returns the horizontal velocity the player asks for, capped at its max speed, along
// with its direction and length.
func (m *Move) wishVelocity() (wishVel, wishDir mgl32.Vec3, wishSpeed float32) {
	forward, right := game.FlatNormalize(m.forward), game.FlatNormalize(m.right)
	wishVel = forward.Mul(m.cmd.ForwardMove).Add(right.Mul(m.cmd.SideMove))
	wishVel[2] = 0

	wishDir = wishVel
	wishSpeed = game.NormalizeInPlace(&wishDir)
	if wishSpeed != 0 && wishSpeed > m.maxSpeed {
		wishVel = wishVel.Mul(m.maxSpeed / wishSpeed)
		wishSpeed = m.maxSpeed
	}
	return
}

// walkMove moves a grounded player, stepping up anything low enough on the way.
func (m *Move) walkMove() {
	s := m.state
	_, wishDir, wishSpeed := m.wishVelocity()

	s.Velocity[2] = 0
	m.accelerate(wishDir, wishSpeed, m.cfg.Accelerate)
	s.Velocity[2] = 0

	base := m.baseVelocity()
	s.Velocity = s.Velocity.Add(base)
	if s.Velocity.Len() < 1 {
		s.Velocity = mgl32.Vec3{}.Sub(base)
		return
	}

	dest := s.Origin.Add(s.Velocity.Mul(m.dt))
	dest[2] = s.Origin[2]

	tr := m.tracePlayer(s.Origin, dest)
	if tr.Fraction == 1 {
		s.Origin = tr.EndPos
		s.Velocity = s.Velocity.Sub(base)
		m.stayOnGround()
		return
	}

	m.stepMove(dest, tr)
	s.Velocity = s.Velocity.Sub(base)
	m.stayOnGround()
}

// airMove moves an airborne player. Air control is limited by game.AirSpeedCap.
func (m *Move) airMove() {
	s := m.state
	_, wishDir, wishSpeed := m.wishVelocity()
	m.airAccelerate(wishDir, wishSpeed, m.cfg.AirAccelerate)

	base := m.baseVelocity()
	s.Velocity = s.Velocity.Add(base)
	m.tryPlayerMove(nil, nil)
	s.Velocity = s.Velocity.Sub(base)
}

// canAccelerate returns false for players that have no control over their velocity.
func (m *Move) canAccelerate() bool {
	return !m.state.Dead && m.state.WaterJumpTime == 0
}

// accelerate adds velocity in wishDir until the speed in that direction reaches wishSpeed.
func (m *Move) accelerate(wishDir mgl32.Vec3, wishSpeed, accel float32) {
	s := m.state
	if !m.canAccelerate() {
		return
	}
	addSpeed := wishSpeed - s.Velocity.Dot(wishDir)
	if addSpeed <= 0 {
		return
	}
	accelSpeed := math32.Min(accel*m.dt*wishSpeed*s.SurfaceFriction, addSpeed)
	s.Velocity = s.Velocity.Add(wishDir.Mul(accelSpeed))
}

// airAccelerate is accelerate with the wished speed capped to the air speed cap. The acceleration
// itself still scales with the uncapped speed.
func (m *Move) airAccelerate(wishDir mgl32.Vec3, wishSpeed, accel float32) {
	s := m.state
	if !m.canAccelerate() {
		return
	}
	wishSpd := math32.Min(wishSpeed, m.cfg.AirSpeedCap)
	addSpeed := wishSpd - s.Velocity.Dot(wishDir)
	if addSpeed <= 0 {
		return
	}
	accelSpeed := math32.Min(accel*wishSpeed*m.dt*s.SurfaceFriction, addSpeed)
	s.Velocity = s.Velocity.Add(wishDir.Mul(accelSpeed))
}

// friction slows a grounded player down. Players below the stop speed are slowed as if they were
// moving at it.
func (m *Move) friction() {
	s := m.state
	if s.WaterJumpTime > 0 {
		return
	}
	speed := s.Velocity.Len()
	if speed < 0.1 {
		return
	}
	var drop float32
	if s.OnGround() {
		control := math32.Max(speed, m.cfg.StopSpeed)
		drop += control * m.cfg.Friction * s.SurfaceFriction * m.dt
	}
	newSpeed := math32.Max(speed-drop, 0)
	if newSpeed != speed {
		s.Velocity = s.Velocity.Mul(newSpeed / speed)
	}
}

// gravityScale returns the gravity multiplier of the player.
func (m *Move) gravityScale() float32 {
	if m.state.Gravity != 0 {
		return m.state.Gravity
	}
	return 1
}

// startGravity applies the first half of the tick's gravity and moves vertical base velocity into
// the player's own velocity.
func (m *Move) startGravity() {
	s := m.state
	s.Velocity[2] -= m.gravityScale() * m.cfg.Gravity * 0.5 * m.dt
	s.Velocity[2] += s.BaseVelocity[2] * m.dt
	s.BaseVelocity[2] = 0
	m.checkVelocity()
}

// finishGravity applies the second half of the tick's gravity.
func (m *Move) finishGravity() {
	if m.state.WaterJumpTime > 0 {
		return
	}
	m.state.Velocity[2] -= m.gravityScale() * m.cfg.Gravity * m.dt * 0.5
	m.checkVelocity()
}

// checkJumpButton starts a jump if the player is allowed to. It returns true if a jump started.
func (m *Move) checkJumpButton() bool {
	s := m.state
	if s.Dead {
		return false
	}
	if s.WaterJumpTime > 0 {
		s.WaterJumpTime = math32.Max(s.WaterJumpTime-m.frameMsec(), 0)
		return false
	}
	if s.WaterLevel >= WaterLevelWaist {
		// Swimming up rather than jumping.
		m.setGroundEntity(nil)
		s.Velocity[2] = game.SwimUpSpeed
		return false
	}
	if !s.OnGround() || s.OldButtons.Has(ButtonJump) {
		return false
	}
	if s.Stance == StanceProned || s.Transition.prone() {
		return false
	}

	m.setGroundEntity(nil)

	factor := s.Surface.JumpFactor
	if factor == 0 {
		factor = 1
	}
	impulse := factor * math32.Sqrt(2*m.gravityScale()*m.cfg.Gravity*m.cfg.JumpHeight)
	if s.Stance == StanceDucked || s.Transition == TransitionDucking {
		// A ducked jump replaces vertical velocity rather than adding to it.
		s.Velocity[2] = impulse
	} else {
		s.Velocity[2] += impulse
	}
	m.finishGravity()

	s.JumpTime = game.JumpTime
	s.JustJumped = true
	m.result.Jumped = true
	m.handler.HandleJump()
	return true
}
