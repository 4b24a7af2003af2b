package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/game"
)

// waterMove moves a swimming player. Movement is fully three dimensional and water drag replaces
// ground friction.
func (m *Move) waterMove() {
	s := m.state
	wishVel := m.forward.Mul(m.cmd.ForwardMove).Add(m.right.Mul(m.cmd.SideMove))
	switch {
	case m.cmd.Buttons.Has(ButtonJump):
		wishVel[2] += m.maxSpeed
	case m.cmd.Buttons.Has(ButtonDuck):
		wishVel[2] -= m.maxSpeed
	case m.cmd.ForwardMove == 0 && m.cmd.SideMove == 0 && m.cmd.UpMove == 0:
		// Idle players slowly sink.
		wishVel[2] -= game.WaterSinkSpeed
	default:
		wishVel[2] += m.cmd.UpMove
	}

	wishDir := wishVel
	wishSpeed := game.NormalizeInPlace(&wishDir)
	if wishSpeed > m.maxSpeed {
		wishSpeed = m.maxSpeed
	}
	wishSpeed *= game.WaterSpeedFactor

	var newSpeed float32
	if speed := s.Velocity.Len(); speed != 0 {
		newSpeed = math32.Max(speed-m.dt*speed*m.cfg.Friction*m.cfg.WaterFriction*s.SurfaceFriction, 0)
		s.Velocity = s.Velocity.Mul(newSpeed / speed)
	}

	if wishSpeed >= 0.1 {
		if addSpeed := wishSpeed - newSpeed; addSpeed > 0 {
			accelSpeed := math32.Min(m.cfg.WaterAccelerate*wishSpeed*m.dt*s.SurfaceFriction, addSpeed)
			s.Velocity = s.Velocity.Add(wishDir.Mul(accelSpeed))
		}
	}

	base := m.baseVelocity()
	s.Velocity = s.Velocity.Add(base)

	dest := s.Origin.Add(s.Velocity.Mul(m.dt))
	tr := m.tracePlayer(s.Origin, dest)
	if tr.Fraction == 1 {
		// Press down from a step above the destination, to swim up onto ledges and slopes.
		start := dest
		start[2] += m.cfg.StepSize + 1
		tr = m.tracePlayer(start, dest)
		if !tr.StartSolid && !tr.AllSolid {
			if height := tr.EndPos[2] - s.Origin[2]; height > 0 {
				m.result.StepHeight += height
			}
			s.Origin = tr.EndPos
			s.Velocity = s.Velocity.Sub(base)
			return
		}
		m.tryPlayerMove(nil, nil)
	} else {
		if !s.OnGround() {
			m.tryPlayerMove(nil, nil)
			s.Velocity = s.Velocity.Sub(base)
			return
		}
		m.stepMove(dest, tr)
	}
	s.Velocity = s.Velocity.Sub(base)
}

// checkWaterJump starts a water jump when a waist deep player swims against a ledge low enough to
// climb out onto.
func (m *Move) checkWaterJump() {
	s := m.state
	if s.WaterJumpTime > 0 || s.Velocity[2] < -180 {
		return
	}

	flatVelocity := mgl32.Vec3{s.Velocity[0], s.Velocity[1], 0}
	curSpeed := game.NormalizeInPlace(&flatVelocity)
	flatForward := game.FlatNormalize(m.forward)
	if curSpeed != 0 && flatVelocity.Dot(flatForward) < 0 {
		// Swimming away from the ledge.
		return
	}

	mins, maxs := m.hull.Min(), m.hull.Max()
	start := s.Origin.Add(mins.Add(maxs).Mul(0.5))
	end := start.Add(flatForward.Mul(24))
	tr := m.tracePlayer(start, end)
	if tr.Fraction == 1 {
		return
	}

	start[2] = s.Origin[2] + s.ViewOffset[2] + game.WaterJumpHeight
	end = start.Add(flatForward.Mul(24))
	s.WaterJumpVel = tr.Plane.Normal.Mul(-50)
	if tr = m.tracePlayer(start, end); tr.Fraction != 1 {
		return
	}

	start = end
	end[2] -= 1024
	tr = m.tracePlayer(start, end)
	if tr.Fraction < 1 && tr.Plane.Normal[2] >= game.MinGroundNormalZ {
		s.Velocity[2] = game.WaterJumpSpeed
		s.WaterJumpTime = game.WaterJumpTime
	}
}

// waterJump carries a player through a water jump in progress.
func (m *Move) waterJump() {
	s := m.state
	s.WaterJumpTime = math32.Min(s.WaterJumpTime, game.WaterJumpMaxTime)
	if s.WaterJumpTime == 0 {
		return
	}
	s.WaterJumpTime -= m.frameMsec()
	if s.WaterJumpTime <= 0 || s.WaterLevel == WaterLevelDry {
		s.WaterJumpTime = 0
	}
	s.Velocity[0], s.Velocity[1] = s.WaterJumpVel[0], s.WaterJumpVel[1]
}
