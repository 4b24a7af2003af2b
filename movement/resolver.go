package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/game"
)

// TryPlayerMove slides the player along its velocity for the rest of the tick and returns the kinds
// of surface that blocked it.
func (m *Move) TryPlayerMove() Blocked {
	return m.tryPlayerMove(nil, nil)
}

// tryPlayerMove sweeps the player along its velocity, clipping the velocity against every plane it
// runs into. At most game.MaxBumps sweeps are made. If firstDest and firstTrace are set, the trace is
// reused for the first sweep when it ends at firstDest.
func (m *Move) tryPlayerMove(firstDest *mgl32.Vec3, firstTrace *collision.Trace) Blocked {
	s := m.state
	var (
		blocked     Blocked
		planes      [game.MaxClipPlanes]mgl32.Vec3
		numPlanes   int
		allFraction float32
		bumps       int
	)
	originalVelocity, primalVelocity := s.Velocity, s.Velocity
	newVelocity := mgl32.Vec3{}
	timeLeft := m.dt

	for bumpCount := 0; bumpCount < game.MaxBumps; bumpCount++ {
		if s.Velocity.Len() == 0 {
			break
		}
		end := s.Origin.Add(s.Velocity.Mul(timeLeft))

		var tr collision.Trace
		if firstDest != nil && firstTrace != nil && end == *firstDest {
			tr = *firstTrace
		} else {
			tr = m.tracePlayer(s.Origin, end)
		}
		bumps++
		allFraction += tr.Fraction

		if tr.AllSolid {
			// Embedded for the whole sweep. Stop dead.
			s.Velocity = mgl32.Vec3{}
			blocked |= BlockedSolid
			break
		}
		if tr.Fraction > 0 {
			// Actually covered some distance: planes from earlier sweeps no longer apply.
			s.Origin = tr.EndPos
			originalVelocity = s.Velocity
			numPlanes = 0
		}
		if tr.Fraction == 1 {
			break
		}
		m.handler.HandleMoveCollision(tr)

		if tr.Plane.Normal[2] > game.MinGroundNormalZ {
			blocked |= BlockedFloor
		}
		if tr.Plane.Normal[2] == 0 {
			blocked |= BlockedWall
		}

		timeLeft -= timeLeft * tr.Fraction

		if numPlanes >= game.MaxClipPlanes {
			s.Velocity = mgl32.Vec3{}
			break
		}
		planes[numPlanes] = tr.Plane.Normal
		numPlanes++

		if numPlanes == 1 && s.MoveType == MoveTypeWalk && !s.OnGround() {
			// A single plane in the air: reflect off it, keeping no bounce off floors.
			for i := 0; i < numPlanes; i++ {
				if planes[i][2] > game.MinGroundNormalZ {
					newVelocity, _ = clipVelocity(originalVelocity, planes[i], 1)
					originalVelocity = newVelocity
				} else {
					newVelocity, _ = clipVelocity(originalVelocity, planes[i], 1+m.cfg.Bounce*(1-s.SurfaceFriction))
				}
			}
			s.Velocity, originalVelocity = newVelocity, newVelocity
			continue
		}

		i := 0
		for ; i < numPlanes; i++ {
			s.Velocity, _ = clipVelocity(originalVelocity, planes[i], 1)
			j := 0
			for ; j < numPlanes; j++ {
				if j != i && s.Velocity.Dot(planes[j]) < 0 {
					break
				}
			}
			if j == numPlanes {
				// Moving away from every other plane.
				break
			}
		}
		if i == numPlanes {
			// No single plane works: slide along the crease of two planes, or stop in a corner.
			if numPlanes != 2 {
				s.Velocity = mgl32.Vec3{}
				break
			}
			dir := planes[0].Cross(planes[1])
			if game.NormalizeInPlace(&dir) == 0 {
				s.Velocity = mgl32.Vec3{}
				break
			}
			s.Velocity = dir.Mul(dir.Dot(s.Velocity))
		}

		// Never turn back against the original direction of movement.
		if s.Velocity.Dot(primalVelocity) <= 0 {
			s.Velocity = mgl32.Vec3{}
			break
		}
	}

	if allFraction == 0 {
		s.Velocity = mgl32.Vec3{}
	}
	m.result.Bumps = max(m.result.Bumps, bumps)
	m.result.Blocked |= blocked
	return blocked
}

// clipVelocity removes the part of in going into the plane with the normal passed, scaled by
// overbounce.
func clipVelocity(in, normal mgl32.Vec3, overbounce float32) (mgl32.Vec3, Blocked) {
	var blocked Blocked
	if normal[2] > 0 {
		blocked |= BlockedFloor
	}
	if normal[2] == 0 {
		blocked |= BlockedWall
	}
	backoff := in.Dot(normal) * overbounce
	out := in.Sub(normal.Mul(backoff))

	// Iterate once more in case rounding left us moving into the plane.
	if adjust := out.Dot(normal); adjust < 0 {
		out = out.Sub(normal.Mul(adjust))
	}
	return out, blocked
}

// stepMove tries both sliding along the ground and stepping up onto whatever blocked the player,
// keeping whichever carried it further horizontally.
func (m *Move) stepMove(dest mgl32.Vec3, tr collision.Trace) {
	s := m.state
	posOrig, velOrig := s.Origin, s.Velocity

	m.tryPlayerMove(&dest, &tr)
	downPos, downVel := s.Origin, s.Velocity

	s.Origin, s.Velocity = posOrig, velOrig

	up := s.Origin
	up[2] += m.cfg.StepSize + game.DistEpsilon
	if t := m.tracePlayer(s.Origin, up); !t.StartSolid && !t.AllSolid {
		s.Origin = t.EndPos
	}
	m.tryPlayerMove(nil, nil)

	down := s.Origin
	down[2] -= m.cfg.StepSize + game.DistEpsilon
	t := m.tracePlayer(s.Origin, down)
	if !t.StartSolid && !t.AllSolid {
		s.Origin = t.EndPos
	}
	if t.Fraction != 1 && t.Plane.Normal[2] < game.MinGroundNormalZ {
		// Stepped onto something too steep to stand on.
		s.Origin, s.Velocity = downPos, downVel
		return
	}

	upPos := s.Origin
	downDist := hzDistSqr(downPos, posOrig)
	upDist := hzDistSqr(upPos, posOrig)
	if downDist > upDist {
		s.Origin, s.Velocity = downPos, downVel
	} else {
		s.Velocity[2] = downVel[2]
	}

	if height := s.Origin[2] - posOrig[2]; height > 0 {
		m.result.StepHeight += height
		m.handler.HandleStep(height)
	}
}

// stayOnGround snaps a walking player down onto the ground when it moved down a small slope or step.
func (m *Move) stayOnGround() {
	s := m.state
	start, end := s.Origin, s.Origin
	start[2] += 2
	end[2] -= m.cfg.StepSize

	// Move up first, then back down as far as the step size allows.
	start = m.tracePlayer(s.Origin, start).EndPos
	tr := m.tracePlayer(start, end)
	if tr.Fraction > 0 && tr.Fraction < 1 && !tr.StartSolid && tr.Plane.Normal[2] >= game.MinGroundNormalZ {
		if delta := math32.Abs(s.Origin[2] - tr.EndPos[2]); delta > 0.5*game.CoordResolution {
			s.Origin = tr.EndPos
		}
	}
}

// pushEntity moves the player by push without any sliding and returns the trace of the move.
func (m *Move) pushEntity(push mgl32.Vec3) collision.Trace {
	s := m.state
	tr := m.tracePlayer(s.Origin, s.Origin.Add(push))
	s.Origin = tr.EndPos
	if tr.Fraction < 1 && !tr.AllSolid {
		m.handler.HandleMoveCollision(tr)
	}
	return tr
}

// testPosition checks whether the current hull fits at pos.
func (m *Move) testPosition(pos mgl32.Vec3) collision.Trace {
	return m.tracePlayer(pos, pos)
}

// stuckOffsets are the nudges tried, in order, to free a player embedded in geometry.
var stuckOffsets = func() []mgl32.Vec3 {
	dirs := [...]mgl32.Vec3{{0, 0, 1}, {0, 0, -1}, {1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}}
	offsets := make([]mgl32.Vec3, 0, len(dirs)*6)
	for _, dist := range [...]float32{0.125, 0.25, 0.5, 1, 2, 4} {
		for _, dir := range dirs {
			offsets = append(offsets, dir.Mul(dist))
		}
	}
	return offsets
}()

// checkStuck returns true if the player is embedded in geometry and could not be freed this tick.
// Freeing attempts are throttled per player slot to one every game.StuckCheckInterval worth of
// commands.
func (m *Move) checkStuck() bool {
	s := m.state
	if !m.testPosition(s.Origin).StartSolid {
		return false
	}
	// Retries are spaced in commands so that a caller that never advances Time is still retried.
	retry := max(math32.Round(game.StuckCheckInterval/m.dt), 1)
	if !m.p.Intervals.Due(s.Slot, IntervalStuck, float64(m.cmd.Number), float64(retry)) {
		return true
	}
	base := s.Origin
	for _, offset := range stuckOffsets {
		pos := base.Add(offset)
		if !m.testPosition(pos).StartSolid {
			m.log.Debugf("movement: player %d unstuck by %v", s.Slot, offset)
			s.Origin = pos
			return false
		}
	}
	m.log.Debugf("movement: player %d stuck at %v", s.Slot, base)
	return true
}

func hzDistSqr(a, b mgl32.Vec3) float32 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx + dy*dy
}
