package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/game"
)

// CategorizePosition classifies the player's water level and ground entity for its current origin.
// Landing is only ever recorded here, after all sweeps of the tick have run.
func (m *Move) CategorizePosition() {
	m.categorizePosition()
}

func (m *Move) categorizePosition() {
	s := m.state
	s.SurfaceFriction = 1
	m.checkWater()
	if s.MoveType == MoveTypeObserver || s.MoveType == MoveTypeNoClip {
		return
	}

	zvel := s.Velocity[2]
	if zvel > game.NonJumpVelocity || (zvel > 0 && s.MoveType == MoveTypeLadder) {
		m.setGroundEntity(nil)
		return
	}
	if s.OnGround() && !m.checkInterval(IntervalGround) && s.Velocity.LenSqr() == 0 {
		// Resting players keep their ground between throttled checks.
		s.SurfaceFriction = groundFriction(s.Surface)
		return
	}

	point := s.Origin
	point[2] -= 2
	tr := m.tracePlayer(s.Origin, point)
	switch {
	case tr.Fraction == 1 || !tr.Entity.Valid():
		m.setGroundEntity(nil)
	case tr.Plane.Normal[2] < game.MinGroundNormalZ:
		// Too steep to stand on.
		m.setGroundEntity(nil)
		if zvel > 0 {
			s.SurfaceFriction = 0.25
		}
	default:
		m.setGroundEntity(&tr)
	}
}

// setGroundEntity updates the ground entity of the player to the entity of tr, or to none if tr is
// nil. A player gaining a ground entity has landed.
func (m *Move) setGroundEntity(tr *collision.Trace) {
	s := m.state
	newGround := collision.NoEntity
	if tr != nil {
		newGround = tr.Entity
	}
	oldGround := s.GroundEntity

	if !oldGround.Valid() && newGround.Valid() {
		m.result.Landed = true
		m.result.FallVelocity = s.FallVelocity
		m.handler.HandleLand(s.FallVelocity)
	}
	s.GroundEntity = newGround

	if newGround.Valid() {
		s.GroundNormal = tr.Plane.Normal
		m.categorizeGroundSurface(*tr)
		s.WaterJumpTime = 0
		s.Velocity[2] = 0
	} else {
		s.GroundNormal = mgl32.Vec3{}
	}
}

// categorizeGroundSurface takes the surface properties of the ground the player stands on.
func (m *Move) categorizeGroundSurface(tr collision.Trace) {
	m.state.Surface = tr.Surface
	m.state.SurfaceFriction = groundFriction(tr.Surface)
}

// groundFriction returns the surface friction multiplier of a surface. The stock material friction of
// 0.8 maps to 1.
func groundFriction(surface collision.Surface) float32 {
	return math32.Min(surface.Friction*1.25, 1)
}

// checkWater samples the contents at the feet, waist and eyes of the player to find its water level
// and the current it is caught in. It returns true if the player is at least waist deep.
func (m *Move) checkWater() bool {
	s := m.state
	mins, maxs := m.hull.Min(), m.hull.Max()

	point := s.Origin.Add(mins.Add(maxs).Mul(0.5))
	point[2] = s.Origin[2] + mins[2] + 1

	s.WaterLevel, s.WaterType = WaterLevelDry, collision.ContentsEmpty
	m.current = mgl32.Vec3{}

	contents := m.pointContents(point)
	if contents&collision.MaskWater == 0 {
		return false
	}
	s.WaterType = contents & collision.MaskWater
	s.WaterLevel = WaterLevelFeet

	point[2] = s.Origin[2] + (mins[2]+maxs[2])*0.5
	if m.pointContents(point)&collision.MaskWater != 0 {
		s.WaterLevel = WaterLevelWaist
		point[2] = s.Origin[2] + s.ViewOffset[2]
		if m.pointContents(point)&collision.MaskWater != 0 {
			s.WaterLevel = WaterLevelEyes
		}
	}

	if contents&collision.MaskCurrent != 0 {
		var dir mgl32.Vec3
		if contents.Has(collision.ContentsCurrent0) {
			dir[0]++
		}
		if contents.Has(collision.ContentsCurrent90) {
			dir[1]++
		}
		if contents.Has(collision.ContentsCurrent180) {
			dir[0]--
		}
		if contents.Has(collision.ContentsCurrent270) {
			dir[1]--
		}
		if contents.Has(collision.ContentsCurrentUp) {
			dir[2]++
		}
		if contents.Has(collision.ContentsCurrentDown) {
			dir[2]--
		}
		// Deeper is stronger.
		m.current = dir.Mul(game.CurrentSpeed * float32(s.WaterLevel))
	}
	return s.WaterLevel > WaterLevelFeet
}

// checkFalling applies the view punch of a hard landing and resets the fall velocity once grounded.
func (m *Move) checkFalling() {
	s := m.state
	if !s.OnGround() {
		return
	}
	if !s.Dead && s.FallVelocity >= game.FallPunchThreshold && s.WaterLevel == WaterLevelDry {
		s.PunchAngle[game.Roll] = math32.Min(s.FallVelocity*0.013, 8)
		m.log.Debugf("movement: player %d hard landing at %v", s.Slot, s.FallVelocity)
	}
	s.FallVelocity = 0
}
