package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/game"
)

// ladderMove attaches the player to a ladder it is moving into and sets its climbing velocity. It
// returns false if the player is not on a ladder this tick.
func (m *Move) ladderMove() bool {
	s := m.state
	if s.MoveType == MoveTypeNoClip || s.MoveType == MoveTypeObserver {
		return false
	}
	if s.Stance == StanceProned || s.Transition.prone() {
		return false
	}

	flatWish := game.FlatNormalize(m.forward.Mul(m.cmd.ForwardMove).Add(m.right.Mul(m.cmd.SideMove)))
	var wishDir mgl32.Vec3
	if s.MoveType == MoveTypeLadder {
		wishDir = s.LadderNormal.Mul(-1)
	} else {
		if m.cmd.ForwardMove == 0 && m.cmd.SideMove == 0 {
			return false
		}
		wishDir = m.forward.Mul(m.cmd.ForwardMove).Add(m.right.Mul(m.cmd.SideMove))
		game.NormalizeInPlace(&wishDir)
	}

	end := s.Origin.Add(wishDir.Mul(m.cfg.LadderDistance))
	tr := m.trace(s.Origin, end, collision.MaskLadder)
	if tr.Fraction == 1 || !tr.Contents.Has(collision.ContentsLadder) {
		return false
	}
	normal := tr.Plane.Normal

	if s.MoveType == MoveTypeLadder && flatWish.Dot(normal) > game.LadderDetachDot {
		// Pushing away from the ladder: let go.
		s.MoveType = MoveTypeWalk
		return false
	}

	s.MoveType = MoveTypeLadder
	s.LadderNormal = normal
	s.OnLadder = true

	climbSpeed := math32.Min(m.cfg.ClimbSpeed, m.maxSpeed)
	var forwardSpeed, rightSpeed float32
	switch {
	case m.cmd.ForwardMove > 0:
		forwardSpeed = climbSpeed
	case m.cmd.ForwardMove < 0:
		forwardSpeed = -climbSpeed
	}
	switch {
	case m.cmd.SideMove > 0:
		rightSpeed = climbSpeed
	case m.cmd.SideMove < 0:
		rightSpeed = -climbSpeed
	}

	if m.cmd.Buttons.Has(ButtonJump) {
		s.MoveType = MoveTypeWalk
		s.Velocity = normal.Mul(game.LadderJumpSpeed)
		return true
	}
	if forwardSpeed == 0 && rightSpeed == 0 {
		s.Velocity = mgl32.Vec3{}
		return true
	}

	floor := s.Origin
	floor[2] += m.hull.Min()[2] - 1
	onFloor := s.OnGround() || m.pointContents(floor).Has(collision.ContentsSolid)

	velocity := m.forward.Mul(forwardSpeed).Add(m.right.Mul(rightSpeed))

	// Split the velocity into the part along the ladder and the part into it. Moving into the ladder
	// is turned into climbing up it, and moving away into climbing down.
	perp := mgl32.Vec3{0, 0, 1}.Cross(normal)
	game.NormalizeInPlace(&perp)
	normalDist := velocity.Dot(normal)
	lateral := velocity.Sub(normal.Mul(normalDist))
	up := normal.Cross(perp)
	s.Velocity = lateral.Add(up.Mul(-normalDist))

	if onFloor && normalDist > 0 {
		// Step off the ladder onto the floor.
		s.Velocity = s.Velocity.Add(normal.Mul(game.ClimbSpeed))
	}
	return true
}

// fullLadderMove moves a player attached to a ladder.
func fullLadderMove(m *Move) {
	m.tryPlayerMove(nil, nil)
	m.categorizePosition()
}
