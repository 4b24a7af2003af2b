package movement

import (
	"io"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/assert"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/game"
	"github.com/oomph-ac/gamemove/settings"
	"github.com/sirupsen/logrus"
)

// Predictor advances player states one command at a time. A Predictor holds no per-player state of
// its own: identical (state, command, dt) inputs against an identical world always produce identical
// results. Each simulation context should own its own Predictor, since the IntervalTable it carries
// is context local.
type Predictor struct {
	// World answers every collision query made while moving.
	World collision.Provider
	// Handler is notified of state changes. A nil Handler is treated as NopHandler.
	Handler Handler
	// Movement holds the movement constants.
	Movement settings.Movement
	// Hulls holds the hull and view offset of every stance.
	Hulls HullSet
	// Modes maps every move type to the routine that moves it.
	Modes ModeTable
	// Intervals throttles periodic checks. A nil table throttles nothing.
	Intervals *IntervalTable
	// Group is the collision group player sweeps are made with.
	Group collision.Group
	// Log receives debug output. A nil Log discards everything.
	Log logrus.FieldLogger
}

// New returns a Predictor for the world and settings passed, with the default mode table and its own
// interval table.
func New(w collision.Provider, s settings.Settings, log logrus.FieldLogger) *Predictor {
	assert.IsTrue(w != nil, "movement: predictor needs a collision provider")
	return &Predictor{
		World:     w,
		Handler:   NopHandler{},
		Movement:  s.Movement,
		Hulls:     NewHullSet(s.Hulls),
		Modes:     DefaultModes(),
		Intervals: &IntervalTable{},
		Group:     collision.GroupPlayerMovement,
		Log:       log,
	}
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// Move is the context of a single Advance call. It is handed to mode routines and is only valid for
// the duration of the call that created it.
type Move struct {
	p       *Predictor
	state   *PlayerState
	cmd     MoveCommand
	dt      float32
	cfg     *settings.Movement
	handler Handler
	log     logrus.FieldLogger

	forward, right, up mgl32.Vec3
	hull               cube.BBox
	maxSpeed           float32

	oldWaterLevel WaterLevel
	current       mgl32.Vec3
	speedCropped  bool
	tossLanding   *collision.Trace

	contents struct {
		valid bool
		point mgl32.Vec3
		value collision.Contents
	}

	result Result
}

// Advance moves state by a single command lasting dt seconds and returns a summary of the tick. A
// non-positive or non-finite dt only applies the view angles of the command.
func (p *Predictor) Advance(state *PlayerState, cmd MoveCommand, dt float32) Result {
	if state == nil {
		return Result{}
	}
	m := p.newMove(state, cmd, dt)
	state.JustJumped, state.Stuck, state.OnLadder = false, false, false
	m.checkParameters()
	if dt <= 0 || !game.IsFinite(dt) {
		return m.result
	}
	m.playerMove()
	m.finishMove()
	return m.result
}

func (p *Predictor) newMove(state *PlayerState, cmd MoveCommand, dt float32) *Move {
	m := &Move{
		p:       p,
		state:   state,
		cmd:     cmd,
		dt:      dt,
		cfg:     &p.Movement,
		handler: p.Handler,
		log:     p.Log,
	}
	if m.handler == nil {
		m.handler = NopHandler{}
	}
	if m.log == nil {
		m.log = discardLogger
	}
	m.hull = p.Hulls.Box(state.Stance)
	m.maxSpeed = p.Movement.MaxSpeed
	if state.MaxSpeed > 0 {
		m.maxSpeed = state.MaxSpeed
	}
	return m
}

// State returns the player state being moved.
func (m *Move) State() *PlayerState {
	return m.state
}

// Command returns the command being run. Its movement intents may have been scaled already.
func (m *Move) Command() MoveCommand {
	return m.cmd
}

// FrameTime returns the duration of the tick in seconds.
func (m *Move) FrameTime() float32 {
	return m.dt
}

// Settings returns the movement constants in use.
func (m *Move) Settings() settings.Movement {
	return *m.cfg
}

// Hull returns the hull currently swept with.
func (m *Move) Hull() cube.BBox {
	return m.hull
}

// Logger returns the logger of the predictor.
func (m *Move) Logger() logrus.FieldLogger {
	return m.log
}

// playerMove runs the per tick pipeline: stuck handling, stance, ladder attachment and the mode of
// the player's move type.
func (m *Move) playerMove() {
	s := m.state
	m.reduceTimers()
	m.oldWaterLevel = s.WaterLevel

	if !s.OnGround() {
		s.FallVelocity = -s.Velocity[2]
	}

	if m.movesThroughWorld() && !s.Dead && m.checkInterval(IntervalStuck) && m.checkStuck() {
		m.result.Stuck, s.Stuck = true, true
		return
	}

	if (s.MoveType == MoveTypeWalk || s.MoveType == MoveTypeLadder) && !s.Dead {
		m.stance()
	}

	if !s.Dead && (s.MoveType == MoveTypeLadder || (s.MoveType == MoveTypeWalk && m.checkInterval(IntervalLadder))) {
		if !m.ladderMove() && s.MoveType == MoveTypeLadder {
			s.MoveType = MoveTypeWalk
		}
	}

	mode, ok := m.p.Modes[s.MoveType]
	if !ok || mode == nil {
		m.log.Warnf("movement: no mode for move type %v, player is frozen", s.MoveType)
		return
	}
	mode(m)
}

// movesThroughWorld returns true if the move type of the player collides with the world.
func (m *Move) movesThroughWorld() bool {
	switch m.state.MoveType {
	case MoveTypeNone, MoveTypeNoClip, MoveTypeObserver:
		return false
	}
	return true
}

// checkParameters applies the view angles of the command and clamps the requested movement.
func (m *Move) checkParameters() {
	s := m.state
	if s.MoveType != MoveTypeNoClip && s.MoveType != MoveTypeObserver && s.MoveType != MoveTypeNone {
		spd := m.cmd.ForwardMove*m.cmd.ForwardMove + m.cmd.SideMove*m.cmd.SideMove + m.cmd.UpMove*m.cmd.UpMove
		if spd != 0 && spd > m.maxSpeed*m.maxSpeed {
			ratio := m.maxSpeed / math32.Sqrt(spd)
			m.cmd.ForwardMove *= ratio
			m.cmd.SideMove *= ratio
			m.cmd.UpMove *= ratio
		}
	}
	if s.Dead || !game.IsFinite(m.cmd.ForwardMove) || !game.IsFinite(m.cmd.SideMove) || !game.IsFinite(m.cmd.UpMove) {
		m.cmd.ForwardMove, m.cmd.SideMove, m.cmd.UpMove = 0, 0, 0
	}

	if !s.Dead && game.Vec3IsFinite(m.cmd.AngleDelta) {
		s.ViewAngles = s.ViewAngles.Add(m.cmd.AngleDelta)
	}
	if !game.Vec3IsFinite(s.ViewAngles) {
		s.ViewAngles = mgl32.Vec3{}
	}
	s.ViewAngles[game.Pitch] = game.ClampFloat(s.ViewAngles[game.Pitch], -89, 89)
	s.ViewAngles[game.Yaw] = game.AngleMod(s.ViewAngles[game.Yaw])
	s.ViewAngles[game.Roll] = 0
	if s.MoveType != MoveTypeNoClip && s.MoveType != MoveTypeObserver {
		s.ViewAngles[game.Roll] = calcRoll(s.ViewAngles, s.Velocity, m.cfg.RollAngle, m.cfg.RollSpeed)
	}

	// Movement never depends on roll.
	m.forward, m.right, m.up = game.AngleVectors(mgl32.Vec3{s.ViewAngles[game.Pitch], s.ViewAngles[game.Yaw], 0})
}

// reduceTimers counts down the millisecond timers of the player.
func (m *Move) reduceTimers() {
	if m.state.JumpTime > 0 {
		m.state.JumpTime = math32.Max(m.state.JumpTime-m.frameMsec(), 0)
	}
}

// frameMsec returns the duration of the tick in milliseconds.
func (m *Move) frameMsec() float32 {
	return m.dt * 1000
}

// finishMove runs the bookkeeping shared by every move type once the mode has run.
func (m *Move) finishMove() {
	s := m.state
	m.decayPunchAngle()
	m.checkVelocity()
	if s.WaterLevel != m.oldWaterLevel {
		m.handler.HandleWaterLevel(m.oldWaterLevel, s.WaterLevel)
	}
	s.OldButtons = m.cmd.Buttons
}

// decayPunchAngle springs the punch angle back towards zero.
func (m *Move) decayPunchAngle() {
	s := m.state
	if s.PunchAngle.LenSqr() <= 0.001 && s.PunchAngleVel.LenSqr() <= 0.001 {
		s.PunchAngle, s.PunchAngleVel = mgl32.Vec3{}, mgl32.Vec3{}
		return
	}
	s.PunchAngle = s.PunchAngle.Add(s.PunchAngleVel.Mul(m.dt))
	damping := math32.Max(1-game.PunchDamping*m.dt, 0)
	s.PunchAngleVel = s.PunchAngleVel.Mul(damping)
	spring := s.PunchAngle.Mul(game.PunchSpringConst * m.dt)
	s.PunchAngleVel = s.PunchAngleVel.Sub(spring)

	s.PunchAngle[game.Pitch] = game.ClampFloat(s.PunchAngle[game.Pitch], -89, 89)
	s.PunchAngle[game.Yaw] = game.ClampFloat(s.PunchAngle[game.Yaw], -179, 179)
	s.PunchAngle[game.Roll] = game.ClampFloat(s.PunchAngle[game.Roll], -89, 89)
}

// checkVelocity replaces non-finite velocity and origin components with zero and clamps every
// velocity component to the configured maximum.
func (m *Move) checkVelocity() {
	s := m.state
	maxVel := m.cfg.MaxVelocity
	for i := 0; i < 3; i++ {
		if !game.IsFinite(s.Velocity[i]) {
			m.log.Warnf("movement: player %d got a non-finite velocity on axis %d", s.Slot, i)
			s.Velocity[i] = 0
			m.result.Clamped = true
		}
		if !game.IsFinite(s.Origin[i]) {
			m.log.Warnf("movement: player %d got a non-finite origin on axis %d", s.Slot, i)
			s.Origin[i] = 0
			m.result.Clamped = true
		}
		if s.Velocity[i] > maxVel {
			m.log.Debugf("movement: player %d velocity %v too high on axis %d", s.Slot, s.Velocity[i], i)
			s.Velocity[i] = maxVel
			m.result.Clamped = true
		} else if s.Velocity[i] < -maxVel {
			m.log.Debugf("movement: player %d velocity %v too low on axis %d", s.Slot, s.Velocity[i], i)
			s.Velocity[i] = -maxVel
			m.result.Clamped = true
		}
	}
}

// calcRoll returns the view roll induced by strafing.
func calcRoll(angles, velocity mgl32.Vec3, rollAngle, rollSpeed float32) float32 {
	if rollAngle == 0 || rollSpeed <= 0 {
		return 0
	}
	_, right, _ := game.AngleVectors(angles)
	side := velocity.Dot(right)
	sign := float32(1)
	if side < 0 {
		sign = -1
	}
	side = math32.Abs(side)
	if side < rollSpeed {
		side = side * rollAngle / rollSpeed
	} else {
		side = rollAngle
	}
	return side * sign
}

// baseVelocity returns the velocity imparted on the player by its surroundings this tick.
func (m *Move) baseVelocity() mgl32.Vec3 {
	return m.state.BaseVelocity.Add(m.current)
}

// trace sweeps the current hull from start to end against mask.
func (m *Move) trace(start, end mgl32.Vec3, mask collision.Contents) collision.Trace {
	return m.p.World.Sweep(start, end, m.hull, mask, m.p.Group, m.state.Entity)
}

// tracePlayer sweeps the current hull from start to end against everything a player collides with.
func (m *Move) tracePlayer(start, end mgl32.Vec3) collision.Trace {
	return m.trace(start, end, collision.MaskPlayerSolid)
}

// pointContents returns the contents at point. The last query is cached for the rest of the call.
func (m *Move) pointContents(point mgl32.Vec3) collision.Contents {
	if m.contents.valid && m.contents.point == point {
		return m.contents.value
	}
	m.contents.valid, m.contents.point = true, point
	m.contents.value = m.p.World.PointContents(point)
	return m.contents.value
}
