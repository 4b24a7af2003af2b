package game

// Engine defaults, in world units (inches), seconds and milliseconds. They mirror the stock
// convar values the movement code was tuned against and are used to seed settings.DefaultSettings.
const (
	DefaultGravity         = float32(800)
	DefaultFriction        = float32(4)
	DefaultStopSpeed       = float32(100)
	DefaultAccelerate      = float32(10)
	DefaultAirAccelerate   = float32(10)
	DefaultWaterAccelerate = float32(10)
	DefaultWaterFriction   = float32(1)
	DefaultMaxSpeed        = float32(320)
	DefaultMaxVelocity     = float32(3500)
	DefaultStepSize        = float32(18)
	DefaultBounce          = float32(0)
	DefaultRollAngle       = float32(0)
	DefaultRollSpeed       = float32(200)

	DefaultNoClipSpeed      = float32(5)
	DefaultNoClipAccelerate = float32(5)
	DefaultSpecSpeed        = float32(3)
	DefaultSpecAccelerate   = float32(5)

	// JumpHeight is the apex height of a standing jump.
	JumpHeight = float32(21)
	// JumpTime is how long, in ms, the jump timer runs after leaving the ground.
	JumpTime = float32(510)

	// DuckTime and ProneTime are the stock stance transition durations in ms.
	DuckTime  = float32(1000)
	ProneTime = float32(1000)
	// MaxTransitionTime is the hard cap on any stance transition duration. Longer transitions leave
	// the eased interpolation stuck at its end point, so configured values are clamped to it.
	MaxTransitionTime = float32(1000)

	DuckSpeedFactor  = float32(0.33333333)
	ProneSpeedFactor = float32(0.2)

	AirSpeedCap      = float32(30)
	NonJumpVelocity  = float32(140)
	MinGroundNormalZ = float32(0.7)

	ClimbSpeed       = float32(200)
	LadderDistance   = float32(2)
	LadderJumpSpeed  = float32(270)
	LadderDetachDot  = float32(0.8)
	WaterJumpHeight  = float32(8)
	WaterJumpTime    = float32(2000)
	WaterJumpMaxTime = float32(10000)
	WaterJumpSpeed   = float32(256)
	WaterSinkSpeed   = float32(60)
	WaterSpeedFactor = float32(0.8)
	SwimUpSpeed      = float32(100)
	CurrentSpeed     = float32(50)

	FallPunchThreshold = float32(350)
	PunchDamping       = float32(9)
	PunchSpringConst   = float32(65)

	// DistEpsilon is how far sweeps stop short of the surface they hit.
	DistEpsilon = float32(0.03125)
	// CoordResolution is the smallest positional change worth applying.
	CoordResolution = float32(1.0 / 32.0)

	MaxBumps      = 4
	MaxClipPlanes = 5

	StuckCheckInterval = float32(0.05)
)
