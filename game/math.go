package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Angle indices into a pitch/yaw/roll vector.
const (
	Pitch = iota
	Yaw
	Roll
)

// AngleVectors returns the forward, right and up vectors of the pitch/yaw/roll angles given in
// degrees, in a Z-up world.
func AngleVectors(angles mgl32.Vec3) (forward, right, up mgl32.Vec3) {
	sp, cp := math32.Sincos(mgl32.DegToRad(angles[Pitch]))
	sy, cy := math32.Sincos(mgl32.DegToRad(angles[Yaw]))
	sr, cr := math32.Sincos(mgl32.DegToRad(angles[Roll]))

	forward = mgl32.Vec3{cp * cy, cp * sy, -sp}
	right = mgl32.Vec3{
		-1*sr*sp*cy + -1*cr*-sy,
		-1*sr*sp*sy + -1*cr*cy,
		-1 * sr * cp,
	}
	up = mgl32.Vec3{
		cr*sp*cy + -sr*-sy,
		cr*sp*sy + -sr*cy,
		cr * cp,
	}
	return
}

// FlatNormalize drops the vertical component of vec and normalizes what is left. A vector with no
// horizontal component is returned as the zero vector.
func FlatNormalize(vec mgl32.Vec3) mgl32.Vec3 {
	vec[2] = 0
	l := vec.Len()
	if l == 0 {
		return mgl32.Vec3{}
	}
	return vec.Mul(1 / l)
}

// NormalizeInPlace normalizes vec and returns its original length. The zero vector is left as is.
func NormalizeInPlace(vec *mgl32.Vec3) float32 {
	l := vec.Len()
	if l != 0 {
		*vec = vec.Mul(1 / l)
	}
	return l
}

// SplineFraction eases value/scale with a cubic hermite curve (3t² - 2t³), clamped to [0, 1].
func SplineFraction(value, scale float32) float32 {
	if scale <= 0 {
		return 1
	}
	t := ClampFloat(value/scale, 0, 1)
	return t * t * (3 - 2*t)
}

// ClampFloat clamps the given value to the given range.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	}
	return math32.Min(num, max)
}

// AngleMod wraps an angle into [0, 360).
func AngleMod(a float32) float32 {
	a = math32.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// IsFinite returns true if f is neither NaN nor an infinity.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Vec3IsFinite returns true if every component of vec is finite.
func Vec3IsFinite(vec mgl32.Vec3) bool {
	return IsFinite(vec[0]) && IsFinite(vec[1]) && IsFinite(vec[2])
}

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// Vec3HzLen returns the length of the horizontal (X/Y) part of vec.
func Vec3HzLen(vec mgl32.Vec3) float32 {
	return math32.Sqrt(vec[0]*vec[0] + vec[1]*vec[1])
}
