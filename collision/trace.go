package collision

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Handle is a weak reference to an entity in the host world. It is never dereferenced by the
// movement code, only compared and handed back to the host through hooks.
type Handle uint32

const (
	// NoEntity is the zero Handle and refers to nothing.
	NoEntity Handle = iota
	// WorldEntity refers to the static world geometry.
	WorldEntity
)

// Valid returns true if the handle refers to an entity.
func (h Handle) Valid() bool {
	return h != NoEntity
}

// Plane is a surface plane in normal/distance form.
type Plane struct {
	Normal mgl32.Vec3
	Dist   float32
}

// Surface holds the physical properties of a surface a sweep came to rest against.
type Surface struct {
	Name string
	// Friction is the physics friction of the material. 0.8 is the stock default and results in a
	// surface friction multiplier of 1.
	Friction float32
	// JumpFactor scales jump impulses taken off the surface.
	JumpFactor float32
}

// DefaultSurface is the surface reported for geometry with no explicit material.
var DefaultSurface = Surface{Name: "default", Friction: 0.8, JumpFactor: 1}

// Trace is the result of sweeping a hull through the world.
type Trace struct {
	// Fraction is the portion of the sweep completed, in [0, 1].
	Fraction float32
	// EndPos is the hull origin where the sweep stopped.
	EndPos mgl32.Vec3
	Plane  Plane
	// Surface is the surface of the blocking brush.
	Surface Surface
	// Contents are the contents of the blocking brush.
	Contents Contents
	// Entity is the entity that blocked the sweep, or NoEntity.
	Entity Handle

	// StartSolid is true if the hull started inside a solid volume.
	StartSolid bool
	// AllSolid is true if the hull never left a solid volume.
	AllSolid bool
}

// Hit returns true if the sweep was blocked before completing.
func (t Trace) Hit() bool {
	return t.Fraction < 1 || t.AllSolid
}

// Provider is the collision query service consumed by the movement predictor. Implementations must
// be read-only for the duration of a tick and must return identical results for identical queries.
type Provider interface {
	// Sweep moves hull (extents relative to the origin) from start to end and reports the first
	// blocking surface matching mask. Entities in group that do not collide with it, and ignore, are
	// skipped.
	Sweep(start, end mgl32.Vec3, hull cube.BBox, mask Contents, group Group, ignore Handle) Trace
	// PointContents returns the union of the contents of every volume containing point.
	PointContents(point mgl32.Vec3) Contents
}
