package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gamemove/collision"
	"github.com/oomph-ac/gamemove/game"
)

// skinDepth is how deep a hull may sit inside a brush and still be treated as touching its
// nearest face rather than embedded in it.
const skinDepth = float32(1e-3)

type sweepKind uint8

const (
	sweepNone sweepKind = iota
	sweepHit
	sweepSolid
)

type sweepResult struct {
	kind   sweepKind
	t      float32
	axis   int
	sign   float32
	normal mgl32.Vec3
}

// Sweep implements collision.Provider.
func (w *World) Sweep(start, end mgl32.Vec3, hull cube.BBox, mask collision.Contents, group collision.Group, ignore collision.Handle) collision.Trace {
	tr := collision.Trace{Fraction: 1, EndPos: end}
	delta := end.Sub(start)

	w.RLock()
	defer w.RUnlock()

	var (
		best    = float32(2)
		hit     Brush
		hitRes  sweepResult
		hasHit  bool
		minHull = hull.Min()
		maxHull = hull.Max()
	)
	for el := w.brushes.Front(); el != nil; el = el.Next() {
		b := el.Value
		if !b.Contents.Has(mask) || !collision.ShouldCollide(group, b.Group) {
			continue
		}
		if ignore.Valid() && b.Entity == ignore {
			continue
		}

		expanded := minkowski(b.Box, minHull, maxHull)
		res := sweepBox(expanded, start, delta)
		switch res.kind {
		case sweepSolid:
			tr.StartSolid = true
			if insideBox(expanded, end, skinDepth) {
				tr.AllSolid = true
				tr.Fraction = 0
				tr.EndPos = start
				tr.Contents = b.Contents
				tr.Surface = b.Surface
				tr.Entity = b.Entity
				return tr
			}
		case sweepHit:
			if res.t < best {
				best, hit, hitRes, hasHit = res.t, b, res, true
			}
		}
	}
	if !hasHit {
		return tr
	}

	// Stop short so that the hull rests DistEpsilon away from the plane it hit.
	into := -delta.Dot(hitRes.normal)
	fraction := best
	if into > 0 {
		fraction -= game.DistEpsilon / into
	}
	fraction = game.ClampFloat(fraction, 0, 1)

	tr.Fraction = fraction
	tr.EndPos = start.Add(delta.Mul(fraction))
	tr.Plane = collision.Plane{Normal: hitRes.normal, Dist: planeDist(brushFace(hit.Box, hitRes))}
	tr.Surface = hit.Surface
	tr.Contents = hit.Contents
	tr.Entity = hit.Entity
	return tr
}

// TestBox reports whether a hull placed at origin overlaps any volume matching mask. The returned
// trace has StartSolid and AllSolid set if it does.
func (w *World) TestBox(origin mgl32.Vec3, hull cube.BBox, mask collision.Contents, group collision.Group, ignore collision.Handle) collision.Trace {
	return w.Sweep(origin, origin, hull, mask, group, ignore)
}

// PointContents implements collision.Provider.
func (w *World) PointContents(point mgl32.Vec3) collision.Contents {
	w.RLock()
	defer w.RUnlock()

	contents := collision.ContentsEmpty
	for el := w.brushes.Front(); el != nil; el = el.Next() {
		b := el.Value
		min, max := b.Box.Min(), b.Box.Max()
		if point[0] >= min[0] && point[0] < max[0] &&
			point[1] >= min[1] && point[1] < max[1] &&
			point[2] >= min[2] && point[2] < max[2] {
			contents |= b.Contents
		}
	}
	return contents
}

// minkowski grows box by the extents of a hull so that sweeping the hull origin through the result
// is equivalent to sweeping the hull through box.
func minkowski(box cube.BBox, minHull, maxHull mgl32.Vec3) cube.BBox {
	min, max := box.Min(), box.Max()
	return cube.Box(
		min[0]-maxHull[0], min[1]-maxHull[1], min[2]-maxHull[2],
		max[0]-minHull[0], max[1]-minHull[1], max[2]-minHull[2],
	)
}

// sweepBox intersects the segment start→start+delta with box using the slab method.
func sweepBox(box cube.BBox, start, delta mgl32.Vec3) sweepResult {
	min, max := box.Min(), box.Max()
	if insideBox(box, start, 0) {
		depth, axis, sign := nearestFace(box, start)
		if depth > skinDepth {
			return sweepResult{kind: sweepSolid}
		}
		normal := axisNormal(axis, sign)
		if delta.Dot(normal) < 0 {
			return sweepResult{kind: sweepHit, t: 0, axis: axis, sign: sign, normal: normal}
		}
		return sweepResult{}
	}

	tEnter, tExit := float32(-1), float32(math32.MaxFloat32)
	enterAxis, enterSign := -1, float32(0)
	for i := 0; i < 3; i++ {
		if delta[i] == 0 {
			if start[i] <= min[i] || start[i] >= max[i] {
				return sweepResult{}
			}
			continue
		}
		inv := 1 / delta[i]
		t0, t1 := (min[i]-start[i])*inv, (max[i]-start[i])*inv
		sign := float32(-1)
		if t0 > t1 {
			t0, t1 = t1, t0
			sign = 1
		}
		if t0 > tEnter {
			tEnter, enterAxis, enterSign = t0, i, sign
		}
		if t1 < tExit {
			tExit = t1
		}
	}
	if enterAxis < 0 || tEnter >= tExit || tExit <= 0 || tEnter > 1 {
		return sweepResult{}
	}
	if tEnter < 0 {
		tEnter = 0
	}
	return sweepResult{kind: sweepHit, t: tEnter, axis: enterAxis, sign: enterSign, normal: axisNormal(enterAxis, enterSign)}
}

// insideBox returns true if point lies deeper than margin inside box on every axis.
func insideBox(box cube.BBox, point mgl32.Vec3, margin float32) bool {
	min, max := box.Min(), box.Max()
	for i := 0; i < 3; i++ {
		if point[i] <= min[i]+margin || point[i] >= max[i]-margin {
			return false
		}
	}
	return true
}

// nearestFace returns the depth of point below the closest face of box, along with the axis of that
// face and the sign of its outward normal.
func nearestFace(box cube.BBox, point mgl32.Vec3) (depth float32, axis int, sign float32) {
	min, max := box.Min(), box.Max()
	depth = math32.MaxFloat32
	for i := 0; i < 3; i++ {
		if d := point[i] - min[i]; d < depth {
			depth, axis, sign = d, i, -1
		}
		if d := max[i] - point[i]; d < depth {
			depth, axis, sign = d, i, 1
		}
	}
	return
}

func axisNormal(axis int, sign float32) mgl32.Vec3 {
	var n mgl32.Vec3
	n[axis] = sign
	return n
}

type face struct {
	normal mgl32.Vec3
	coord  float32
}

// brushFace returns the face of the unexpanded brush box that corresponds to a sweep result.
func brushFace(box cube.BBox, res sweepResult) face {
	if res.sign < 0 {
		return face{normal: res.normal, coord: box.Min()[res.axis]}
	}
	return face{normal: res.normal, coord: box.Max()[res.axis]}
}

func planeDist(f face) float32 {
	var p mgl32.Vec3
	for i := 0; i < 3; i++ {
		if f.normal[i] != 0 {
			p[i] = f.coord
		}
	}
	return f.normal.Dot(p)
}
